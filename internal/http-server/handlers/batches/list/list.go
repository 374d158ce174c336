package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"library-service/api"
	"library-service/pkg/response"
	"library-service/pkg/sl"
)

type BatchLister interface {
	ListBatches(ctx context.Context) ([]*api.BatchResponse, error)
}

type Response struct {
	response.Response
	Batches []*api.BatchResponse `json:"batches"`
}

func New(log *slog.Logger, lister BatchLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batches.list.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		batches, err := lister.ListBatches(r.Context())
		if err != nil {
			log.Error("Failed to list batches", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list batches"))
			return
		}

		log.Info("Batches listed", slog.Int("count", len(batches)))

		render.JSON(w, r, Response{
			Batches: batches,
		})
	}
}
