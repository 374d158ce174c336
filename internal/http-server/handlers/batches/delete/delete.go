package delete

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"library-service/pkg/response"
	"library-service/pkg/sl"
)

type BatchDeleter interface {
	DeleteBatch(ctx context.Context, id string) error
}

type Response struct {
	response.Response
	Message string `json:"message,omitempty"`
}

func New(log *slog.Logger, deleter BatchDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batches.delete.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

		if err := deleter.DeleteBatch(r.Context(), id); err != nil {
			log.Error("Failed to delete batch", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete batch"))
			return
		}

		log.Info("Batch deleted", slog.String("id", id))

		render.JSON(w, r, Response{
			Message: "batch deleted",
		})
	}
}
