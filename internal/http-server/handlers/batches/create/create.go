package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"library-service/api"
	"library-service/pkg/response"
	"library-service/pkg/sl"
)

type BatchCreator interface {
	CreateBatch(ctx context.Context, req *api.BatchRequest) (*api.BatchResponse, error)
}

type Request struct {
	api.BatchRequest
}

type Response struct {
	response.Response
	Batch api.BatchResponse `json:"batch,omitempty"`
}

func New(log *slog.Logger, creator BatchCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batches.create.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		batch, err := creator.CreateBatch(r.Context(), &req.BatchRequest)

		if errors.Is(err, response.ErrValidation) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "time and price are required"))
			return
		}

		if err != nil {
			log.Error("Failed to create batch", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create batch"))
			return
		}

		log.Info("Batch created", slog.Any("batch", batch))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Batch: *batch,
		})
	}
}
