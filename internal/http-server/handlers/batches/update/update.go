package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"library-service/api"
	"library-service/pkg/response"
	"library-service/pkg/sl"
)

type BatchUpdater interface {
	UpdateBatch(ctx context.Context, id string, req *api.BatchRequest) (*api.BatchResponse, error)
}

type Request struct {
	api.BatchRequest
}

type Response struct {
	response.Response
	Batch api.BatchResponse `json:"batch,omitempty"`
}

func New(log *slog.Logger, updater BatchUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batches.update.New"

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

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		batch, err := updater.UpdateBatch(r.Context(), id, &req.BatchRequest)

		if errors.Is(err, response.ErrValidation) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "time and price are required"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("batch not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "batch not found"))
			return
		}

		if err != nil {
			log.Error("Failed to update batch", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update batch"))
			return
		}

		log.Info("Batch updated", slog.Any("batch", batch))

		render.JSON(w, r, Response{
			Batch: *batch,
		})
	}
}
