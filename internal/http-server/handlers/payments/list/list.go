package list

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

type PaymentLister interface {
	PaymentsList(ctx context.Context, status string) ([]*api.PaymentEntry, error)
}

type Response struct {
	response.Response
	Students []*api.PaymentEntry `json:"students"`
}

func New(log *slog.Logger, lister PaymentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payments.list.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		status := r.URL.Query().Get("status")

		students, err := lister.PaymentsList(r.Context(), status)

		if errors.Is(err, response.ErrValidation) {
			log.Error("invalid status filter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "status must be All, Paid, Partial or Unpaid"))
			return
		}

		if err != nil {
			log.Error("Failed to list payments", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list payments"))
			return
		}

		log.Info("Payments listed", slog.Int("count", len(students)))

		render.JSON(w, r, Response{
			Students: students,
		})
	}
}
