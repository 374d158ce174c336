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

type StudentLister interface {
	ListStudents(ctx context.Context, status, query string) ([]*api.StudentResponse, error)
}

type Response struct {
	response.Response
	Students []*api.StudentResponse `json:"students"`
}

func New(log *slog.Logger, lister StudentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.students.list.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		status := r.URL.Query().Get("status")
		query := r.URL.Query().Get("q")

		students, err := lister.ListStudents(r.Context(), status, query)

		if errors.Is(err, response.ErrValidation) {
			log.Error("invalid status filter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "status must be All, Paid, Partial or Unpaid"))
			return
		}

		if err != nil {
			log.Error("Failed to list students", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list students"))
			return
		}

		log.Info("Students listed", slog.Int("count", len(students)))

		render.JSON(w, r, Response{
			Students: students,
		})
	}
}
