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

type StudentCreator interface {
	CreateStudent(ctx context.Context, req *api.StudentRequest) (*api.StudentResponse, error)
}

type Request struct {
	api.StudentRequest
}

type Response struct {
	response.Response
	Student api.StudentResponse `json:"student,omitempty"`
}

func New(log *slog.Logger, creator StudentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.students.create.New"

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

		log.Info("Request body decoded", slog.String("name", req.Name), slog.Int("seat", req.SeatNumber))

		student, err := creator.CreateStudent(r.Context(), &req.StudentRequest)

		var validationErr *response.ValidationError
		if errors.As(err, &validationErr) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), validationErr.Message))
			return
		}

		var seatErr *response.SeatConflictError
		if errors.As(err, &seatErr) {
			log.Error("seat conflict", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.SEAT_CONFLICT), seatErr.Error()))
			return
		}

		if errors.Is(err, response.ErrSeatConflict) {
			log.Error("seat conflict")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.SEAT_CONFLICT), "seat is already occupied"))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("seat is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "seat is being assigned, try again"))
			return
		}

		if err != nil {
			log.Error("Failed to create student", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create student"))
			return
		}

		log.Info("Student created", slog.String("id", student.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Student: *student,
		})
	}
}
