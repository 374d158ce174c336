package login

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

type Authenticator interface {
	Login(ctx context.Context, req *api.LoginRequest) error
}

type Request struct {
	api.LoginRequest
}

type Response struct {
	response.Response
	Success bool `json:"success,omitempty"`
}

func New(log *slog.Logger, auth Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

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

		err := auth.Login(r.Context(), &req.LoginRequest)

		if errors.Is(err, response.ErrValidation) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "password is required"))
			return
		}

		if errors.Is(err, response.ErrUnauthorized) {
			log.Error("invalid password")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "invalid password"))
			return
		}

		if err != nil {
			log.Error("Failed to login", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to login"))
			return
		}

		log.Info("Admin logged in")

		render.JSON(w, r, Response{
			Success: true,
		})
	}
}
