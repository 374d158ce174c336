package register

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

type CredentialRegistrar interface {
	RegisterBiometric(ctx context.Context, req *api.RegisterCredentialRequest) error
}

type Request struct {
	api.RegisterCredentialRequest
}

type Response struct {
	response.Response
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

func New(log *slog.Logger, registrar CredentialRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.biometric.register.New"

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

		err := registrar.RegisterBiometric(r.Context(), &req.RegisterCredentialRequest)

		if errors.Is(err, response.ErrValidation) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "credential_id is required"))
			return
		}

		if err != nil {
			log.Error("Failed to register biometric credential", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to register biometric credential"))
			return
		}

		log.Info("Biometric credential registered")

		render.JSON(w, r, Response{
			Success: true,
			Message: "fingerprint registered successfully",
		})
	}
}
