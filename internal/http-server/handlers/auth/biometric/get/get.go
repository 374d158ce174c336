package get

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

type CredentialProvider interface {
	BiometricCredential(ctx context.Context) (*api.CredentialResponse, error)
}

type Response struct {
	response.Response
	CredentialID *string `json:"credential_id"`
}

func New(log *slog.Logger, provider CredentialProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.biometric.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		cred, err := provider.BiometricCredential(r.Context())
		if err != nil {
			log.Error("Failed to load biometric credential", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to load biometric credential"))
			return
		}

		log.Info("Biometric credential loaded", slog.Bool("registered", cred.CredentialID != nil))

		render.JSON(w, r, Response{
			CredentialID: cred.CredentialID,
		})
	}
}
