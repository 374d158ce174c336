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

type StatsProvider interface {
	DashboardStats(ctx context.Context) (*api.DashboardResponse, error)
}

type Response struct {
	response.Response
	Stats          api.DashboardStats  `json:"stats"`
	RecentStudents []api.RecentStudent `json:"recent_students"`
}

func New(log *slog.Logger, provider StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		stats, err := provider.DashboardStats(r.Context())
		if err != nil {
			log.Error("Failed to load dashboard stats", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to load dashboard stats"))
			return
		}

		log.Info("Dashboard stats loaded", slog.Int("total_students", stats.Stats.TotalStudents))

		render.JSON(w, r, Response{
			Stats:          stats.Stats,
			RecentStudents: stats.RecentStudents,
		})
	}
}
