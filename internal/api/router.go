package api

import (
	"log/slog"
	"net/http"

	"github.com/dom/videotube/internal/api/handlers"
	"github.com/dom/videotube/internal/api/middleware"
	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/metrics"
	"github.com/dom/videotube/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	cors, err := middleware.CORS(cfg.CORSOrigins, logger, handlers.WriteError)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger, handlers.WriteError))
	r.Use(middleware.Metrics(m))
	r.Use(cors)

	r.NotFound(handlers.Handle(func(w http.ResponseWriter, r *http.Request) error {
		return domain.NotFound("Route not found")
	}))
	r.MethodNotAllowed(handlers.Handle(func(w http.ResponseWriter, r *http.Request) error {
		return domain.MethodNotAllowed("Method not allowed")
	}))

	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Initialize handlers
	userHandler := handlers.NewUserHandler(services.Auth, cfg)
	videoHandler := handlers.NewVideoHandler(services.Video, cfg)
	commentHandler := handlers.NewCommentHandler(services.Comment, cfg)
	likeHandler := handlers.NewLikeHandler(services.Like)
	playlistHandler := handlers.NewPlaylistHandler(services.Playlist, cfg)
	subscriptionHandler := handlers.NewSubscriptionHandler(services.Subscription)
	tweetHandler := handlers.NewTweetHandler(services.Tweet, cfg)
	dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
	healthHandler := handlers.NewHealthHandler(services.Health)

	requireAuth := middleware.Auth(services.Auth, handlers.WriteError)
	h := handlers.Handle

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", h(healthHandler.Check))

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h(userHandler.Register))
			r.Post("/login", h(userHandler.Login))
			r.Post("/refresh-token", h(userHandler.RefreshToken))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/logout", h(userHandler.Logout))
				r.Post("/change-password", h(userHandler.ChangePassword))
				r.Get("/current-user", h(userHandler.CurrentUser))
				r.Patch("/update-account", h(userHandler.UpdateAccount))
				r.Patch("/avatar", h(userHandler.UpdateAvatar))
				r.Patch("/cover-image", h(userHandler.UpdateCoverImage))
				r.Get("/c/{username}", h(userHandler.ChannelProfile))
				r.Get("/watch-history", h(userHandler.WatchHistory))
				r.Delete("/delete", h(userHandler.DeleteAccount))
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/video", func(r chi.Router) {
				r.Post("/publish", h(videoHandler.Publish))
				r.Get("/get-video", h(videoHandler.List))
				r.Get("/get-video/{videoId}", h(videoHandler.Get))
				r.Patch("/update-video/{videoId}", h(videoHandler.Update))
				r.Delete("/delete-video/{videoId}", h(videoHandler.Delete))
				r.Patch("/toggle/publish/{videoId}", h(videoHandler.TogglePublish))
			})

			r.Route("/comment", func(r chi.Router) {
				r.Get("/{videoId}", h(commentHandler.List))
				r.Post("/{videoId}", h(commentHandler.Add))
				r.Patch("/c/{commentId}", h(commentHandler.Update))
				r.Delete("/c/{commentId}", h(commentHandler.Delete))
			})

			r.Route("/like", func(r chi.Router) {
				r.Post("/toggle/v/{videoId}", h(likeHandler.ToggleVideo))
				r.Post("/toggle/c/{commentId}", h(likeHandler.ToggleComment))
				r.Post("/toggle/t/{tweetId}", h(likeHandler.ToggleTweet))
				r.Get("/videos", h(likeHandler.LikedVideos))
			})

			r.Route("/playlist", func(r chi.Router) {
				r.Post("/", h(playlistHandler.Create))
				r.Get("/{playlistId}", h(playlistHandler.Get))
				r.Patch("/{playlistId}", h(playlistHandler.Update))
				r.Delete("/{playlistId}", h(playlistHandler.Delete))
				r.Patch("/add/{videoId}/{playlistId}", h(playlistHandler.AddVideo))
				r.Patch("/remove/{videoId}/{playlistId}", h(playlistHandler.RemoveVideo))
				r.Get("/user/{userId}", h(playlistHandler.ListByUser))
			})

			r.Route("/subscription", func(r chi.Router) {
				r.Post("/c/{channelId}", h(subscriptionHandler.Toggle))
				r.Get("/c/{channelId}", h(subscriptionHandler.Subscribers))
				r.Get("/u/{subscriberId}", h(subscriptionHandler.SubscribedChannels))
			})

			r.Route("/tweet", func(r chi.Router) {
				r.Post("/", h(tweetHandler.Create))
				r.Get("/user/{userId}", h(tweetHandler.ListByUser))
				r.Patch("/{tweetId}", h(tweetHandler.Update))
				r.Delete("/{tweetId}", h(tweetHandler.Delete))
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/channel-stats", h(dashboardHandler.ChannelStats))
				r.Get("/channel-videos", h(dashboardHandler.ChannelVideos))
			})
		})
	})

	return r, nil
}
