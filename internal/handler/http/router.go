package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/moundir-nedjm/ponpro-backend/internal/handler/http/middleware"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	matrixHandler MatrixHandler,
	attendanceHandler AttendanceHandler,
	catalogHandler CatalogHandler,
	streamHandler StreamHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponpro-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		r.Route("/attendance", func(r chi.Router) {
			// EventSource carries its token in the query string, so the
			// stream endpoint verifies it itself.
			r.Get("/stream", streamHandler.Stream)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

				r.Get("/matrix", matrixHandler.GetMonthly)
				r.Get("/stream/token", authHandler.StreamToken)

				r.Route("/cells", func(r chi.Router) {
					r.Get("/", attendanceHandler.GetCell)
					r.Post("/check-in", attendanceHandler.CheckIn)
					r.Post("/check-out", attendanceHandler.CheckOut)
					r.Post("/assign", attendanceHandler.AssignCode)
				})

				r.Route("/codes", func(r chi.Router) {
					r.Get("/", catalogHandler.List)
					r.Get("/{symbol}", catalogHandler.Get)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/{symbol}", catalogHandler.Upsert)
						r.Delete("/{symbol}", catalogHandler.Delete)
					})
				})
			})
		})
	})
	return r
}
