package http

import (
	"log/slog"
	"os"

	"github.com/diverse-infotech/attendance-insight-go/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(cfg config.AppConfig, datasetHandler DatasetHandler, reportHandler ReportHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-insight"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(cfg.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/datasets", func(r chi.Router) {
			r.Post("/", datasetHandler.Upload)

			r.Route("/{datasetID}", func(r chi.Router) {
				r.Get("/", datasetHandler.Get)
				r.Delete("/", datasetHandler.Delete)
				r.Get("/facts", datasetHandler.Facts)

				r.Route("/reports", func(r chi.Router) {
					r.Get("/overview", reportHandler.Overview)
					r.Get("/daily", reportHandler.Daily)
					r.Get("/monthly", reportHandler.Monthly)
					r.Get("/employees", reportHandler.Employees)
					r.Get("/departments", reportHandler.Departments)
				})

				r.Route("/exports", func(r chi.Router) {
					r.Get("/daily", reportHandler.ExportDaily)
					r.Get("/monthly", reportHandler.ExportMonthly)
				})

				r.Post("/summaries/email", reportHandler.EmailSummary)
			})
		})
	})
	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
