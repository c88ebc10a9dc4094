package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	api "github.com/Kokatesrushti/Testbook/internal/api/http"
	"github.com/Kokatesrushti/Testbook/internal/auth"
	"github.com/Kokatesrushti/Testbook/internal/catalog"
	"github.com/Kokatesrushti/Testbook/internal/config"
	"github.com/Kokatesrushti/Testbook/internal/db"
	"github.com/Kokatesrushti/Testbook/internal/exam"
	"github.com/Kokatesrushti/Testbook/internal/logging"
	"github.com/Kokatesrushti/Testbook/internal/progress"
	"github.com/Kokatesrushti/Testbook/internal/rbac"
	"github.com/Kokatesrushti/Testbook/internal/seed"
)

func main() {
	cfg := config.FromEnv()

	log, err := logging.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	driver := db.Driver(cfg.DBDriver)
	dbh, err := db.Open(ctx, driver, cfg.DBDSN)
	if err != nil && driver == db.DriverPostgres && cfg.DBFallbackDSN != "" {
		// The fallback adapter is chosen once here; the choice never changes
		// at runtime.
		log.Warn("postgres unreachable, falling back to sqlite", zap.Error(err))
		driver = db.DriverSQLite
		dbh, err = db.Open(ctx, driver, cfg.DBFallbackDSN)
	}
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}

	catalogStore := catalog.NewSQLStore(dbh)
	progressStore := progress.NewSQLStore(dbh)
	submitSvc := exam.NewService(catalogStore, progressStore)

	if cfg.SeedOnStartup {
		if err := seed.Run(ctx, dbh, catalogStore); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
	}

	// --- Auth ---
	authSvc := auth.NewService(cfg.AuthSecret, time.Duration(cfg.SessionTTLHrs)*time.Hour)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(logging.RequestLogger(log))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Auth
	r.Post("/api/register", auth.RegisterHandler(dbh, authSvc))
	r.Post("/api/login", auth.LoginHandler(dbh, authSvc))

	// Public catalog
	r.Get("/api/exam-categories", api.ListExamCategoriesHandler(catalogStore))
	r.Get("/api/exam-categories/slug/{slug}", api.GetExamCategoryBySlugHandler(catalogStore))
	r.Get("/api/exam-categories/{id}", api.GetExamCategoryHandler(catalogStore))
	r.Get("/api/courses", api.ListCoursesHandler(catalogStore))
	r.Get("/api/courses/category/{categoryID}", api.ListCoursesByCategoryHandler(catalogStore))
	r.Get("/api/courses/{id}", api.GetCourseHandler(catalogStore))
	r.Get("/api/test-series", api.ListTestSeriesHandler(catalogStore))
	r.Get("/api/test-series/category/{categoryID}", api.ListTestSeriesByCategoryHandler(catalogStore))
	r.Get("/api/mock-tests", api.ListMockTestsHandler(catalogStore))
	r.Get("/api/mock-tests/series/{seriesID}", api.ListMockTestsBySeriesHandler(catalogStore))
	r.Get("/api/mock-tests/{id}", api.GetMockTestHandler(catalogStore))
	r.Get("/api/study-materials", api.ListStudyMaterialsHandler(catalogStore))
	r.Get("/api/study-materials/category/{categoryID}", api.ListStudyMaterialsByCategoryHandler(catalogStore))

	// Protected (JWT → identity+role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))

		pr.Get("/api/user", auth.CurrentUserHandler(dbh))

		pr.With(rbac.Require("questions:read")).
			Get("/api/questions/{testID}", api.GetQuestionsHandler(catalogStore))
		pr.With(rbac.Require("test:submit")).
			Post("/api/submit-test/{testID}", api.SubmitTestHandler(submitSvc))
		pr.With(rbac.Require("progress:read")).
			Get("/api/user-progress", api.ListUserProgressHandler(progressStore))
		pr.With(rbac.Require("progress:write")).
			Post("/api/user-progress", api.UpsertUserProgressHandler(progressStore))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("db", string(driver)))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
