package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/generator"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/quiz"
)

func main() {
	cfg := config.FromEnv()
	log := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogPretty)

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Error("db open failed", "err", err)
		os.Exit(1)
	}
	store := quiz.NewSQLStore(dbh, cfg.DBDriver)

	// --- Identity ---
	jwtProvider := auth.NewJWTProvider(cfg.AuthHMACSecret)
	var identity auth.Provider = auth.HeaderProvider{}
	if cfg.Auth == config.AuthJWT {
		identity = jwtProvider
	}

	// --- Generation (optional; endpoint mounted only when configured) ---
	var genSvc *generator.Service
	llmCfg := llm.ConfigFromEnv()
	if llmCfg.Enabled() {
		if err := llmCfg.Validate(); err != nil {
			log.Error("llm config invalid", "err", err)
			os.Exit(1)
		}
		provider, err := llm.NewProvider(ctx, llmCfg)
		if err != nil {
			log.Error("llm provider init failed", "err", err)
			os.Exit(1)
		}
		genSvc = generator.NewService(provider, log)
		log.Info("generation endpoint enabled", "provider", llmCfg.Provider, "model", provider.ModelID())
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", auth.HeaderUserID, auth.HeaderUsername},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", api.HealthHandler(store))

	if cfg.EnableLocalAuth {
		r.Post("/auth/token", auth.TokenHandler(jwtProvider, cfg.DevUser, cfg.DevPassHash))
	}

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(identity))

		pr.Route("/api", func(ar chi.Router) {
			ar.Post("/quizzes", api.CreateQuizHandler(store, log))
			ar.Get("/quizzes", api.ListQuizzesHandler(store, log))
			ar.Get("/quizzes/{quizID}", api.GetQuizDetailHandler(store, log))
			ar.Get("/quizzes/{quizID}/take", api.TakeQuizHandler(store, log))
			ar.Post("/quiz-results", api.RecordResultHandler(store, log))
			ar.Post("/quiz-history", api.RecordHistoryHandler(store, log))
			ar.Get("/statistics", api.StatisticsHandler(store, log))

			if genSvc != nil {
				ar.Post("/quizzes/generate", api.GenerateQuizHandler(genSvc, log))
			}
		})
	})

	log.Info("listening", "addr", cfg.HTTPAddr, "db", cfg.DBDriver, "auth", string(cfg.Auth))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
