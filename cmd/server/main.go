package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/withu/backend/internal/config"
	"github.com/withu/backend/internal/handlers"
	appMiddleware "github.com/withu/backend/internal/middleware"
	"github.com/withu/backend/internal/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Journal prompt generation (Gemini). Optional; without a key the
	// journal endpoints report prompts as unavailable.
	var prompts services.PromptGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiPromptService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("Warning: failed to initialize Gemini prompt service: %v", err)
		} else {
			defer gemini.Close()
			prompts = gemini
		}
	} else {
		log.Printf("Warning: GEMINI_API_KEY not set; journal prompts disabled")
	}

	// Persistent storage.
	userService, err := services.NewMongoUserService(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect users store: %v", err)
	}
	defer userService.Close(ctx)

	profileService, err := services.NewMongoProfileService(ctx, cfg.MongoURI, cfg.MongoDB, prompts)
	if err != nil {
		log.Fatalf("Failed to connect profiles store: %v", err)
	}
	defer profileService.Close(ctx)

	// Optional profile snapshot cache.
	sessions := services.NewSessionCache(cfg.RedisAddr)
	defer sessions.Close()

	chatClient := services.NewChatClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessions, cfg.JWTSecret, cfg.JWTExpiration)
	profileHandler := handlers.NewProfileHandler(profileService, userService, sessions)
	moodHandler := handlers.NewMoodHandler(profileService, sessions)
	journalHandler := handlers.NewJournalHandler(profileService, sessions)
	avatarHandler := handlers.NewAvatarHandler(profileService, sessions)
	goalsHandler := handlers.NewGoalsHandler(profileService, sessions)
	chatHandler := handlers.NewChatHandler(chatClient, profileService)
	emergencyHandler := handlers.NewEmergencyHandler(profileService, cfg.CrisisHotline)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))

			r.Post("/auth/logout", authHandler.Logout)

			// Profile
			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Post("/profile/onboarding", profileHandler.CompleteOnboarding)

			// Daily mood log
			r.Route("/moods", func(r chi.Router) {
				r.Get("/", moodHandler.ListMoods)
				r.Post("/", moodHandler.LogMood)
				r.Get("/catalog", moodHandler.Catalog)
				r.Get("/trend", moodHandler.Trend)
			})

			// Journal wall
			r.Route("/journal", func(r chi.Router) {
				r.Get("/", journalHandler.ListEntries)
				r.Get("/today", journalHandler.TodaysQuestion)
				r.Post("/answer", journalHandler.SaveAnswer)
			})

			// Avatar customization
			r.Route("/avatar", func(r chi.Router) {
				r.Get("/catalog", avatarHandler.Catalog)
				r.Put("/", avatarHandler.Save)
				r.Post("/unlock", avatarHandler.Unlock)
			})

			// Goals
			r.Route("/goals", func(r chi.Router) {
				r.Get("/", goalsHandler.List)
				r.Post("/", goalsHandler.Add)
				r.Post("/{goalId}/complete", goalsHandler.Complete)
			})

			// Companion chat + emergency support
			r.Post("/chat", chatHandler.Chat)
			r.Get("/emergency", emergencyHandler.Resources)
		})
	})

	log.Printf("💙 WithU API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
