package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qna-board/config"
	"qna-board/notifier"
	"qna-board/repositories"
	"qna-board/router"
	"qna-board/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger := config.NewLogger(cfg)
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("cannot connect to database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := notifier.NewHub(logger)
	go hub.Run(ctx)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	answerRepo := repositories.NewAnswerRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	uploadService := services.NewUploadService(cfg.UploadDir, cfg.UploadURLPrefix)
	questionService := services.NewQuestionService(questionRepo, answerRepo, uploadService)
	answerService := services.NewAnswerService(answerRepo, questionRepo, hub, logger)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.New(router.Deps{
			Config:    cfg,
			Log:       logger,
			Auth:      authService,
			Questions: questionService,
			Answers:   answerService,
			Hub:       hub,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
