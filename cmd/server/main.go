package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/confqa/api/internal/adapters/handler/http"
	"github.com/confqa/api/internal/adapters/repository/postgres"
	"github.com/confqa/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	adminCode := os.Getenv("ADMIN_CODE")
	if adminCode == "" {
		log.Fatal("ADMIN_CODE must be set")
	}

	allowedOrigins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "" {
		allowedOrigins = []string{"*"}
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	sessionRepo := postgres.NewSessionRepository(db)
	questionRepo := postgres.NewQuestionRepository(db)
	likeRepo := postgres.NewLikeRepository(db)

	sessionService := services.NewSessionService(sessionRepo)
	questionService := services.NewQuestionService(sessionRepo, questionRepo)
	likeService := services.NewLikeService(likeRepo)

	sessionHandler := http.NewSessionHandler(sessionService)
	questionHandler := http.NewQuestionHandler(questionService, likeService)
	adminHandler := http.NewAdminHandler(sessionService, questionService, adminCode)

	handler := http.NewHandler(sessionHandler, questionHandler, adminHandler, adminCode, allowedOrigins)
	server := &stdhttp.Server{Addr: "0.0.0.0:8080", Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("Server listening on", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	dbHost := os.Getenv("POSTGRES_HOST")
	dbPort := os.Getenv("POSTGRES_PORT")
	dbUser := os.Getenv("POSTGRES_USER")
	dbPass := os.Getenv("POSTGRES_PASSWORD")
	dbName := os.Getenv("POSTGRES_DB")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
}
