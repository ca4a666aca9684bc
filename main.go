package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bedirhan/todo-backend/internal/handler"
	"github.com/bedirhan/todo-backend/internal/repository"
	"github.com/bedirhan/todo-backend/internal/token"
	"github.com/gorilla/sessions"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/rs/cors"
)

const tokenTTL = 72 * time.Hour

func loadEnvVar() {
	//load env variables, a missing .env file is fine in deployed environments
	if err := godotenv.Load(); err != nil {
		slog.Info("env_file_not_loaded", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func initDB() *sql.DB {
	dburl := os.Getenv("DB_URL")
	db, err := sql.Open("pgx", dburl)
	if err != nil {
		slog.Error("database_initialization_failed", "error", err)
		os.Exit(1)
	}

	//check if connection is alive
	if err := db.Ping(); err != nil {
		slog.Error("database_connection_ping_failed", "error", err)
		os.Exit(1)
	}

	slog.Info("database_initialization_success")
	return db
}

func setupGoogleAuth(secret string) {
	key := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	callback := os.Getenv("GOOGLE_CALLBACK_URL")
	goth.UseProviders(
		google.New(key, clientSecret, callback, "email", "profile"),
	)

	//gothic keeps its CSRF state in a short-lived cookie session
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(300)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	gothic.Store = store
}

func setupSlog() {
	//Json handler that writes to standard out
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(h))
}

func loggerMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"ip", r.RemoteAddr,
			"duration", time.Since(start).String(),
		)
	})
}

func corsMW(frontendURL string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{frontendURL, "http://localhost:5173", "http://localhost:5174"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
}

func startServer(port string, mux http.Handler) {
	slog.Info("server_start", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Error("server_start_failed", "error", err)
		os.Exit(1)
	}
}

func main() {
	//structured logging
	setupSlog()

	loadEnvVar()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("jwt_secret_missing")
		os.Exit(1)
	}

	db := initDB()
	defer db.Close()

	taskRepo, err := repository.NewTaskRepo(db)
	if err != nil {
		slog.Error("repository_creation_failed", "error", err)
		os.Exit(1)
	}
	userRepo, err := repository.NewUserRepo(db)
	if err != nil {
		slog.Error("repository_creation_failed", "error", err)
		os.Exit(1)
	}

	tokens := token.NewService(secret, tokenTTL)
	frontendURL := getEnv("FRONTEND_URL", "http://localhost:5173")

	//google OAuth
	setupGoogleAuth(secret)

	//routing
	r := handler.NewRouter(
		handler.NewTodoHandler(taskRepo),
		handler.NewAuthHandler(userRepo, tokens, frontendURL),
	)

	//middleware
	wrapped := loggerMW(corsMW(frontendURL).Handler(r))

	startServer(getEnv("PORT", "8080"), wrapped)
}
