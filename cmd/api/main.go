package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"socialfeedCPT/cmd/app"
	"socialfeedCPT/internal/config"
	handlers "socialfeedCPT/internal/handler"
	"socialfeedCPT/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db, locks, services, err := app.App(cfg, sugar)
	if err != nil {
		log.Fatalf("Ошибка при инициализации приложения: %v", err)
	}
	defer db.CloseDB()
	defer locks.Close()

	handler := handlers.NewHandlers(services, db, cfg, sugar)

	// setting up routes
	router := mux.NewRouter()
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts", handler.GetFeed).Methods(http.MethodGet)
	api.HandleFunc("/posts/{postId}", handler.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{postId}", handler.UpdatePost).Methods(http.MethodPut)
	api.HandleFunc("/posts/{postId}", handler.DeletePost).Methods(http.MethodDelete)

	api.HandleFunc("/images", handler.StageImages).Methods(http.MethodPost)
	api.HandleFunc("/posts/{postId}/images", handler.AttachImages).Methods(http.MethodPost)
	api.HandleFunc("/posts/{postId}/images", handler.SoftDeleteImages).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{postId}/images/order", handler.ReorderImages).Methods(http.MethodPatch)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware(sugar),
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	sugar.Infow("Сервер запущен", "addr", addr, "db", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
