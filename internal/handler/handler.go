package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"socialfeedCPT/internal/config"
	"socialfeedCPT/internal/database"
	"socialfeedCPT/internal/service"
)

type Handlers struct {
	PostService        service.PostService
	ImageService       service.ImageService
	IdempotencyService service.IdempotencyService
	DB                 *database.DB
	Cfg                *config.Config
	Validate           *validator.Validate
	Log                *zap.SugaredLogger
}

func NewHandlers(services *service.Service, db *database.DB, cfg *config.Config, log *zap.SugaredLogger) *Handlers {
	return &Handlers{
		PostService:        services.Post,
		ImageService:       services.Image,
		IdempotencyService: services.Idempotency,
		DB:                 db,
		Cfg:                cfg,
		Validate:           validator.New(),
		Log:                log,
	}
}

// actorID достаёт идентификатор пользователя, положенный auth-middleware
func actorID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value("userID").(string)
	return id, ok && id != ""
}

// operationSignature - стабильный идентификатор логического запроса:
// либо клиентский X-Idempotency-Key, либо метод + путь
func operationSignature(r *http.Request) string {
	if key := r.Header.Get("X-Idempotency-Key"); key != "" {
		return key
	}
	return r.Method + ":" + r.URL.Path
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	tables, err := h.DB.CountTables()
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status": "ok",
		"tables": tables,
	}, http.StatusOK)
}
