package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialfeedCPT/internal/models"
	"socialfeedCPT/internal/service"
)

type CreatePostRequest struct {
	Content    string            `json:"content" validate:"required"`
	Channel    string            `json:"channel"`
	AllChannel bool              `json:"allChannel"`
	ImageRefs  []models.ImageRef `json:"imageRefs" validate:"omitempty,dive"`
	Hashtags   []string          `json:"hashtags" validate:"omitempty,max=10,dive,max=100"`
}

type UpdatePostRequest struct {
	Content  string   `json:"content" validate:"required"`
	Hashtags []string `json:"hashtags" validate:"omitempty,max=10,dive,max=100"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	serviceReq := service.CreatePostRequest{
		AuthorID:   userID,
		Content:    req.Content,
		Channel:    req.Channel,
		AllChannel: req.AllChannel,
		ImageRefs:  req.ImageRefs,
		Hashtags:   req.Hashtags,
	}

	// создание поста под защитой от повторных запросов
	var post *models.Post
	err := h.IdempotencyService.Execute(r.Context(), userID, operationSignature(r), func(ctx context.Context) error {
		created, err := h.PostService.CreatePost(ctx, serviceReq)
		if err != nil {
			return err
		}
		post = created
		return nil
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	serviceReq := service.UpdatePostRequest{
		ActorID:  userID,
		PostID:   postID,
		Content:  req.Content,
		Hashtags: req.Hashtags,
	}

	err := h.IdempotencyService.Execute(r.Context(), userID, operationSignature(r), func(ctx context.Context) error {
		return h.PostService.UpdatePost(ctx, serviceReq)
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пост успешно обновлен"}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	err := h.IdempotencyService.Execute(r.Context(), userID, operationSignature(r), func(ctx context.Context) error {
		return h.PostService.DeletePost(ctx, userID, postID)
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пост успешно удален"}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	// Параметры пагинации
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	channel := r.URL.Query().Get("channel")

	posts, err := h.PostService.GetFeed(r.Context(), channel, limit, (page-1)*limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"posts": posts,
		"page":  page,
		"limit": limit,
	}, http.StatusOK)
}
