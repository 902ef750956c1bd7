package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"socialfeedCPT/internal/models"
)

type AttachImagesRequest struct {
	ImageRefs []models.ImageRef `json:"imageRefs" validate:"required,min=1,dive"`
}

type SoftDeleteImagesRequest struct {
	ImageIDs []string `json:"imageIds" validate:"required,min=1"`
}

// StageImages принимает multipart-форму с полем "images" (до 5 файлов),
// загружает их в хранилище и создаёт PENDING-строки. Пост на этом этапе
// ещё не существует.
func (h *Handlers) StageImages(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["images"]

	files := make([]models.UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			WriteError(w, "Не удалось получить файл "+fh.Filename, http.StatusBadRequest)
			return
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			WriteError(w, "Ошибка при чтении файла "+fh.Filename, http.StatusBadRequest)
			return
		}

		files = append(files, models.UploadFile{
			FileName: fh.Filename,
			Size:     fh.Size,
			Data:     data,
		})
	}

	var staged []models.ImageAsset
	err := h.IdempotencyService.Execute(r.Context(), userID, operationSignature(r), func(ctx context.Context) error {
		assets, err := h.ImageService.Stage(ctx, userID, files)
		if err != nil {
			return err
		}
		staged = assets
		return nil
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"images": staged}, http.StatusCreated)
}

func (h *Handlers) AttachImages(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	var req AttachImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var attached []models.ImageAsset
	err := h.IdempotencyService.Execute(r.Context(), userID, operationSignature(r), func(ctx context.Context) error {
		images, err := h.PostService.AttachImages(ctx, userID, postID, req.ImageRefs)
		if err != nil {
			return err
		}
		attached = images
		return nil
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"images": attached}, http.StatusOK)
}

func (h *Handlers) SoftDeleteImages(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	var req SoftDeleteImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.IdempotencyService.Execute(r.Context(), userID, operationSignature(r), func(ctx context.Context) error {
		return h.PostService.SoftDeleteImages(ctx, userID, postID, req.ImageIDs)
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Изображения помечены на удаление"}, http.StatusOK)
}

func (h *Handlers) ReorderImages(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	var req AttachImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.IdempotencyService.Execute(r.Context(), userID, operationSignature(r), func(ctx context.Context) error {
		return h.PostService.ReorderImages(ctx, userID, postID, req.ImageRefs)
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Порядок изображений обновлен"}, http.StatusOK)
}
