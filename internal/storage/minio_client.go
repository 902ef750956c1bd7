package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/xid"

	"socialfeedCPT/internal/config"
)

// Storage - адаптер удалённого blob-хранилища.
// Delete возвращает false, если объекта уже нет.
type Storage interface {
	Upload(ctx context.Context, data []byte, fileName, contentType string) (string, string, error)
	Delete(ctx context.Context, objectName string) (bool, error)
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать клиент MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка при создании bucket: %w", err)
		}
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

// Upload кладёт файл в bucket и возвращает публичный URL и имя объекта.
// Content-Type приходит от валидатора (определён по сигнатуре), а не от клиента.
func (m *MinIOClient) Upload(ctx context.Context, data []byte, fileName, contentType string) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	now := time.Now()
	objectName := fmt.Sprintf("uploads/%d/%02d/%s%s",
		now.Year(),
		now.Month(),
		xid.New().String(),
		fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	scheme := "http"
	if m.cfg.MinIO.UseSSL {
		scheme = "https"
	}
	imageURL := fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.MinIO.Endpoint, m.cfg.MinIO.BucketName, objectName)

	return imageURL, objectName, nil
}

func (m *MinIOClient) Delete(ctx context.Context, objectName string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.cfg.MinIO.BucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("ошибка при проверке объекта в MinIO: %w", err)
	}

	err = m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return false, fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}

	return true, nil
}
