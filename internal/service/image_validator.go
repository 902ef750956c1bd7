package service

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"socialfeedCPT/internal/models"
)

const (
	// MaxImagesPerPost - максимум изображений на пост
	MaxImagesPerPost = 5
	// MaxImageSize - максимальный размер одного файла, 10 MiB
	MaxImageSize = 10 * 1024 * 1024
)

// Формат определяется по сигнатуре первых байт, а не по заявленному
// Content-Type: заголовку клиента доверять нельзя
var allowedImageTypes = []string{
	"image/jpeg", // FF D8 FF
	"image/png",  // 89 50 4E 47
}

// ValidateImages - чистая проверка без I/O, порядок правил фиксирован:
// пустой список, количество, размер каждого файла, сигнатура формата.
// Первая нарушенная проверка выигрывает.
func ValidateImages(files []models.UploadFile) error {
	if len(files) == 0 {
		return ErrImageRequired
	}

	if len(files) > MaxImagesPerPost {
		return fmt.Errorf("%w: получено %d, максимум %d", ErrImageCountExceeded, len(files), MaxImagesPerPost)
	}

	for _, f := range files {
		if f.Size > MaxImageSize {
			return fmt.Errorf("%w: %s", ErrImageSizeExceeded, f.FileName)
		}

		if !isAllowedImage(f.Data) {
			return fmt.Errorf("%w: %s", ErrInvalidImageType, f.FileName)
		}
	}

	return nil
}

func isAllowedImage(data []byte) bool {
	detected := mimetype.Detect(data)
	for _, allowed := range allowedImageTypes {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}

// DetectMimeType - фактический тип файла по сигнатуре
func DetectMimeType(data []byte) string {
	return mimetype.Detect(data).String()
}
