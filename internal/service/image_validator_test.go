package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"socialfeedCPT/internal/models"
)

var (
	jpegData = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x01}, 64)...)
	pngData  = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0x02}, 64)...)
	gifData  = append([]byte("GIF89a"), bytes.Repeat([]byte{0x03}, 64)...)
)

func jpegFile(name string) models.UploadFile {
	return models.UploadFile{FileName: name, Size: int64(len(jpegData)), Data: jpegData}
}

func TestValidateImages(t *testing.T) {
	t.Run("Пустой список отклоняется", func(t *testing.T) {
		err := ValidateImages(nil)
		assert.ErrorIs(t, err, ErrImageRequired)
	})

	t.Run("JPEG и PNG проходят", func(t *testing.T) {
		files := []models.UploadFile{
			jpegFile("a.jpg"),
			{FileName: "b.png", Size: int64(len(pngData)), Data: pngData},
		}

		assert.NoError(t, ValidateImages(files))
	})

	t.Run("Ровно пять файлов проходят", func(t *testing.T) {
		files := make([]models.UploadFile, 0, 5)
		for i := 0; i < 5; i++ {
			files = append(files, jpegFile("f.jpg"))
		}

		assert.NoError(t, ValidateImages(files))
	})

	t.Run("Шесть файлов отклоняются", func(t *testing.T) {
		files := make([]models.UploadFile, 0, 6)
		for i := 0; i < 6; i++ {
			files = append(files, jpegFile("f.jpg"))
		}

		err := ValidateImages(files)
		assert.ErrorIs(t, err, ErrImageCountExceeded)
	})

	t.Run("Файл больше 10 MiB отклоняется", func(t *testing.T) {
		files := []models.UploadFile{
			{FileName: "big.jpg", Size: MaxImageSize + 1, Data: jpegData},
		}

		err := ValidateImages(files)
		assert.ErrorIs(t, err, ErrImageSizeExceeded)
	})

	t.Run("Файл ровно 10 MiB проходит", func(t *testing.T) {
		files := []models.UploadFile{
			{FileName: "exact.jpg", Size: MaxImageSize, Data: jpegData},
		}

		assert.NoError(t, ValidateImages(files))
	})

	t.Run("GIF отклоняется по сигнатуре", func(t *testing.T) {
		files := []models.UploadFile{
			{FileName: "anim.gif", Size: int64(len(gifData)), Data: gifData},
		}

		err := ValidateImages(files)
		assert.ErrorIs(t, err, ErrInvalidImageType)
	})

	t.Run("Подделка расширения не помогает", func(t *testing.T) {
		// содержимое GIF под именем .jpg: решает сигнатура, а не имя
		files := []models.UploadFile{
			{FileName: "fake.jpg", Size: int64(len(gifData)), Data: gifData},
		}

		err := ValidateImages(files)
		assert.ErrorIs(t, err, ErrInvalidImageType)
	})

	t.Run("Порядок проверок: размер раньше сигнатуры", func(t *testing.T) {
		files := []models.UploadFile{
			{FileName: "big.gif", Size: MaxImageSize + 1, Data: gifData},
		}

		err := ValidateImages(files)
		assert.ErrorIs(t, err, ErrImageSizeExceeded)
	})
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "image/jpeg", DetectMimeType(jpegData))
	assert.Equal(t, "image/png", DetectMimeType(pngData))
}
