package service

import "errors"

// Типизированные ошибки ядра. Обработчики сопоставляют их с HTTP-статусами
// через errors.Is, наружу никогда не уходят сырые ошибки хранилищ.
var (
	// повторный запрос внутри TTL-окна - клиенту повторять не нужно
	ErrDuplicateRequest = errors.New("повторный запрос с тем же ключом идемпотентности")

	ErrImageRequired      = errors.New("требуется хотя бы одно изображение")
	ErrImageCountExceeded = errors.New("превышено допустимое количество изображений")
	ErrImageSizeExceeded  = errors.New("размер файла превышает допустимый")
	ErrInvalidImageType   = errors.New("недопустимый формат изображения")
	ErrImageOrderMismatch = errors.New("не все изображения удалось сопоставить")

	ErrImageUploadFailed = errors.New("ошибка загрузки изображений")

	ErrUserNotFound  = errors.New("пользователь не найден")
	ErrPostNotFound  = errors.New("пост не найден")
	ErrImageNotFound = errors.New("изображение не найдено")

	ErrPostAccessDenied = errors.New("доступ к посту запрещен")

	ErrUnknownChannel = errors.New("неизвестный канал")
)
