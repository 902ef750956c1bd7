package models

import (
	"time"
)

// Статусы жизненного цикла изображения
const (
	ImageStatusPending           = "PENDING"
	ImageStatusActive            = "ACTIVE"
	ImageStatusMarkedForDeletion = "MARKED_FOR_DELETION"
	ImageStatusDeleted           = "DELETED"
)

const (
	PostStatusActive  = "ACTIVE"
	PostStatusDeleted = "DELETED"
)

// ChannelAll - общий канал, видимый всем командам
const ChannelAll = "ALL"

// KnownChannels - допустимые коды командных каналов
var KnownChannels = map[string]bool{
	"GENERAL":   true,
	"DEV":       true,
	"DESIGN":    true,
	"MARKETING": true,
	"HR":        true,
}

type User struct {
	UserID      string    `json:"userId" db:"user_id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"displayName" db:"display_name"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID        string       `json:"postId" db:"post_id"`
	AuthorID      string       `json:"authorId" db:"author_id"`
	Content       string       `json:"content" db:"content"`
	Channel       string       `json:"channel" db:"channel"`
	CommentCount  int          `json:"commentCount" db:"comment_count"`
	ReactionCount int          `json:"reactionCount" db:"reaction_count"`
	Status        string       `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
	Images        []ImageAsset `json:"images,omitempty" db:"-"`
	Hashtags      []string     `json:"hashtags,omitempty" db:"-"`
}

// ImageAsset - метаданные загруженного файла. PostID пустой, пока
// изображение не привязано к посту (статус PENDING).
type ImageAsset struct {
	ImageID      string    `json:"imageId" db:"image_id"`
	OwnerID      string    `json:"ownerId" db:"owner_id"`
	PostID       *string   `json:"postId" db:"post_id"`
	ImageURL     string    `json:"imageUrl" db:"image_url"`
	OriginalName string    `json:"originalName" db:"original_name"`
	StorageName  string    `json:"storageName" db:"storage_name"`
	ByteSize     int64     `json:"byteSize" db:"byte_size"`
	MimeType     string    `json:"mimeType" db:"mime_type"`
	SortOrder    int       `json:"sortOrder" db:"sort_order"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type Hashtag struct {
	HashtagID  string `json:"hashtagId" db:"hashtag_id"`
	Name       string `json:"name" db:"name"`
	UsageCount int    `json:"usageCount" db:"usage_count"`
}

type PostHashtag struct {
	PostID    string `json:"postId" db:"post_id"`
	HashtagID string `json:"hashtagId" db:"hashtag_id"`
}

// ImageUploadError - запись о файле, который не удалось удалить при
// откате. Таблица только пополняется, resolved_at проставляет оператор.
type ImageUploadError struct {
	ErrorID     string     `json:"errorId" db:"error_id"`
	ImageURL    string     `json:"imageUrl" db:"image_url"`
	StorageName string     `json:"storageName" db:"storage_name"`
	OwnerID     string     `json:"ownerId" db:"owner_id"`
	OccurredAt  time.Time  `json:"occurredAt" db:"occurred_at"`
	ResolvedAt  *time.Time `json:"resolvedAt" db:"resolved_at"`
}

// UploadFile - файл из multipart-формы, прочитанный в память
type UploadFile struct {
	FileName string
	Size     int64
	Data     []byte
}

// ImageRef - ссылка на загруженное изображение с позицией в посте
type ImageRef struct {
	ImageID   string `json:"imageId" validate:"required"`
	SortOrder int    `json:"sortOrder"`
}
