package domain

import (
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type Video struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	BlobName   string     `json:"blob_name"`
	BlobURL    string     `json:"blob_url"`
	UserID     uuid.UUID  `json:"user_id"`
	Visibility Visibility `json:"visibility"`
	Recipe     string     `json:"recipe,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
