package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type FaceProfile struct {
	ID           uuid.UUID
	UserID       string
	Name         string
	ImageURL     string
	ThumbnailURL sql.NullString
	IsDefault    bool
	CreatedAt    time.Time
}
