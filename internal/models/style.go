package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Style categories. Seeded styles cover all six; the category is copied
// onto every photo generated with the style.
const (
	CategoryWork      = "work"
	CategoryDating    = "dating"
	CategorySocial    = "social"
	CategoryAnonymous = "anonymous"
	CategoryCreative  = "creative"
	CategoryTravel    = "travel"
)

type Style struct {
	ID             uuid.UUID
	Name           string
	Description    sql.NullString
	CoverImageURL  string
	Category       string
	IsPremium      bool
	Prompt         string
	NegativePrompt sql.NullString
	SortOrder      int
	IsActive       bool
	CreatedAt      time.Time
}
