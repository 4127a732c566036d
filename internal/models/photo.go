package models

import (
	"time"

	"github.com/google/uuid"
)

// PhotoStats is the five-axis rating record attached to every generated
// photo. Each axis is an integer in [0,100].
type PhotoStats struct {
	Formal      int `json:"formal"`
	Spicy       int `json:"spicy"`
	Cool        int `json:"cool"`
	Trustworthy int `json:"trustworthy"`
	Mysterious  int `json:"mysterious"`
}

type GeneratedPhoto struct {
	ID     uuid.UUID
	UserID string
	// Source references go NULL if the face profile or style is later
	// deleted; the photo itself is kept.
	FaceProfileID uuid.NullUUID
	StyleID       uuid.NullUUID
	ImageURL         string
	Title            string
	Category         string
	EnergyLevel      int
	RealismLevel     string
	Stats            PhotoStats
	Insights         []string
	IsFavorite       bool
	IsWatermarked    bool
	GenerationPrompt string
	CreatedAt        time.Time
}
