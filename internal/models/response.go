package models

import "time"

type HealthResponse struct {
	Status string `json:"status"`
}

type StyleResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	CoverImageURL string `json:"cover_image_url"`
	Category      string `json:"category"`
	IsPremium     bool   `json:"is_premium"`
}

type StyleListResponse struct {
	Styles []StyleResponse `json:"styles"`
}

type FaceProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

type FaceProfileListResponse struct {
	Profiles []FaceProfileResponse `json:"profiles"`
}

type PhotoResponse struct {
	ID            string     `json:"id"`
	ImageURL      string     `json:"image_url"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	EnergyLevel   int        `json:"energy_level"`
	RealismLevel  string     `json:"realism_level"`
	Stats         PhotoStats `json:"stats"`
	Insights      []string   `json:"insights"`
	IsFavorite    bool       `json:"is_favorite"`
	IsWatermarked bool       `json:"is_watermarked"`
	CreatedAt     time.Time  `json:"created_at"`
}

type PhotoListResponse struct {
	Photos []PhotoResponse `json:"photos"`
}

type GenerateResponse struct {
	Success bool          `json:"success"`
	Photo   PhotoResponse `json:"photo"`
}

type SubscriptionResponse struct {
	Tier                 string `json:"tier"`
	GenerationsThisMonth int    `json:"generations_this_month"`
	// GenerationsRemaining is -1 for pro accounts (unlimited).
	GenerationsRemaining int `json:"generations_remaining"`
}
