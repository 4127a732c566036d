package postgres

import (
	"fmt"

	"github.com/google/uuid"

	"selfio-backend/internal/models"
)

func (d *DatabaseClient) CreateFaceProfile(userID, name, imageURL string, isDefault bool) (*models.FaceProfile, error) {
	var profile models.FaceProfile
	err := d.db.QueryRow(`
		INSERT INTO face_profiles (user_id, name, image_url, is_default)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, image_url, thumbnail_url, is_default, created_at
	`, userID, name, imageURL, isDefault).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.ImageURL,
		&profile.ThumbnailURL, &profile.IsDefault, &profile.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create face profile: %w", err)
	}

	return &profile, nil
}

// GetFaceProfile loads a face profile scoped to its owner. A profile
// belonging to another account reads as not found.
func (d *DatabaseClient) GetFaceProfile(profileID uuid.UUID, userID string) (*models.FaceProfile, error) {
	var profile models.FaceProfile
	err := d.db.QueryRow(`
		SELECT id, user_id, name, image_url, thumbnail_url, is_default, created_at
		FROM face_profiles
		WHERE id = $1 AND user_id = $2
	`, profileID, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.ImageURL,
		&profile.ThumbnailURL, &profile.IsDefault, &profile.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get face profile: %w", err)
	}

	return &profile, nil
}

func (d *DatabaseClient) ListFaceProfiles(userID string) ([]models.FaceProfile, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, name, image_url, thumbnail_url, is_default, created_at
		FROM face_profiles
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list face profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.FaceProfile
	for rows.Next() {
		var profile models.FaceProfile
		err := rows.Scan(
			&profile.ID, &profile.UserID, &profile.Name, &profile.ImageURL,
			&profile.ThumbnailURL, &profile.IsDefault, &profile.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan face profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

func (d *DatabaseClient) DeleteFaceProfile(profileID uuid.UUID, userID string) error {
	_, err := d.db.Exec(`
		DELETE FROM face_profiles
		WHERE id = $1 AND user_id = $2
	`, profileID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete face profile: %w", err)
	}
	return nil
}
