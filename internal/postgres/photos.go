package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"selfio-backend/internal/models"
)

func (d *DatabaseClient) CreateGeneratedPhoto(photo *models.GeneratedPhoto) (*models.GeneratedPhoto, error) {
	statsJSON, err := json.Marshal(photo.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}
	insightsJSON, err := json.Marshal(photo.Insights)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal insights: %w", err)
	}

	var created models.GeneratedPhoto
	var rawStats, rawInsights []byte
	err = d.db.QueryRow(`
		INSERT INTO generated_photos (user_id, face_profile_id, style_id, image_url,
			title, category, energy_level, realism_level, stats, insights,
			is_watermarked, generation_prompt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, user_id, face_profile_id, style_id, image_url, title, category,
		          energy_level, realism_level, stats, insights, is_favorite,
		          is_watermarked, generation_prompt, created_at
	`, photo.UserID, photo.FaceProfileID, photo.StyleID, photo.ImageURL,
		photo.Title, photo.Category, photo.EnergyLevel, photo.RealismLevel,
		statsJSON, insightsJSON, photo.IsWatermarked, photo.GenerationPrompt,
	).Scan(
		&created.ID, &created.UserID, &created.FaceProfileID, &created.StyleID,
		&created.ImageURL, &created.Title, &created.Category, &created.EnergyLevel,
		&created.RealismLevel, &rawStats, &rawInsights, &created.IsFavorite,
		&created.IsWatermarked, &created.GenerationPrompt, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generated photo: %w", err)
	}

	if err := json.Unmarshal(rawStats, &created.Stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	if err := json.Unmarshal(rawInsights, &created.Insights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal insights: %w", err)
	}

	return &created, nil
}

func (d *DatabaseClient) GetGeneratedPhoto(photoID uuid.UUID, userID string) (*models.GeneratedPhoto, error) {
	var photo models.GeneratedPhoto
	var rawStats, rawInsights []byte
	err := d.db.QueryRow(`
		SELECT id, user_id, face_profile_id, style_id, image_url, title, category,
		       energy_level, realism_level, stats, insights, is_favorite,
		       is_watermarked, generation_prompt, created_at
		FROM generated_photos
		WHERE id = $1 AND user_id = $2
	`, photoID, userID).Scan(
		&photo.ID, &photo.UserID, &photo.FaceProfileID, &photo.StyleID,
		&photo.ImageURL, &photo.Title, &photo.Category, &photo.EnergyLevel,
		&photo.RealismLevel, &rawStats, &rawInsights, &photo.IsFavorite,
		&photo.IsWatermarked, &photo.GenerationPrompt, &photo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get generated photo: %w", err)
	}

	if err := json.Unmarshal(rawStats, &photo.Stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	if err := json.Unmarshal(rawInsights, &photo.Insights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal insights: %w", err)
	}

	return &photo, nil
}

func (d *DatabaseClient) ListGeneratedPhotos(userID string) ([]models.GeneratedPhoto, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, face_profile_id, style_id, image_url, title, category,
		       energy_level, realism_level, stats, insights, is_favorite,
		       is_watermarked, generation_prompt, created_at
		FROM generated_photos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated photos: %w", err)
	}
	defer rows.Close()

	var photos []models.GeneratedPhoto
	for rows.Next() {
		var photo models.GeneratedPhoto
		var rawStats, rawInsights []byte
		err := rows.Scan(
			&photo.ID, &photo.UserID, &photo.FaceProfileID, &photo.StyleID,
			&photo.ImageURL, &photo.Title, &photo.Category, &photo.EnergyLevel,
			&photo.RealismLevel, &rawStats, &rawInsights, &photo.IsFavorite,
			&photo.IsWatermarked, &photo.GenerationPrompt, &photo.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generated photo: %w", err)
		}
		if err := json.Unmarshal(rawStats, &photo.Stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
		}
		if err := json.Unmarshal(rawInsights, &photo.Insights); err != nil {
			return nil, fmt.Errorf("failed to unmarshal insights: %w", err)
		}
		photos = append(photos, photo)
	}

	return photos, nil
}

func (d *DatabaseClient) DeleteGeneratedPhoto(photoID uuid.UUID, userID string) error {
	_, err := d.db.Exec(`
		DELETE FROM generated_photos
		WHERE id = $1 AND user_id = $2
	`, photoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete generated photo: %w", err)
	}
	return nil
}
