package postgres

import (
	"fmt"

	"github.com/google/uuid"

	"selfio-backend/internal/models"
)

func (d *DatabaseClient) GetStyle(styleID uuid.UUID) (*models.Style, error) {
	var style models.Style
	err := d.db.QueryRow(`
		SELECT id, name, description, cover_image_url, category, is_premium,
		       prompt, negative_prompt, sort_order, is_active, created_at
		FROM styles
		WHERE id = $1
	`, styleID).Scan(
		&style.ID, &style.Name, &style.Description, &style.CoverImageURL,
		&style.Category, &style.IsPremium, &style.Prompt, &style.NegativePrompt,
		&style.SortOrder, &style.IsActive, &style.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get style: %w", err)
	}

	return &style, nil
}

func (d *DatabaseClient) ListActiveStyles() ([]models.Style, error) {
	rows, err := d.db.Query(`
		SELECT id, name, description, cover_image_url, category, is_premium,
		       prompt, negative_prompt, sort_order, is_active, created_at
		FROM styles
		WHERE is_active = TRUE
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list styles: %w", err)
	}
	defer rows.Close()

	var styles []models.Style
	for rows.Next() {
		var style models.Style
		err := rows.Scan(
			&style.ID, &style.Name, &style.Description, &style.CoverImageURL,
			&style.Category, &style.IsPremium, &style.Prompt, &style.NegativePrompt,
			&style.SortOrder, &style.IsActive, &style.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan style: %w", err)
		}
		styles = append(styles, style)
	}

	return styles, nil
}
