package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"selfio-backend/internal/analysis"
	"selfio-backend/internal/models"
	"selfio-backend/internal/prompt"
	"selfio-backend/internal/replicate"
)

// Pipeline errors. QuotaExceeded and PremiumRequired both carry the
// upgrade signal; handlers translate them to 403 with upgrade=true.
var (
	ErrQuotaExceeded    = errors.New("generation limit reached")
	ErrPremiumRequired  = errors.New("premium style requires pro subscription")
	ErrNotFound         = errors.New("not found")
	ErrGenerationFailed = errors.New("generation failed")
)

// Store is the slice of the database the pipeline reads and writes.
type Store interface {
	GetUser(userID string) (*models.User, error)
	GetFaceProfile(profileID uuid.UUID, userID string) (*models.FaceProfile, error)
	GetStyle(styleID uuid.UUID) (*models.Style, error)
	CreateGeneratedPhoto(photo *models.GeneratedPhoto) (*models.GeneratedPhoto, error)
	IncrementGenerations(userID string) error
}

// ImageGenerator is the external image-generation service.
type ImageGenerator interface {
	Generate(input replicate.GenerationInput) (string, error)
	DownloadImage(url string) ([]byte, string, error)
}

// Uploader re-hosts generated bytes on first-party storage.
type Uploader interface {
	UploadFile(key string, data []byte, contentType string) (string, error)
}

// Analyzer is the external vision-analysis call.
type Analyzer interface {
	Analyze(photoURL, styleCategory, styleName, realismLevel string) (analysis.PhotoAnalysis, error)
}

const defaultAspectRatio = "3:2"
const generationQuality = "medium"

// GenerationService runs the portrait generation pipeline: entitlement
// gate, resource resolution, prompt composition, generation, re-hosting,
// analysis, persist, usage commit. All dependencies are injected.
type GenerationService struct {
	store     Store
	generator ImageGenerator
	storage   Uploader
	analyzer  Analyzer
	now       func() time.Time
}

func NewGenerationService(store Store, generator ImageGenerator, storage Uploader, analyzer Analyzer) *GenerationService {
	return &GenerationService{
		store:     store,
		generator: generator,
		storage:   storage,
		analyzer:  analyzer,
		now:       time.Now,
	}
}

type GenerateParams struct {
	FaceProfileID uuid.UUID
	StyleID       uuid.UUID
	EnergyLevel   int
	RealismLevel  string
	Options       models.GenerateOptions
}

// Generate runs the full pipeline for one request. Gate failures return
// before any external call; once generation starts, any failure short of
// the analysis step aborts with nothing persisted and no counter change.
func (s *GenerationService) Generate(userID string, params GenerateParams) (*models.GeneratedPhoto, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	isFree := user.SubscriptionTier == models.TierFree
	if isFree && user.GenerationsThisMonth >= models.FreeMonthlyLimit {
		return nil, ErrQuotaExceeded
	}

	faceProfile, err := s.store.GetFaceProfile(params.FaceProfileID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: face profile", ErrNotFound)
		}
		return nil, err
	}

	style, err := s.store.GetStyle(params.StyleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: style", ErrNotFound)
		}
		return nil, err
	}

	if style.IsPremium && isFree {
		return nil, ErrPremiumRequired
	}

	generationPrompt := prompt.Compose(style.Prompt, params.RealismLevel, params.Options)

	aspectRatio := params.Options.AspectRatio
	if aspectRatio == "" {
		aspectRatio = defaultAspectRatio
	}

	outputURL, err := s.generator.Generate(replicate.GenerationInput{
		InputImages: []string{faceProfile.ImageURL},
		Prompt:      generationPrompt,
		AspectRatio: aspectRatio,
		Quality:     generationQuality,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	data, contentType, err := s.generator.DownloadImage(outputURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	key := fmt.Sprintf("generated/%s/%d-%s.jpg", userID, s.now().UnixMilli(), style.ID)
	imageURL, err := s.storage.UploadFile(key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	result, err := s.analyzer.Analyze(imageURL, style.Category, style.Name, params.RealismLevel)
	if err != nil {
		// Analysis is best-effort; the run still succeeds with the
		// deterministic fallback.
		log.Printf("analysis fallback for user %s: %v", userID, err)
		result = analysis.Fallback(style.Category, style.Name)
	}

	photo := &models.GeneratedPhoto{
		UserID:           userID,
		FaceProfileID:    uuid.NullUUID{UUID: faceProfile.ID, Valid: true},
		StyleID:          uuid.NullUUID{UUID: style.ID, Valid: true},
		ImageURL:         imageURL,
		Title:            style.Name + " Look",
		Category:         style.Category,
		EnergyLevel:      params.EnergyLevel,
		RealismLevel:     params.RealismLevel,
		Stats:            result.Stats,
		Insights:         result.Insights,
		IsWatermarked:    isFree,
		GenerationPrompt: generationPrompt,
	}

	created, err := s.store.CreateGeneratedPhoto(photo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if isFree {
		if err := s.store.IncrementGenerations(userID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
	}

	return created, nil
}
