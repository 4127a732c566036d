// Package analysis derives the five-axis stats and insight lines for a
// generated photo. The vision model is the primary source; Fallback is
// the deterministic substitute when the model errors or returns garbage.
package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"selfio-backend/internal/models"
)

type PhotoAnalysis struct {
	Stats    models.PhotoStats
	Insights []string
}

// VisionClient is the external vision-analysis call.
type VisionClient interface {
	AnalyzeImage(prompt, imageURL string) (string, error)
}

type Analyzer struct {
	vision VisionClient
}

func NewAnalyzer(vision VisionClient) *Analyzer {
	return &Analyzer{vision: vision}
}

const analystPromptFormat = `You are an expert photo analyst. Analyze this generated profile photo and provide:

1. Stats (rate 0-100 for each):
- formal: How formal/professional the image appears
- spicy: How attractive/alluring the image is
- cool: How trendy/stylish the image appears
- trustworthy: How trustworthy the person appears
- mysterious: How mysterious/enigmatic the person appears

2. Insights (3-4 brief observations - each observation should be a single sentence):
- Comment on how the %[1]s style enhances the photo
- Comment on suitability for %[2]s profiles
- Any other notable observations

Context:
- Style: %[1]s
- Category: %[2]s
- Realism Level: %[3]s

Respond ONLY with a valid JSON object in this exact format:
{
"stats": {
"formal": <number>,
"spicy": <number>,
"cool": <number>,
"trustworthy": <number>,
"mysterious": <number>
},
"insights": ["<insight 1>", "<insight 2>", "<insight 3>"]
}`

// rawAnalysis tolerates fractional ratings from the model.
type rawAnalysis struct {
	Stats struct {
		Formal      float64 `json:"formal"`
		Spicy       float64 `json:"spicy"`
		Cool        float64 `json:"cool"`
		Trustworthy float64 `json:"trustworthy"`
		Mysterious  float64 `json:"mysterious"`
	} `json:"stats"`
	Insights []string `json:"insights"`
}

// Analyze asks the vision model to rate the photo. Errors (transport,
// malformed JSON) are returned to the caller, which is expected to fall
// back to Fallback rather than abort.
func (a *Analyzer) Analyze(photoURL, styleCategory, styleName, realismLevel string) (PhotoAnalysis, error) {
	analystPrompt := fmt.Sprintf(analystPromptFormat, styleName, styleCategory, realismLevel)

	content, err := a.vision.AnalyzeImage(analystPrompt, photoURL)
	if err != nil {
		return PhotoAnalysis{}, fmt.Errorf("vision analysis failed: %w", err)
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return PhotoAnalysis{}, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	insights := raw.Insights
	if insights == nil {
		insights = []string{}
	}

	return PhotoAnalysis{
		Stats: models.PhotoStats{
			Formal:      clamp(raw.Stats.Formal),
			Spicy:       clamp(raw.Stats.Spicy),
			Cool:        clamp(raw.Stats.Cool),
			Trustworthy: clamp(raw.Stats.Trustworthy),
			Mysterious:  clamp(raw.Stats.Mysterious),
		},
		Insights: insights,
	}, nil
}

// Fallback produces deterministic stats and insights when the vision model
// is unavailable. Baselines get a category-correlated boost: work photos
// rate formal, dating photos rate spicy, anonymous photos rate mysterious.
func Fallback(styleCategory, styleName string) PhotoAnalysis {
	stats := models.PhotoStats{
		Formal:      40,
		Spicy:       35,
		Cool:        65,
		Trustworthy: 60,
		Mysterious:  30,
	}
	switch styleCategory {
	case models.CategoryWork:
		stats.Formal = 75
	case models.CategoryDating:
		stats.Spicy = 70
	case models.CategoryAnonymous:
		stats.Mysterious = 75
	}

	return PhotoAnalysis{
		Stats: stats,
		Insights: []string{
			"feels approachable",
			fmt.Sprintf("%s style enhances your look", styleName),
			fmt.Sprintf("Great for %s profiles", styleCategory),
		},
	}
}

func clamp(v float64) int {
	return int(math.Min(100, math.Max(0, math.Round(v))))
}
