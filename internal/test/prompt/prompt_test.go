package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"selfio-backend/internal/models"
	"selfio-backend/internal/prompt"
)

func TestCompose_Deterministic(t *testing.T) {
	opts := models.GenerateOptions{
		ChangeHairstyle: true,
		HairStyle:       "curtain bangs",
		AddGlasses:      true,
	}

	first := prompt.Compose("professional headshot", prompt.RealismNatural, opts)
	second := prompt.Compose("professional headshot", prompt.RealismNatural, opts)

	assert.Equal(t, first, second)
}

func TestCompose_Structure(t *testing.T) {
	result := prompt.Compose("confident dating profile", prompt.RealismNatural, models.GenerateOptions{})

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "INSTRUCTION: "))
	assert.Equal(t, "REALISM: maintaining exact facial features. Do not beautify unrealistically. No face distortion", lines[1])
	assert.Equal(t, "IMAGE STYLE: confident dating profile", lines[2])
}

func TestCompose_UnknownRealismLevel(t *testing.T) {
	result := prompt.Compose("artistic portrait", "unknown_value", models.GenerateOptions{})

	// Unknown level composes with an empty realism clause, not an error.
	assert.Contains(t, result, "\nREALISM: \n")
}

func TestCompose_RealismLevels(t *testing.T) {
	levels := []string{prompt.RealismNatural, prompt.RealismEnhanced, prompt.RealismHot, prompt.RealismGlowup}

	seen := make(map[string]bool)
	for _, level := range levels {
		result := prompt.Compose("base", level, models.GenerateOptions{})
		assert.NotContains(t, result, "REALISM: \n", "level %s should have a descriptor", level)
		seen[result] = true
	}
	assert.Len(t, seen, len(levels), "each level composes a distinct prompt")
}

func TestCompose_HairstyleClause(t *testing.T) {
	withHair := prompt.Compose("base", prompt.RealismNatural, models.GenerateOptions{
		ChangeHairstyle: true,
		HairStyle:       "buzz cut",
	})
	assert.Contains(t, withHair, "\nHAIRSTYLE: buzz cut")

	// Flag set with no token still appends the clause.
	emptyHair := prompt.Compose("base", prompt.RealismNatural, models.GenerateOptions{
		ChangeHairstyle: true,
	})
	assert.True(t, strings.HasSuffix(emptyHair, "\nHAIRSTYLE: "))

	without := prompt.Compose("base", prompt.RealismNatural, models.GenerateOptions{
		HairStyle: "buzz cut",
	})
	assert.NotContains(t, without, "HAIRSTYLE")
}

func TestCompose_GlassesClause(t *testing.T) {
	specific := prompt.Compose("base", prompt.RealismNatural, models.GenerateOptions{
		AddGlasses: true,
		Glasses:    "round wire frames",
	})
	assert.Contains(t, specific, "\nGLASSES: round wire frames")

	defaulted := prompt.Compose("base", prompt.RealismNatural, models.GenerateOptions{
		AddGlasses: true,
	})
	assert.Contains(t, defaulted, "\nGLASSES: "+prompt.DefaultGlasses)

	without := prompt.Compose("base", prompt.RealismNatural, models.GenerateOptions{})
	assert.NotContains(t, without, "GLASSES")
}
