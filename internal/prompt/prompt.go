// Package prompt composes the generation instruction string. Compose is
// pure so callers can test prompt text without touching any client.
package prompt

import (
	"strings"

	"selfio-backend/internal/models"
)

const baseContext = "Use the uploaded user photo as the primary identity reference. " +
	"Preserve the person's facial structure, skin tone, age, gender expression, and ethnicity accurately. " +
	"Maintain photorealism. The final image must look like a high-end real photograph, not AI-generated."

// Realism levels accepted from clients. Anything else composes with an
// empty realism clause.
const (
	RealismNatural  = "natural"
	RealismEnhanced = "enhanced"
	RealismHot      = "hot"
	RealismGlowup   = "glowup"
)

var realismDescriptors = map[string]string{
	RealismNatural:  "maintaining exact facial features. Do not beautify unrealistically. No face distortion",
	RealismEnhanced: "Apply subtle enhancements but keep the face structure intact",
	RealismHot:      "Apply attractive enhancements and make the person hotter, without making significant facial changes",
	RealismGlowup:   "Apply significant beautification",
}

// DefaultGlasses is used when AddGlasses is set without a specific style.
const DefaultGlasses = "sun glasses"

// Compose builds the full generation instruction from the style's prompt
// fragment, the realism level, and the optional modifiers.
func Compose(stylePrompt, realismLevel string, opts models.GenerateOptions) string {
	var b strings.Builder
	b.WriteString("INSTRUCTION: ")
	b.WriteString(baseContext)
	b.WriteString("\nREALISM: ")
	b.WriteString(realismDescriptors[realismLevel])
	b.WriteString("\nIMAGE STYLE: ")
	b.WriteString(stylePrompt)

	if opts.ChangeHairstyle {
		b.WriteString("\nHAIRSTYLE: ")
		b.WriteString(opts.HairStyle)
	}
	if opts.AddGlasses {
		glasses := opts.Glasses
		if glasses == "" {
			glasses = DefaultGlasses
		}
		b.WriteString("\nGLASSES: ")
		b.WriteString(glasses)
	}

	return b.String()
}
