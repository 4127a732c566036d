package models

// GenerateOptions are the optional modifiers for a generation run. Each
// field has a defined effect on the composed prompt; unset fields add
// nothing.
type GenerateOptions struct {
	// AspectRatio passed through to the generation service. Defaults to
	// "3:2" when empty.
	AspectRatio string `json:"aspectRatio,omitempty"`
	// ChangeHairstyle appends a HAIRSTYLE clause with HairStyle (which
	// may be empty).
	ChangeHairstyle bool   `json:"changeHairstyle,omitempty"`
	HairStyle       string `json:"hairStyle,omitempty"`
	// AddGlasses appends a GLASSES clause with Glasses, or "sun glasses"
	// when Glasses is empty.
	AddGlasses bool   `json:"addGlasses,omitempty"`
	Glasses    string `json:"glasses,omitempty"`
}

type GenerateRequest struct {
	FaceProfileID string          `json:"faceProfileId" binding:"required"`
	StyleID       string          `json:"styleId" binding:"required"`
	EnergyLevel   int             `json:"energyLevel"`
	RealismLevel  string          `json:"realismLevel"`
	Options       GenerateOptions `json:"options"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	// Upgrade signals the client to present the Pro upgrade offer.
	Upgrade bool `json:"upgrade,omitempty"`
}
