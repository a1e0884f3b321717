package models

// DefaultProfileID names the profile used when a business id is unknown.
const DefaultProfileID = "default"

// BusinessProfile is a statically configured assistant persona.
type BusinessProfile struct {
	ID           string `json:"id"`
	DisplayName  string `json:"name"`
	SystemPrompt string `json:"systemPrompt"`
}
