package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"bizchat/internal/models"
)

//go:embed profiles.json
var builtinProfiles []byte

// ProfileRepo is a read-only table of business profiles keyed by id.
// It is filled once at startup and never mutated afterwards.
type ProfileRepo struct {
	profiles map[string]models.BusinessProfile
}

// NewProfileRepo builds a repo from the given profiles. A "default" profile
// is required because unknown ids resolve to it.
func NewProfileRepo(profiles []models.BusinessProfile) (*ProfileRepo, error) {
	m := make(map[string]models.BusinessProfile, len(profiles))
	for _, p := range profiles {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("business profile with empty id")
		}
		if strings.TrimSpace(p.SystemPrompt) == "" {
			return nil, fmt.Errorf("business profile %q has no system prompt", id)
		}
		if _, dup := m[id]; dup {
			return nil, fmt.Errorf("duplicate business profile %q", id)
		}
		p.ID = id
		m[id] = p
	}
	if _, ok := m[models.DefaultProfileID]; !ok {
		return nil, fmt.Errorf("business profiles must include a %q profile", models.DefaultProfileID)
	}
	return &ProfileRepo{profiles: m}, nil
}

// LoadProfileRepo reads profiles from path, or the built-in table when path is empty.
func LoadProfileRepo(path string) (*ProfileRepo, error) {
	data := builtinProfiles
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read business profiles: %w", err)
		}
		data = b
	}

	var profiles []models.BusinessProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse business profiles: %w", err)
	}
	return NewProfileRepo(profiles)
}

// Get returns the profile for id, falling back to the default profile.
// The boolean reports whether id itself was known.
func (r *ProfileRepo) Get(id string) (models.BusinessProfile, bool) {
	if p, ok := r.profiles[id]; ok {
		return p, true
	}
	return r.profiles[models.DefaultProfileID], false
}

// Len returns the number of configured profiles.
func (r *ProfileRepo) Len() int {
	return len(r.profiles)
}
