package narration

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed voices.yaml
var embeddedVoices []byte

const defaultVoiceFamily = "TruthKeeper"

// Profile maps a voice family to concrete speech synthesis parameters.
type Profile struct {
	Voice   string  `yaml:"voice"`
	Speed   float64 `yaml:"speed"`
	Pitch   float64 `yaml:"pitch"`
	Emotion string  `yaml:"emotion"`
}

// VoiceTable resolves voice families to narration profiles. Unknown families
// resolve to the TruthKeeper profile.
type VoiceTable struct {
	profiles map[string]Profile
}

// LoadVoiceTable builds the voice table from the embedded defaults, merged
// with the optional override file at path. A missing override file is not an
// error; a present but unparseable one is.
func LoadVoiceTable(path string) (*VoiceTable, error) {
	profiles := make(map[string]Profile)
	if err := yaml.Unmarshal(embeddedVoices, &profiles); err != nil {
		return nil, fmt.Errorf("narration: parse embedded voice table: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// keep embedded defaults
		case err != nil:
			return nil, fmt.Errorf("narration: read voice table %s: %w", path, err)
		default:
			overrides := make(map[string]Profile)
			if err := yaml.Unmarshal(raw, &overrides); err != nil {
				return nil, fmt.Errorf("narration: parse voice table %s: %w", path, err)
			}
			for family, profile := range overrides {
				profiles[family] = profile
			}
		}
	}

	if _, ok := profiles[defaultVoiceFamily]; !ok {
		return nil, fmt.Errorf("narration: voice table missing %s profile", defaultVoiceFamily)
	}
	return &VoiceTable{profiles: profiles}, nil
}

// ProfileFor resolves family to a profile, defaulting to TruthKeeper for
// unknown or empty families.
func (t *VoiceTable) ProfileFor(family string) Profile {
	if profile, ok := t.profiles[family]; ok {
		return profile
	}
	return t.profiles[defaultVoiceFamily]
}
