package domain

import (
	"fmt"
	"strings"

	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

var ErrUnknownMood = fmt.Errorf("unknown mood: %w", sharedDomain.ErrValidation)

// Mood is the feeling a user tags a slot with.
type Mood int

const (
	MoodHappy Mood = iota
	MoodFocused
	MoodTired
)

func (m Mood) String() string {
	switch m {
	case MoodHappy:
		return "happy"
	case MoodFocused:
		return "focused"
	case MoodTired:
		return "tired"
	default:
		return "unknown"
	}
}

// AllMoods lists every mood in presentation order.
func AllMoods() []Mood {
	return []Mood{MoodHappy, MoodFocused, MoodTired}
}

// ParseMood converts a string to a Mood.
func ParseMood(s string) (Mood, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "happy":
		return MoodHappy, nil
	case "focused":
		return MoodFocused, nil
	case "tired":
		return MoodTired, nil
	default:
		return MoodHappy, fmt.Errorf("%w: %q", ErrUnknownMood, s)
	}
}
