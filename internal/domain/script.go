package domain

import "time"

type Tone string

const (
	ToneCalm          Tone = "calm"
	ToneAuthoritative Tone = "authoritative"
	ToneCompassionate Tone = "compassionate"
	ToneEnergising    Tone = "energising"
)

// ValidTone reports whether t is one of the supported tones.
func ValidTone(t Tone) bool {
	switch t {
	case ToneCalm, ToneAuthoritative, ToneCompassionate, ToneEnergising:
		return true
	}
	return false
}

const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 60
)

// Script represents a generated hypnotherapy script owned by an account.
// Content is immutable once created; there is no update path.
type Script struct {
	ID              string
	OwnerID         string
	Title           string
	Symptoms        []string
	Tone            Tone
	DurationMinutes int
	Body            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone returns a deep copy so callers never share the stored slice.
func (s Script) Clone() Script {
	out := s
	out.Symptoms = append([]string(nil), s.Symptoms...)
	return out
}
