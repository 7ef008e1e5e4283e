// Package generator produces hypnotherapy script text. Providers are pure
// with respect to the record store: they never read or write it, so they can
// be swapped without touching the core.
package generator

import (
	"context"
	"fmt"

	"mindscript/internal/domain"
)

// Generator turns a symptom list, tone and duration into script text.
type Generator interface {
	Generate(ctx context.Context, symptoms []string, tone domain.Tone, durationMinutes int) (string, error)
}

// New selects a provider by name. "stub" is the only built-in; an LLM-backed
// provider plugs in here without changing the service layer.
func New(provider string) (Generator, error) {
	switch provider {
	case "", "stub":
		return Stub{}, nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", provider)
	}
}
