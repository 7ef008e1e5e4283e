package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindscript/internal/domain"
	"mindscript/internal/generator"
	"mindscript/internal/repository"
)

// GenerateParams carries the caller's request for a new script. An empty
// Tone or Title and a nil DurationMinutes mean "use the default"; a supplied
// out-of-range duration is rejected, not defaulted.
type GenerateParams struct {
	Symptoms        []string
	Tone            domain.Tone
	DurationMinutes *int
	Title           string
}

// ScriptService generates and manages scripts scoped to their owner.
type ScriptService interface {
	Generate(ctx context.Context, ownerID string, params GenerateParams) (*domain.Script, error)
	List(ctx context.Context, ownerID string) ([]domain.Script, error)
	Get(ctx context.Context, ownerID, scriptID string) (*domain.Script, error)
	Delete(ctx context.Context, ownerID, scriptID string) error
}

type scriptService struct {
	store     repository.Store
	generator generator.Generator
}

func NewScriptService(store repository.Store, gen generator.Generator) ScriptService {
	return &scriptService{store: store, generator: gen}
}

// Generate validates the request, invokes the text generator synchronously
// and persists the result. Generation and persistence are sequential, not
// transactional: if the write fails the error is returned and no partial
// script is visible.
func (s *scriptService) Generate(ctx context.Context, ownerID string, params GenerateParams) (*domain.Script, error) {
	if params.Tone == "" {
		params.Tone = domain.ToneCalm
	}
	duration := 20
	if params.DurationMinutes != nil {
		duration = *params.DurationMinutes
	}
	if strings.TrimSpace(params.Title) == "" {
		params.Title = "Session — " + time.Now().Format("Jan 2, 2006")
	}

	if len(params.Symptoms) == 0 {
		return nil, fmt.Errorf("%w: symptoms must be a non-empty array", ErrValidation)
	}
	symptoms := make([]string, len(params.Symptoms))
	for i, symptom := range params.Symptoms {
		symptom = strings.TrimSpace(symptom)
		if symptom == "" {
			return nil, fmt.Errorf("%w: each symptom must be a non-empty string", ErrValidation)
		}
		symptoms[i] = symptom
	}
	if !domain.ValidTone(params.Tone) {
		return nil, fmt.Errorf("%w: tone must be calm | authoritative | compassionate | energising", ErrValidation)
	}
	if duration < domain.MinDurationMinutes || duration > domain.MaxDurationMinutes {
		return nil, fmt.Errorf("%w: duration must be %d-%d minutes", ErrValidation, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	body, err := s.generator.Generate(ctx, symptoms, params.Tone, duration)
	if err != nil {
		return nil, fmt.Errorf("generate script: %w", err)
	}

	script, err := s.store.CreateScript(ctx, domain.Script{
		OwnerID:         ownerID,
		Title:           strings.TrimSpace(params.Title),
		Symptoms:        symptoms,
		Tone:            params.Tone,
		DurationMinutes: duration,
		Body:            body,
	})
	if err != nil {
		return nil, fmt.Errorf("persist script: %w", err)
	}
	return script, nil
}

func (s *scriptService) List(ctx context.Context, ownerID string) ([]domain.Script, error) {
	return s.store.ListScripts(ctx, ownerID)
}

func (s *scriptService) Get(ctx context.Context, ownerID, scriptID string) (*domain.Script, error) {
	script, err := s.store.GetScript(ctx, ownerID, scriptID)
	if err != nil {
		return nil, err
	}
	if script == nil {
		return nil, ErrScriptNotFound
	}
	return script, nil
}

func (s *scriptService) Delete(ctx context.Context, ownerID, scriptID string) error {
	deleted, err := s.store.DeleteScript(ctx, ownerID, scriptID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrScriptNotFound
	}
	return nil
}
