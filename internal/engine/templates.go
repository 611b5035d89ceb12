package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gymling/internal/storage"
)

func (s *Service) Templates(ctx context.Context) ([]WorkoutTemplate, error) {
	var out []WorkoutTemplate
	if _, err := s.kv.Get(ctx, storage.KeyWorkoutTemplates, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveTemplate stores a named copy of w's exercises, title and notes.
func (s *Service) SaveTemplate(ctx context.Context, name string, w Workout) (WorkoutTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return WorkoutTemplate{}, fmt.Errorf("template %w", ErrNameRequired)
	}
	if err := ValidateExercises(w.Exercises); err != nil {
		return WorkoutTemplate{}, err
	}
	list, err := s.Templates(ctx)
	if err != nil {
		return WorkoutTemplate{}, err
	}
	t := WorkoutTemplate{
		ID:   uuid.NewString(),
		Name: name,
		Workout: Workout{
			Title:     w.Title,
			Notes:     w.Notes,
			Exercises: CopyExercises(w.Exercises),
		},
	}
	list = append(list, t)
	if err := s.kv.Set(ctx, storage.KeyWorkoutTemplates, list); err != nil {
		return WorkoutTemplate{}, err
	}
	return t, nil
}

func matchTemplate(t WorkoutTemplate, ref string) bool {
	return t.ID == ref || strings.EqualFold(strings.TrimSpace(t.Name), ref)
}

// FindTemplate matches by id or case-insensitive name.
func (s *Service) FindTemplate(ctx context.Context, ref string) (WorkoutTemplate, error) {
	ref = strings.TrimSpace(ref)
	list, err := s.Templates(ctx)
	if err != nil {
		return WorkoutTemplate{}, err
	}
	for _, t := range list {
		if matchTemplate(t, ref) {
			return t, nil
		}
	}
	return WorkoutTemplate{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, ref)
}

func (s *Service) DeleteTemplate(ctx context.Context, ref string) error {
	ref = strings.TrimSpace(ref)
	list, err := s.Templates(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	removed := false
	for _, t := range list {
		if !removed && matchTemplate(t, ref) {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, ref)
	}
	return s.kv.Set(ctx, storage.KeyWorkoutTemplates, kept)
}

// WorkoutFromTemplate instantiates a fresh, unsaved workout from a template.
func (s *Service) WorkoutFromTemplate(ctx context.Context, ref string) (Workout, error) {
	t, err := s.FindTemplate(ctx, ref)
	if err != nil {
		return Workout{}, err
	}
	return Workout{
		ID:        uuid.NewString(),
		Title:     t.Workout.Title,
		Date:      s.now(),
		Notes:     t.Workout.Notes,
		Exercises: CopyExercises(t.Workout.Exercises),
	}, nil
}
