package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type programRepo struct {
	store *Store
}

// Programs returns the store's program catalog repository.
func (s *Store) Programs() repository.ProgramRepository {
	return &programRepo{store: s}
}

func (r *programRepo) Create(_ context.Context, program *domain.Program) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	if _, exists := r.store.programs[program.ID]; exists {
		return "", repository.ErrConflict
	}
	now := r.store.now()
	program.CreatedAt = now
	program.UpdatedAt = now
	r.store.programs[program.ID] = copyProgram(*program)
	return program.ID, nil
}

func (r *programRepo) GetByID(_ context.Context, id string) (*domain.Program, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := copyProgram(p)
	return &found, nil
}

func (r *programRepo) List(_ context.Context, filter repository.ProgramFilter) ([]domain.Program, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	programs := make([]domain.Program, 0)
	for _, p := range r.store.programs {
		if filter.AuthoredOnly && p.AuthorID != filter.AuthorID {
			continue
		}
		if !p.IsPublic && (filter.PublicOnly || p.AuthorID != filter.AuthorID) {
			continue
		}
		if filter.Difficulty != "" && p.Difficulty != filter.Difficulty {
			continue
		}
		if filter.MuscleGroup != "" &&
			!strings.Contains(strings.ToLower(p.TargetMuscleGroups), strings.ToLower(filter.MuscleGroup)) {
			continue
		}
		programs = append(programs, copyProgram(p))
	}
	sort.Slice(programs, func(i, j int) bool {
		return programs[i].CreatedAt.After(programs[j].CreatedAt)
	})

	if filter.Skip > 0 {
		if filter.Skip >= len(programs) {
			return []domain.Program{}, nil
		}
		programs = programs[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < len(programs) {
		programs = programs[:filter.Limit]
	}
	return programs, nil
}

func (r *programRepo) SetImageKey(_ context.Context, id, imageKey string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.programs[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.ImageKey = imageKey
	p.UpdatedAt = r.store.now()
	r.store.programs[id] = p
	return nil
}

func (r *programRepo) Update(_ context.Context, program *domain.Program) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.programs[program.ID]
	if !ok {
		return repository.ErrNotFound
	}
	program.AuthorID = existing.AuthorID
	program.ImageKey = existing.ImageKey
	program.CreatedAt = existing.CreatedAt
	program.UpdatedAt = r.store.now()
	if program.Details == nil {
		program.Details = []domain.ProgramDetail{}
	}
	r.store.programs[program.ID] = copyProgram(*program)
	return nil
}

func (r *programRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.programs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.programs, id)
	return nil
}

func copyProgram(p domain.Program) domain.Program {
	if p.Details != nil {
		details := make([]domain.ProgramDetail, len(p.Details))
		copy(details, p.Details)
		p.Details = details
	}
	return p
}
