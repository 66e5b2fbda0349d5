package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// ProfileRepo implementa repository.ProfileRepository.
type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("profiles.get"); err != nil {
		return nil, err
	}
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("profiles.list"); err != nil {
		return nil, err
	}
	out := make([]*entity.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *ProfileRepo) UpdateFullName(ctx context.Context, id, fullName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("profiles.update_full_name"); err != nil {
		return err
	}
	p, ok := r.s.profiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.FullName = &fullName
	p.UpdatedAt = time.Now()
	return nil
}
