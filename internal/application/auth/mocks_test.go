package auth_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

type gatewayMock struct{ mock.Mock }

func (m *gatewayMock) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*entity.Session)
	return s, args.Error(1)
}

func (m *gatewayMock) RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	args := m.Called(ctx, refreshToken)
	s, _ := args.Get(0).(*entity.Session)
	return s, args.Error(1)
}

func (m *gatewayMock) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *gatewayMock) GetUser(ctx context.Context, accessToken string) (*entity.AuthUser, error) {
	args := m.Called(ctx, accessToken)
	u, _ := args.Get(0).(*entity.AuthUser)
	return u, args.Error(1)
}

func (m *gatewayMock) UpdateUserMetadata(ctx context.Context, accessToken string, meta entity.UserMetadata) (*entity.AuthUser, error) {
	args := m.Called(ctx, accessToken, meta)
	u, _ := args.Get(0).(*entity.AuthUser)
	return u, args.Error(1)
}

// profileRepoFake guarda perfiles en memoria y registra el principal de cada lectura.
type profileRepoFake struct {
	profiles map[string]*entity.Profile
	err      error
	seen     []entity.Principal
}

func (f *profileRepoFake) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	p, _ := entity.PrincipalFrom(ctx)
	f.seen = append(f.seen, p)
	if f.err != nil {
		return nil, f.err
	}
	prof, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return prof, nil
}

func (f *profileRepoFake) List(context.Context) ([]*entity.Profile, error) { return nil, nil }

func (f *profileRepoFake) UpdateFullName(context.Context, string, string) error { return nil }

// sourceFake SessionSource en memoria con suscriptores.
type sourceFake struct {
	mu      sync.Mutex
	current *entity.Session
	subs    map[int]func(entity.AuthEvent, *entity.Session)
	next    int
	saved   []entity.AuthEvent
	cleared int
}

func newSourceFake(current *entity.Session) *sourceFake {
	return &sourceFake{current: current, subs: map[int]func(entity.AuthEvent, *entity.Session){}}
}

func (f *sourceFake) Current(context.Context) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *sourceFake) Save(event entity.AuthEvent, s *entity.Session) {
	f.mu.Lock()
	f.current = s
	f.saved = append(f.saved, event)
	f.mu.Unlock()
	f.emit(event, s)
}

func (f *sourceFake) Clear() {
	f.mu.Lock()
	f.current = nil
	f.cleared++
	f.mu.Unlock()
	f.emit(entity.EventSignedOut, nil)
}

func (f *sourceFake) Subscribe(fn func(entity.AuthEvent, *entity.Session)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *sourceFake) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *sourceFake) emit(event entity.AuthEvent, s *entity.Session) {
	f.mu.Lock()
	fns := make([]func(entity.AuthEvent, *entity.Session), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(event, s)
	}
}

func ptr(s string) *string { return &s }

func testSession(id, email string) *entity.Session {
	return &entity.Session{
		AccessToken:  "access-" + id,
		RefreshToken: "refresh-" + id,
		TokenType:    "bearer",
		User:         entity.AuthUser{ID: id, Email: email, UserMetadata: map[string]any{}},
	}
}
