package auth

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// SessionStore estado de autenticación de un cliente: sesión, usuario, rol y carga inicial.
// Se crea una vez por aplicación y se pasa explícitamente a quien lo necesite.
// Start carga la sesión existente y se suscribe a cambios; Close cancela la suscripción.
type SessionStore struct {
	uc     *AuthUseCase
	source SessionSource
	log    zerolog.Logger

	mu          sync.RWMutex
	session     *entity.Session
	loading     bool
	unsubscribe func()
}

// NewSessionStore construye el store en estado "cargando".
func NewSessionStore(uc *AuthUseCase, source SessionSource, log zerolog.Logger) *SessionStore {
	return &SessionStore{uc: uc, source: source, log: log, loading: true}
}

// Start obtiene la sesión actual y luego se suscribe a las notificaciones del origen.
func (s *SessionStore) Start(ctx context.Context) error {
	current, err := s.source.Current(ctx)
	s.mu.Lock()
	s.session = current
	s.loading = false
	s.mu.Unlock()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo recuperar la sesión existente")
	}

	unsubscribe := s.source.Subscribe(func(_ entity.AuthEvent, sess *entity.Session) {
		s.mu.Lock()
		s.session = sess
		s.loading = false
		s.mu.Unlock()
	})
	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
	return err
}

// Close cancela la suscripción. Es idempotente.
func (s *SessionStore) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// SignIn inicia sesión y publica la nueva sesión en el origen.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	session, err := s.uc.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.set(session)
	s.source.Save(entity.EventSignedIn, session)
	return session, nil
}

// SignOut invalida la sesión en el backend y limpia el estado local aunque el backend falle.
func (s *SessionStore) SignOut(ctx context.Context) error {
	current := s.Session()
	var err error
	if current != nil {
		err = s.uc.SignOut(ctx, current.AccessToken)
		if err != nil {
			s.log.Warn().Err(err).Msg("error al cerrar sesión en el backend")
		}
	}
	s.set(nil)
	s.source.Clear()
	return err
}

// SyncMetadata vuelve a copiar rol y nombre del Profile a la sesión actual
// (después de que un administrador edite el propio perfil).
func (s *SessionStore) SyncMetadata(ctx context.Context) error {
	current := s.Session()
	if current == nil {
		return domain.ErrUnauthorized
	}
	user, err := s.uc.SyncMetadata(ctx, current)
	if err != nil {
		return err
	}
	updated := *current
	updated.User = *user
	s.set(&updated)
	s.source.Save(entity.EventUserUpdated, &updated)
	return nil
}

// RefreshMetadata igual que SyncMetadata; el llamador es siempre el dueño de la sesión.
func (s *SessionStore) RefreshMetadata(ctx context.Context, _ entity.Principal) error {
	return s.SyncMetadata(ctx)
}

// Session devuelve una copia de la sesión actual o nil.
func (s *SessionStore) Session() *entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// User usuario de la sesión actual o nil.
func (s *SessionStore) User() *entity.AuthUser {
	sess := s.Session()
	if sess == nil {
		return nil
	}
	return &sess.User
}

// Loading es true hasta que Start termina la carga inicial.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Role rol resuelto de la sesión actual.
func (s *SessionStore) Role() entity.Role {
	return s.User().Role()
}

// IsAdmin atajo para Role().IsAdmin().
func (s *SessionStore) IsAdmin() bool {
	return s.Role().IsAdmin()
}

// Principal identidad para las operaciones del cliente.
func (s *SessionStore) Principal() (entity.Principal, bool) {
	sess := s.Session()
	if sess == nil {
		return entity.Principal{}, false
	}
	return sess.Principal(), true
}

// Context adjunta el principal de la sesión actual a ctx.
func (s *SessionStore) Context(ctx context.Context) (context.Context, error) {
	p, ok := s.Principal()
	if !ok {
		return ctx, domain.NewError(domain.ErrUnauthorized, "Sessão expirada. Faça login novamente.")
	}
	return entity.WithPrincipal(ctx, p), nil
}

func (s *SessionStore) set(session *entity.Session) {
	s.mu.Lock()
	s.session = session
	s.loading = false
	s.mu.Unlock()
}
