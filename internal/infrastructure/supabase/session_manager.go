package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// DefaultRefreshMargin cuánto antes del vencimiento se renueva el token.
const DefaultRefreshMargin = 60 * time.Second

// Refresher renueva una sesión con su refresh token.
type Refresher interface {
	RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error)
}

// SessionManager guarda la sesión del cliente, notifica cambios y la mantiene vigente.
// Implementa auth.SessionSource. Con path no vacío la sesión se persiste en un archivo JSON.
type SessionManager struct {
	refresher Refresher
	path      string
	margin    time.Duration
	log       zerolog.Logger
	now       func() time.Time

	mu      sync.RWMutex
	session *entity.Session
	loaded  bool
	subs    map[int]func(entity.AuthEvent, *entity.Session)
	nextSub int
	changed chan struct{}
}

// NewSessionManager construye el manager. path vacío = solo memoria.
func NewSessionManager(refresher Refresher, path string, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		refresher: refresher,
		path:      path,
		margin:    DefaultRefreshMargin,
		log:       log,
		now:       time.Now,
		subs:      make(map[int]func(entity.AuthEvent, *entity.Session)),
		changed:   make(chan struct{}, 1),
	}
}

// Current devuelve la sesión vigente. La primera vez la lee del archivo;
// si el token ya venció intenta renovarlo.
func (m *SessionManager) Current(ctx context.Context) (*entity.Session, error) {
	m.mu.Lock()
	if !m.loaded {
		m.loaded = true
		s, err := m.readFile()
		if err != nil {
			m.log.Warn().Err(err).Str("path", m.path).Msg("no se pudo leer la sesión guardada")
		}
		m.session = s
	}
	current := m.session
	m.mu.Unlock()

	if current == nil || !current.Expired(m.now()) {
		return copySession(current), nil
	}
	refreshed, err := m.refresh(ctx, current)
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

// Save reemplaza la sesión, la persiste y notifica event.
func (m *SessionManager) Save(event entity.AuthEvent, s *entity.Session) {
	m.mu.Lock()
	m.session = copySession(s)
	m.loaded = true
	m.persistLocked()
	subs := m.subscribersLocked()
	m.mu.Unlock()
	m.wake()
	notify(subs, event, s)
}

// Clear borra la sesión y notifica SIGNED_OUT.
func (m *SessionManager) Clear() {
	m.mu.Lock()
	m.session = nil
	m.loaded = true
	m.persistLocked()
	subs := m.subscribersLocked()
	m.mu.Unlock()
	m.wake()
	notify(subs, entity.EventSignedOut, nil)
}

// Subscribe registra fn; la función devuelta cancela la suscripción.
func (m *SessionManager) Subscribe(fn func(entity.AuthEvent, *entity.Session)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// AutoRefresh renueva el token margin antes de vencer hasta que ctx se cancele.
// Si la renovación falla la sesión se limpia (SIGNED_OUT).
func (m *SessionManager) AutoRefresh(ctx context.Context) {
	for {
		m.mu.RLock()
		current := copySession(m.session)
		m.mu.RUnlock()

		var timer *time.Timer
		var wait <-chan time.Time
		if current != nil && current.RefreshToken != "" && !current.ExpiresAt.IsZero() {
			d := current.ExpiresAt.Sub(m.now()) - m.margin
			if d < 0 {
				d = 0
			}
			timer = time.NewTimer(d)
			wait = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return
		case <-m.changed:
			stopTimer(timer)
		case <-wait:
			if _, err := m.refresh(ctx, current); err != nil && ctx.Err() == nil {
				m.log.Warn().Err(err).Msg("renovación automática de la sesión falló")
			}
		}
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

// refresh renueva current; si falla limpia la sesión.
func (m *SessionManager) refresh(ctx context.Context, current *entity.Session) (*entity.Session, error) {
	if current.RefreshToken == "" {
		m.Clear()
		return nil, errors.New("supabase: sesión vencida sin refresh token")
	}
	s, err := m.refresher.RefreshSession(ctx, current.RefreshToken)
	if err != nil {
		if ctx.Err() == nil {
			m.Clear()
		}
		return nil, err
	}
	m.Save(entity.EventTokenRefreshed, s)
	return copySession(s), nil
}

func (m *SessionManager) wake() {
	select {
	case m.changed <- struct{}{}:
	default:
	}
}

func (m *SessionManager) subscribersLocked() []func(entity.AuthEvent, *entity.Session) {
	out := make([]func(entity.AuthEvent, *entity.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(entity.AuthEvent, *entity.Session), event entity.AuthEvent, s *entity.Session) {
	for _, fn := range subs {
		fn(event, copySession(s))
	}
}

func copySession(s *entity.Session) *entity.Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

type storedSession struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresAt    int64    `json:"expires_at"`
	User         userWire `json:"user"`
}

func (m *SessionManager) readFile() (*entity.Session, error) {
	if m.path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st storedSession
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	if st.AccessToken == "" {
		return nil, nil
	}
	return &entity.Session{
		AccessToken:  st.AccessToken,
		RefreshToken: st.RefreshToken,
		TokenType:    st.TokenType,
		ExpiresAt:    time.Unix(st.ExpiresAt, 0),
		User:         *st.User.toEntity(),
	}, nil
}

func (m *SessionManager) persistLocked() {
	if m.path == "" {
		return
	}
	if m.session == nil {
		if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			m.log.Warn().Err(err).Str("path", m.path).Msg("no se pudo borrar la sesión guardada")
		}
		return
	}
	s := m.session
	raw, err := json.Marshal(storedSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		ExpiresAt:    s.ExpiresAt.Unix(),
		User: userWire{
			ID:               s.User.ID,
			Email:            s.User.Email,
			UserMetadata:     s.User.UserMetadata,
			AppMetadata:      s.User.AppMetadata,
			EmailConfirmedAt: s.User.EmailConfirmedAt,
			CreatedAt:        s.User.CreatedAt,
		},
	})
	if err == nil {
		err = os.WriteFile(m.path, raw, 0o600)
	}
	if err != nil {
		m.log.Warn().Err(err).Str("path", m.path).Msg("no se pudo guardar la sesión")
	}
}
