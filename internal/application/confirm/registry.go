package confirm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
)

// Pending confirmación abierta en el servidor, a la espera de que su dueño confirme o cancele.
type Pending struct {
	ID        string
	Owner     string
	Dialog    *Dialog
	ExpiresAt time.Time
	// Success mensaje a mostrar cuando la acción termina bien.
	Success string

	action Action
}

// Registry confirmaciones pendientes con dueño y vencimiento.
type Registry struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]*Pending
	now   func() time.Time
}

// NewRegistry crea un registro; las confirmaciones vencen tras ttl.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{ttl: ttl, items: map[string]*Pending{}, now: time.Now}
}

// Open abre un diálogo para owner que ejecutará action al confirmarse.
func (r *Registry) Open(owner string, p Prompt, action Action, success string) (*Pending, error) {
	d := NewDialog()
	if err := d.Open(p); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked()
	pending := &Pending{
		ID:        uuid.NewString(),
		Owner:     owner,
		Dialog:    d,
		ExpiresAt: r.now().Add(r.ttl),
		Success:   success,
		action:    action,
	}
	r.items[pending.ID] = pending
	return pending, nil
}

// Get devuelve la confirmación si existe, no venció y pertenece a owner.
func (r *Registry) Get(owner, id string) (*Pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked()
	p, ok := r.items[id]
	if !ok || p.Owner != owner {
		return nil, domain.NewError(domain.ErrNotFound, "Confirmação não encontrada ou expirada.")
	}
	return p, nil
}

// Confirm ejecuta la acción. Si termina bien el diálogo se cierra y se descarta;
// si falla queda abierto para reintentar o cancelar.
func (r *Registry) Confirm(ctx context.Context, owner, id string) (*Pending, error) {
	p, err := r.Get(owner, id)
	if err != nil {
		return nil, err
	}
	if err := p.Dialog.Confirm(ctx, p.action); err != nil {
		return p, err
	}
	p.Dialog.Close()
	r.remove(id)
	return p, nil
}

// Cancel cierra y descarta la confirmación sin ejecutar nada.
func (r *Registry) Cancel(owner, id string) error {
	p, err := r.Get(owner, id)
	if err != nil {
		return err
	}
	if err := p.Dialog.Cancel(); err != nil {
		return err
	}
	r.remove(id)
	return nil
}

// Len cantidad de confirmaciones abiertas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked()
	return len(r.items)
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
}

// purgeLocked descarta las vencidas que no tienen una acción en curso.
func (r *Registry) purgeLocked() {
	now := r.now()
	for id, p := range r.items {
		if now.After(p.ExpiresAt) && !p.Dialog.Busy() {
			delete(r.items, id)
		}
	}
}
