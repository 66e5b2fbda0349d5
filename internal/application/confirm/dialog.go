// Package confirm implementa la confirmación explícita que antecede a las acciones irreversibles.
package confirm

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
)

// Kind severidad del diálogo.
type Kind string

// Severidades. "error" se acepta como alias de danger.
const (
	KindWarning Kind = "warning"
	KindSuccess Kind = "success"
	KindDanger  Kind = "danger"
	KindInfo    Kind = "info"
)

// ParseKind normaliza la severidad; lo desconocido es warning.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return KindSuccess
	case "danger", "error":
		return KindDanger
	case "info":
		return KindInfo
	}
	return KindWarning
}

// Icon nombre del ícono para la severidad.
func (k Kind) Icon() string {
	switch k {
	case KindSuccess:
		return "check-circle"
	case KindDanger:
		return "x-circle"
	case KindInfo:
		return "info"
	}
	return "alert-triangle"
}

// ButtonStyle estilo del botón de confirmar.
func (k Kind) ButtonStyle() string {
	switch k {
	case KindSuccess:
		return "green"
	case KindDanger:
		return "red"
	case KindInfo:
		return "blue"
	}
	return "yellow"
}

// Prompt contenido del diálogo.
type Prompt struct {
	Title        string
	Message      string
	Kind         Kind
	ConfirmLabel string // por defecto "Confirmar"
	CancelLabel  string // por defecto "Cancelar"
}

// Action acción protegida por la confirmación.
type Action func(ctx context.Context) error

// View estado renderizable.
type View struct {
	Open           bool
	Title          string
	Message        string
	Kind           Kind
	Icon           string
	ButtonStyle    string
	ConfirmLabel   string
	CancelLabel    string
	Busy           bool
	ConfirmEnabled bool
	CancelEnabled  bool
}

// Dialog diálogo de confirmación independiente de la acción que protege.
// Mientras la acción corre ambos botones quedan deshabilitados; al terminar (bien, mal o
// con panic) vuelven a habilitarse. Confirm no cierra el diálogo: lo decide quien llama.
type Dialog struct {
	mu     sync.Mutex
	prompt Prompt
	open   bool
	busy   bool
}

// NewDialog crea un diálogo cerrado.
func NewDialog() *Dialog { return &Dialog{} }

// Open muestra el diálogo con p. No se puede reabrir mientras una acción está en curso.
func (d *Dialog) Open(p Prompt) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy {
		return domain.ErrBusy
	}
	if p.Kind == "" {
		p.Kind = KindWarning
	}
	if p.ConfirmLabel == "" {
		p.ConfirmLabel = "Confirmar"
	}
	if p.CancelLabel == "" {
		p.CancelLabel = "Cancelar"
	}
	d.prompt = p
	d.open = true
	return nil
}

// Cancel cierra sin efectos. Rechazado mientras la acción está en curso.
func (d *Dialog) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy {
		return domain.ErrBusy
	}
	d.open = false
	return nil
}

// Confirm ejecuta action con el diálogo ocupado y devuelve su error.
func (d *Dialog) Confirm(ctx context.Context, action Action) error {
	d.mu.Lock()
	switch {
	case !d.open:
		d.mu.Unlock()
		return domain.ErrConfirmationClosed
	case d.busy:
		d.mu.Unlock()
		return domain.ErrBusy
	}
	d.busy = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.busy = false
		d.mu.Unlock()
	}()
	return action(ctx)
}

// Close oculta el diálogo (tras una acción exitosa, por ejemplo).
func (d *Dialog) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

// Busy informa si hay una acción en curso.
func (d *Dialog) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// IsOpen informa si el diálogo está visible.
func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// View estado actual para renderizar.
func (d *Dialog) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return View{
		Open:           d.open,
		Title:          d.prompt.Title,
		Message:        d.prompt.Message,
		Kind:           d.prompt.Kind,
		Icon:           d.prompt.Kind.Icon(),
		ButtonStyle:    d.prompt.Kind.ButtonStyle(),
		ConfirmLabel:   d.prompt.ConfirmLabel,
		CancelLabel:    d.prompt.CancelLabel,
		Busy:           d.busy,
		ConfirmEnabled: d.open && !d.busy,
		CancelEnabled:  d.open && !d.busy,
	}
}
