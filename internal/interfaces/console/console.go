// Package console cliente interactivo de línea de comandos sobre los mismos casos de uso de la API.
// La sesión vive en un auth.SessionStore creado una vez por proceso.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-equipos/internal/application/analytics"
	"github.com/jhoicas/Inventario-equipos/internal/application/auth"
	"github.com/jhoicas/Inventario-equipos/internal/application/confirm"
	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/application/usecase"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
)

const fallbackMessage = "Ocorreu um erro inesperado. Tente novamente."

// Services casos de uso que la consola expone.
type Services struct {
	Session   *auth.SessionStore
	Equipment *usecase.EquipmentUseCase
	Movements *inventory.MovementUseCase
	Reduction *inventory.StockReductionUseCase
	Users     *usecase.UserAdminUseCase
	Dashboard *analytics.DashboardUseCase
}

type command struct {
	usage string
	help  string
	admin bool
	run   func(ctx context.Context, args []string) error
}

// Console lee comandos de in y escribe en out.
type Console struct {
	svc      Services
	in       *bufio.Scanner
	out      io.Writer
	dialog   *confirm.Dialog
	log      zerolog.Logger
	commands map[string]command
}

// New construye la consola.
func New(svc Services, in io.Reader, out io.Writer, log zerolog.Logger) *Console {
	c := &Console{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		dialog: confirm.NewDialog(),
		log:    log,
	}
	c.commands = c.registry()
	return c
}

// Run procesa líneas hasta EOF, "fim" o la cancelación de ctx.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Inventário de Equipamentos. Digite \"ajuda\" para ver os comandos.\n")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, ok := c.prompt("> ")
		if !ok {
			if ctx.Err() != nil {
				return nil
			}
			return c.in.Err()
		}
		args, err := splitArgs(line)
		if err != nil {
			c.printf("%s\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		name := strings.ToLower(args[0])
		if name == "fim" || name == "exit" {
			return nil
		}
		c.dispatch(ctx, name, args[1:])
	}
}

func (c *Console) dispatch(ctx context.Context, name string, args []string) {
	cmd, ok := c.commands[name]
	if !ok {
		c.printf("Comando desconhecido: %s\n", name)
		return
	}
	if cmd.admin && !c.svc.Session.IsAdmin() {
		c.printf("Você não tem permissão para acessar esta página.\n")
		return
	}
	if err := cmd.run(ctx, args); err != nil {
		c.printErr(err)
	}
}

// authed adjunta el principal de la sesión; sin sesión pide login.
func (c *Console) authed(ctx context.Context) (context.Context, error) {
	if c.svc.Session.Loading() {
		return ctx, domain.NewError(domain.ErrUnauthorized, "Carregando...")
	}
	return c.svc.Session.Context(ctx)
}

// confirmAndRun abre el diálogo, pregunta y ejecuta action. Si la acción falla el diálogo
// sigue abierto y se ofrece reintentar.
func (c *Console) confirmAndRun(ctx context.Context, p confirm.Prompt, action confirm.Action, success string) error {
	if err := c.dialog.Open(p); err != nil {
		return err
	}
	for c.dialog.IsOpen() {
		v := c.dialog.View()
		c.printf("\n[%s] %s\n%s\n", strings.ToUpper(string(v.Kind)), v.Title, v.Message)
		answer, ok := c.prompt(fmt.Sprintf("%s (s) / %s (n): ", v.ConfirmLabel, v.CancelLabel))
		if !ok || !isYes(answer) {
			return c.dialog.Cancel()
		}
		if err := c.dialog.Confirm(ctx, action); err != nil {
			c.printErr(err)
			continue
		}
		c.dialog.Close()
		c.printf("%s\n", success)
	}
	return nil
}

func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) printErr(err error) {
	c.log.Debug().Err(err).Msg("comando falló")
	var cd *domain.CooldownError
	if errors.As(err, &cd) {
		c.printf("%s\n", cd.Error())
		return
	}
	err = domain.ContextError(err, "", "", fallbackMessage)
	c.printf("Erro: %s\n", domain.FriendlyMessage(err, fallbackMessage))
}

func (c *Console) help(_ context.Context, _ []string) error {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	admin := c.svc.Session.IsAdmin()
	for _, name := range names {
		cmd := c.commands[name]
		if cmd.admin && !admin {
			continue
		}
		c.printf("  %-60s %s\n", cmd.usage, cmd.help)
	}
	c.printf("  %-60s %s\n", "fim", "encerra a sessão do console")
	return nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

// splitArgs separa por espacios respetando comillas dobles.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case (r == ' ' || r == '\t') && !quoted:
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if quoted {
		return nil, domain.Validation("Aspas não fechadas.")
	}
	if pending {
		args = append(args, cur.String())
	}
	return args, nil
}
