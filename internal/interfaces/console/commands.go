package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/Inventario-equipos/internal/application/confirm"
	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

func (c *Console) registry() map[string]command {
	return map[string]command{
		"ajuda":         {usage: "ajuda", help: "lista os comandos", run: c.help},
		"entrar":        {usage: "entrar <email> <senha>", help: "inicia a sessão", run: c.signIn},
		"sair":          {usage: "sair", help: "encerra a sessão no backend", run: c.signOut},
		"quem":          {usage: "quem", help: "usuário da sessão", run: c.whoami},
		"equipamentos":  {usage: "equipamentos [busca]", help: "lista os equipamentos", run: c.listEquipment},
		"equipamento":   {usage: "equipamento novo|editar|excluir ...", help: "cadastro de equipamentos", run: c.equipment},
		"movimentacoes": {usage: "movimentacoes [busca]", help: "lista as movimentações", run: c.listMovements},
		"movimentacao":  {usage: "movimentacao nova|excluir ...", help: "registra ou exclui movimentações", run: c.movement},
		"baixa":         {usage: "baixa <equipamento> <qtd> [chamado] [observação]", help: "baixa de estoque", run: c.reduce},
		"painel":        {usage: "painel", help: "resumo do inventário", run: c.dashboard},
		"perfil":        {usage: "perfil [nome]", help: "mostra ou edita o próprio perfil", run: c.profile},
		"senha":         {usage: "senha <nova> <confirmação>", help: "troca a própria senha", run: c.ownPassword},
		"usuarios":      {usage: "usuarios [busca]", help: "lista os usuários", admin: true, run: c.listUsers},
		"usuario":       {usage: "usuario novo|editar|senha|excluir ...", help: "administração de usuários", admin: true, run: c.user},
	}
}

func (c *Console) signIn(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return domain.Validation("Uso: entrar <email> <senha>")
	}
	session, err := c.svc.Session.SignIn(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	u := session.User
	c.printf("Bem-vindo, %s (%s).\n", nonEmpty(u.FullName(), u.Email), u.Role().Label())
	return nil
}

func (c *Console) signOut(ctx context.Context, _ []string) error {
	if err := c.svc.Session.SignOut(ctx); err != nil {
		return err
	}
	c.printf("Sessão encerrada.\n")
	return nil
}

func (c *Console) whoami(_ context.Context, _ []string) error {
	u := c.svc.Session.User()
	if u == nil {
		c.printf("Nenhuma sessão ativa.\n")
		return nil
	}
	c.printf("%s <%s> %s\n", nonEmpty(u.FullName(), "-"), u.Email, u.Role().Label())
	return nil
}

func (c *Console) listEquipment(ctx context.Context, args []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	list, err := c.svc.Equipment.List(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOME\tQTD\tCATEGORIA\tLOCAL\tSTATUS")
	for _, e := range list {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", e.ID, e.Name, e.Quantity,
			entity.Deref(e.Category), entity.Deref(e.Location), entity.Deref(e.Status))
	}
	return w.Flush()
}

func (c *Console) equipment(ctx context.Context, args []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return domain.Validation("Uso: equipamento novo|editar|excluir ...")
	}
	switch args[0] {
	case "novo":
		in, err := equipmentArgs(args[1:])
		if err != nil {
			return err
		}
		out, err := c.svc.Equipment.Create(ctx, in)
		if err != nil {
			return err
		}
		c.printf("Equipamento cadastrado: %s\n", out.ID)
	case "editar":
		if len(args) < 2 {
			return domain.Validation("Uso: equipamento editar <id> <nome> <qtd> [categoria] [local] [status]")
		}
		in, err := equipmentArgs(args[2:])
		if err != nil {
			return err
		}
		if _, err := c.svc.Equipment.Update(ctx, args[1], in); err != nil {
			return err
		}
		c.printf("Equipamento atualizado.\n")
	case "excluir":
		if len(args) != 2 {
			return domain.Validation("Uso: equipamento excluir <id>")
		}
		e, err := c.svc.Equipment.Get(ctx, args[1])
		if err != nil {
			return err
		}
		caller, _ := c.svc.Session.Principal()
		return c.confirmAndRun(ctx, confirm.Prompt{
			Title:        "Confirmar Exclusão",
			Message:      fmt.Sprintf("Tem certeza que deseja deletar o equipamento %q? Esta ação não pode ser desfeita.", e.Name),
			Kind:         confirm.KindDanger,
			ConfirmLabel: "Deletar",
		}, func(ctx context.Context) error {
			return c.svc.Equipment.Delete(ctx, caller, e.ID)
		}, "Equipamento excluído com sucesso!")
	default:
		return domain.Validation("Uso: equipamento novo|editar|excluir ...")
	}
	return nil
}

// equipmentArgs <nome> <qtd> [categoria] [local] [status].
func equipmentArgs(args []string) (dto.EquipmentRequest, error) {
	if len(args) < 2 {
		return dto.EquipmentRequest{}, domain.Validation("Informe nome e quantidade.")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return dto.EquipmentRequest{}, domain.Validation("A quantidade deve ser um número inteiro.")
	}
	in := dto.EquipmentRequest{Name: args[0], Quantity: qty}
	in.Category = arg(args, 2)
	in.Location = arg(args, 3)
	in.Status = arg(args, 4)
	return in, nil
}

func (c *Console) listMovements(ctx context.Context, args []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	list, err := c.svc.Movements.List(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATA\tEQUIPAMENTO\tTIPO\tQTD\tDESCRIÇÃO")
	for _, m := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", m.ID, m.CreatedAt.Local().Format("02/01/2006 15:04"),
			m.EquipmentName, movementLabel(m.Type), m.Quantity, entity.Deref(m.Description))
	}
	return w.Flush()
}

func movementLabel(t string) string {
	if t == string(entity.MovementIn) {
		return "Entrada"
	}
	return "Saída"
}

func (c *Console) movement(ctx context.Context, args []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	switch arg(args, 0) {
	case "nova":
		if len(args) < 4 {
			return domain.Validation("Uso: movimentacao nova <equipamento> <in|out> <qtd> [descrição]")
		}
		qty, err := strconv.Atoi(args[3])
		if err != nil {
			return domain.Validation("A quantidade deve ser um número inteiro.")
		}
		if _, err := c.svc.Movements.Register(ctx, dto.RegisterMovementRequest{
			EquipmentID: args[1],
			Type:        args[2],
			Quantity:    qty,
			Description: strings.Join(args[4:], " "),
		}); err != nil {
			return err
		}
		c.printf("Movimentação registrada.\n")
		return nil
	case "excluir":
		if len(args) != 2 {
			return domain.Validation("Uso: movimentacao excluir <id>")
		}
		m, err := c.svc.Movements.Find(ctx, args[1])
		if err != nil {
			return err
		}
		return c.confirmAndRun(ctx, confirm.Prompt{
			Title:        "Confirmar Exclusão",
			Message:      fmt.Sprintf("Tem certeza que deseja deletar a movimentação do equipamento %q?", m.EquipmentName),
			Kind:         confirm.KindDanger,
			ConfirmLabel: "Deletar",
		}, func(ctx context.Context) error {
			return c.svc.Movements.Delete(ctx, m.ID)
		}, "Movimentação deletada com sucesso.")
	}
	return domain.Validation("Uso: movimentacao nova|excluir ...")
}

func (c *Console) reduce(ctx context.Context, args []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return domain.Validation("Uso: baixa <equipamento> <qtd> [chamado] [observação]")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return domain.Validation("A quantidade deve ser um número inteiro.")
	}
	list, err := c.svc.Reduction.Reduce(ctx, inventory.ReductionInput{
		EquipmentID:  args[0],
		Quantity:     qty,
		TicketNumber: arg(args, 2),
		Observation:  strings.Join(tail(args, 3), " "),
	})
	if err != nil {
		return err
	}
	for _, e := range list {
		if e.ID == strings.TrimSpace(args[0]) {
			c.printf("Baixa registrada com sucesso! %s agora tem %d unidade(s).\n", e.Name, e.Quantity)
			return nil
		}
	}
	c.printf("Baixa registrada com sucesso!\n")
	return nil
}

func (c *Console) dashboard(ctx context.Context, _ []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	s, err := c.svc.Dashboard.Summary(ctx)
	if err != nil {
		return err
	}
	c.printf("Equipamentos: %d  Unidades: %d  Sem estoque: %d\n", s.EquipmentCount, s.TotalUnits, s.OutOfStockCount)
	c.printf("Últimos %d dias: %d entrada(s) (%d un.), %d saída(s) (%d un.)\n",
		s.Movements.WindowDays, s.Movements.InCount, s.Movements.InUnits, s.Movements.OutCount, s.Movements.OutUnits)
	if len(s.LowStock) > 0 {
		c.printf("Estoque baixo (≤ %d):\n", s.LowStockThreshold)
		for _, item := range s.LowStock {
			c.printf("  %-30s %d\n", item.Name, item.Quantity)
		}
	}
	return nil
}

func (c *Console) profile(ctx context.Context, args []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	caller, _ := c.svc.Session.Principal()
	if len(args) == 0 {
		u, err := c.svc.Users.Me(ctx, caller)
		if err != nil {
			return err
		}
		c.printUser(*u)
		return nil
	}
	u, err := c.svc.Users.UpdateProfile(ctx, caller, caller.UserID, dto.UpdateProfileRequest{FullName: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	c.printf("Perfil atualizado.\n")
	c.printUser(*u)
	return nil
}

func (c *Console) ownPassword(ctx context.Context, args []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return domain.Validation("Uso: senha <nova> <confirmação>")
	}
	caller, _ := c.svc.Session.Principal()
	if err := c.svc.Users.ResetPassword(ctx, caller, caller.UserID, dto.ResetPasswordRequest{
		NewPassword: args[0], ConfirmPassword: args[1],
	}); err != nil {
		return err
	}
	c.printf("Senha atualizada com sucesso!\n")
	return nil
}

func (c *Console) listUsers(ctx context.Context, args []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	caller, _ := c.svc.Session.Principal()
	list, err := c.svc.Users.List(ctx, caller, strings.Join(args, " "))
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOME\tEMAIL\tPERFIL\tCRIADO EM")
	for _, u := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.DisplayName, u.Email, u.RoleLabel, u.CreatedAt.Local().Format("02/01/2006"))
	}
	return w.Flush()
}

func (c *Console) user(ctx context.Context, args []string) error {
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	caller, _ := c.svc.Session.Principal()
	switch arg(args, 0) {
	case "novo":
		if len(args) < 3 {
			return domain.Validation("Uso: usuario novo <email> <senha> [user|admin] [nome]")
		}
		u, err := c.svc.Users.Create(ctx, caller, dto.CreateUserRequest{
			Email:    args[1],
			Password: args[2],
			Role:     arg(args, 3),
			FullName: strings.Join(tail(args, 4), " "),
		})
		if err != nil {
			return err
		}
		c.printf("Usuário adicionado com sucesso!\n")
		c.printUser(*u)
		return nil
	case "editar":
		if len(args) < 3 {
			return domain.Validation("Uso: usuario editar <id> <user|admin> [nome]")
		}
		u, err := c.svc.Users.UpdateProfile(ctx, caller, args[1], dto.UpdateProfileRequest{
			Role:     args[2],
			FullName: strings.Join(tail(args, 3), " "),
		})
		if err != nil {
			return err
		}
		c.printf("Usuário atualizado com sucesso!\n")
		c.printUser(*u)
		return nil
	case "senha":
		if len(args) != 4 {
			return domain.Validation("Uso: usuario senha <id> <nova> <confirmação>")
		}
		if err := c.svc.Users.ResetPassword(ctx, caller, args[1], dto.ResetPasswordRequest{
			NewPassword: args[2], ConfirmPassword: args[3],
		}); err != nil {
			return err
		}
		c.printf("Senha atualizada com sucesso!\n")
		return nil
	case "excluir":
		if len(args) != 2 {
			return domain.Validation("Uso: usuario excluir <id>")
		}
		u, err := c.svc.Users.Get(ctx, caller, args[1])
		if err != nil {
			return err
		}
		return c.confirmAndRun(ctx, confirm.Prompt{
			Title:        "Confirmar Exclusão",
			Message:      fmt.Sprintf("Tem certeza que deseja deletar o usuário %q? Esta ação não pode ser desfeita.", u.DisplayName),
			Kind:         confirm.KindDanger,
			ConfirmLabel: "Deletar",
		}, func(ctx context.Context) error {
			return c.svc.Users.Delete(ctx, caller, u.ID)
		}, "Usuário deletado com sucesso!")
	}
	return domain.Validation("Uso: usuario novo|editar|senha|excluir ...")
}

func (c *Console) printUser(u dto.UserResponse) {
	c.printf("%s  %s <%s> %s\n", u.ID, u.DisplayName, u.Email, u.RoleLabel)
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func tail(args []string, from int) []string {
	if from < len(args) {
		return args[from:]
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
