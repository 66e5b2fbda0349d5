package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
	"github.com/jhoicas/Inventario-equipos/pkg/textfilter"
)

// MinPasswordLength largo mínimo aceptado por el servicio de auth.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserAdminUseCase administración de usuarios: perfiles, altas, contraseñas y bajas.
// Las decisiones de autorización usan el rol tipado del llamador; las RPC del backend
// vuelven a verificarlo.
type UserAdminUseCase struct {
	profiles  repository.ProfileRepository
	admin     repository.UserAdminGateway
	accounts  AccountGateway
	refresher MetadataRefresher
	cooldown  *Cooldown
	log       zerolog.Logger
}

// NewUserAdminUseCase construye el caso de uso. refresher puede ser nil.
func NewUserAdminUseCase(
	profiles repository.ProfileRepository,
	admin repository.UserAdminGateway,
	accounts AccountGateway,
	refresher MetadataRefresher,
	createCooldown time.Duration,
	log zerolog.Logger,
) *UserAdminUseCase {
	return &UserAdminUseCase{
		profiles:  profiles,
		admin:     admin,
		accounts:  accounts,
		refresher: refresher,
		cooldown:  NewCooldown(createCooldown),
		log:       log,
	}
}

// List devuelve los perfiles ordenados por email, filtrados por nombre, email o rol.
func (uc *UserAdminUseCase) List(ctx context.Context, caller entity.Principal, search string) ([]dto.UserResponse, error) {
	if err := requireAdmin(caller, "Você não tem permissão para acessar esta página."); err != nil {
		return nil, err
	}
	list, err := uc.profiles.List(ctx)
	if err != nil {
		return nil, domain.ContextError(err, "", "",
			"Não foi possível carregar os usuários. Por favor, tente novamente mais tarde.")
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toUserResponse(p))
	}
	return textfilter.Filter(out, search, func(u dto.UserResponse) []string {
		return []string{entity.Deref(u.FullName), u.Email, u.Role}
	}), nil
}

// Get perfil de otro usuario (solo administradores) o el propio.
func (uc *UserAdminUseCase) Get(ctx context.Context, caller entity.Principal, id string) (*dto.UserResponse, error) {
	if id != caller.UserID {
		if err := requireAdmin(caller, "Você não tem permissão para acessar esta página."); err != nil {
			return nil, err
		}
	}
	p, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Usuário não encontrado.")
	}
	resp := toUserResponse(p)
	return &resp, nil
}

// Me devuelve el perfil del llamador.
func (uc *UserAdminUseCase) Me(ctx context.Context, caller entity.Principal) (*dto.UserResponse, error) {
	p, err := uc.profiles.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, notFound(err, "Perfil não encontrado.")
	}
	resp := toUserResponse(p)
	return &resp, nil
}

// Create da de alta un usuario: sign-up, confirmación del email y fila en profiles vía RPC.
// Cada intento que llega al backend abre un cooldown para el llamador.
func (uc *UserAdminUseCase) Create(ctx context.Context, caller entity.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := requireAdmin(caller, "Você não tem permissão para criar usuários."); err != nil {
		return nil, err
	}
	if left := uc.cooldown.Remaining(caller.UserID); left > 0 {
		return nil, &domain.CooldownError{Remaining: left}
	}

	email := strings.TrimSpace(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if len(in.Password) < MinPasswordLength {
		return nil, domain.Validation("A senha deve ter no mínimo 6 caracteres.")
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.Validation("Por favor, insira um email válido.")
	}
	role := entity.RoleUser
	if strings.TrimSpace(in.Role) != "" {
		r, ok := entity.ParseRole(in.Role)
		if !ok {
			return nil, domain.Validation("Perfil de acesso inválido.")
		}
		role = r
	}

	uc.cooldown.Start(caller.UserID)
	const (
		dup       = "Este email já está registrado."
		forbidden = "Você não tem permissão para criar usuários."
		fallback  = "Erro ao adicionar usuário."
	)

	user, err := uc.accounts.SignUp(ctx, email, in.Password, entity.UserMetadata{Role: role, FullName: fullName})
	if err != nil {
		uc.log.Error().Err(err).Str("email", email).Msg("error al crear usuario en auth")
		return nil, domain.ContextError(err, dup, forbidden, fallback)
	}
	if user == nil || user.ID == "" {
		return nil, domain.NewError(domain.ErrBackend, fallback)
	}

	if err := uc.accounts.AdminConfirmEmail(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo confirmar el email; se continúa")
	}

	if err := uc.admin.CreateUserProfile(ctx, user.ID, email, fullName, role); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("error al crear perfil")
		return nil, domain.ContextError(err, dup, forbidden, fallback)
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(role)).Str("by", caller.UserID).Msg("usuario creado")

	resp := toUserResponse(&entity.Profile{
		ID:        user.ID,
		Email:     email,
		FullName:  entity.NullIfEmpty(fullName),
		Role:      role,
		CreatedAt: user.CreatedAt,
	})
	return &resp, nil
}

// CreateCooldown estado del enfriamiento de altas para el llamador.
func (uc *UserAdminUseCase) CreateCooldown(caller entity.Principal) dto.CooldownResponse {
	left := uc.cooldown.Remaining(caller.UserID)
	if left <= 0 {
		return dto.CooldownResponse{}
	}
	ce := domain.CooldownError{Remaining: left}
	return dto.CooldownResponse{Active: true, RemainingSeconds: ce.Seconds()}
}

// UpdateProfile edita nombre y, para administradores, rol de un perfil.
// Un usuario común solo puede cambiar su propio nombre. Si el perfil editado es el del
// llamador se refrescan los metadatos de su sesión.
func (uc *UserAdminUseCase) UpdateProfile(ctx context.Context, caller entity.Principal, id string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.Validation("Usuário não selecionado.")
	}
	fullName := strings.TrimSpace(in.FullName)

	current, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Usuário não encontrado.")
	}

	if caller.Role.IsAdmin() {
		role := current.Role
		if strings.TrimSpace(in.Role) != "" {
			r, ok := entity.ParseRole(in.Role)
			if !ok {
				return nil, domain.Validation("Perfil de acesso inválido.")
			}
			role = r
		}
		if role == "" {
			role = entity.RoleUser
		}
		if err := uc.admin.UpdateUserRole(ctx, id, fullName, role); err != nil {
			return nil, domain.ContextError(err, "", "Você não tem permissão para alterar usuários.", "Erro ao atualizar usuário")
		}
	} else {
		if id != caller.UserID {
			return nil, domain.NewError(domain.ErrForbidden, "Você só pode editar o seu próprio perfil.")
		}
		if r, ok := entity.ParseRole(in.Role); ok && r != entity.RoleFromClaim(string(current.Role)) {
			return nil, domain.NewError(domain.ErrForbidden, "Apenas administradores podem alterar o perfil de acesso.")
		}
		if err := uc.profiles.UpdateFullName(ctx, id, fullName); err != nil {
			return nil, domain.ContextError(err, "", "Você não tem permissão para alterar usuários.", "Erro ao atualizar usuário")
		}
	}

	if id == caller.UserID && uc.refresher != nil {
		if err := uc.refresher.RefreshMetadata(ctx, caller); err != nil {
			uc.log.Warn().Err(err).Str("user_id", id).Msg("no se pudo refrescar la sesión tras editar el perfil")
		}
	}

	updated, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Usuário não encontrado.")
	}
	resp := toUserResponse(updated)
	return &resp, nil
}

// ResetPassword cambia la contraseña. La propia se cambia con el token del llamador sin importar
// el rol; la de otro usuario requiere administrador y pasa por la RPC privilegiada.
func (uc *UserAdminUseCase) ResetPassword(ctx context.Context, caller entity.Principal, id string, in dto.ResetPasswordRequest) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Validation("Usuário não selecionado")
	}
	if in.NewPassword != in.ConfirmPassword {
		return domain.Validation("As senhas não coincidem")
	}
	if len(in.NewPassword) < MinPasswordLength {
		return domain.Validation("A senha deve ter no mínimo 6 caracteres")
	}

	if id == caller.UserID {
		if err := uc.accounts.UpdatePassword(ctx, caller.AccessToken, in.NewPassword); err != nil {
			return domain.ContextError(err, "", "", "Erro ao atualizar senha")
		}
		return nil
	}
	if err := requireAdmin(caller, "Apenas administradores podem alterar a senha de outros usuários."); err != nil {
		return err
	}
	if err := uc.admin.AdminUpdateUserPassword(ctx, id, in.NewPassword); err != nil {
		return domain.ContextError(err, "", "Você não tem permissão para alterar a senha deste usuário.", "Erro ao atualizar senha")
	}
	uc.log.Info().Str("user_id", id).Str("by", caller.UserID).Msg("contraseña restablecida")
	return nil
}

// Delete elimina el usuario vía RPC delete_user_safely.
func (uc *UserAdminUseCase) Delete(ctx context.Context, caller entity.Principal, id string) error {
	if err := requireAdmin(caller, "Você não tem permissão para excluir usuários."); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Validation("Usuário não selecionado")
	}
	if err := uc.admin.DeleteUserSafely(ctx, id); err != nil {
		return domain.ContextError(err, "", "Você não tem permissão para excluir usuários.", "Erro ao deletar usuário")
	}
	uc.log.Info().Str("user_id", id).Str("by", caller.UserID).Msg("usuario eliminado")
	return nil
}

func requireAdmin(caller entity.Principal, message string) error {
	if !caller.Role.IsAdmin() {
		return domain.NewError(domain.ErrForbidden, message)
	}
	return nil
}

func toUserResponse(p *entity.Profile) dto.UserResponse {
	role := entity.RoleFromClaim(string(p.Role))
	return dto.UserResponse{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		DisplayName: p.DisplayName(),
		Role:        string(role),
		RoleLabel:   role.Label(),
		CreatedAt:   p.CreatedAt,
	}
}

// IsValidEmail valida la forma local@dominio.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
