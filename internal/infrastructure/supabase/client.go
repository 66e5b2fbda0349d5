// Package supabase adapta el backend hospedado (PostgREST + servicio de auth + RPC)
// a los puertos de la aplicación. Las peticiones de datos viajan con el access token
// del principal del contexto para que las políticas RLS del backend apliquen.
package supabase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/pkg/fetch"
)

// Config datos de conexión del proyecto.
type Config struct {
	URL            string
	AnonKey        string
	ServiceRoleKey string
}

// Client handle configurado del backend; lo comparten repositorios, RPC y auth.
type Client struct {
	http           *fetch.Client
	anonKey        string
	serviceRoleKey string
	log            zerolog.Logger
}

// NewClient construye el cliente. opts se pasan al fetch.Client (ej. WithHTTPClient en pruebas).
func NewClient(cfg Config, log zerolog.Logger, opts ...fetch.Option) *Client {
	return &Client{
		http:           fetch.New(cfg.URL, opts...),
		anonKey:        cfg.AnonKey,
		serviceRoleKey: cfg.ServiceRoleKey,
		log:            log,
	}
}

// headers autentica con el token del principal del contexto o, sin principal, con la anon key.
func (c *Client) headers(ctx context.Context) http.Header {
	token := c.anonKey
	if p, ok := entity.PrincipalFrom(ctx); ok && p.AccessToken != "" {
		token = p.AccessToken
	}
	return c.bearer(token)
}

// tokenHeaders para operaciones de auth sobre la propia cuenta.
func (c *Client) tokenHeaders(accessToken string) http.Header {
	return c.bearer(accessToken)
}

// serviceHeaders para la API admin del servicio de auth.
func (c *Client) serviceHeaders() (http.Header, error) {
	if c.serviceRoleKey == "" {
		return nil, errors.New("supabase: SUPABASE_SERVICE_ROLE_KEY no configurada")
	}
	h := http.Header{}
	h.Set("apikey", c.serviceRoleKey)
	h.Set("Authorization", "Bearer "+c.serviceRoleKey)
	return h, nil
}

func (c *Client) bearer(token string) http.Header {
	h := http.Header{}
	h.Set("apikey", c.anonKey)
	if token == "" {
		token = c.anonKey
	}
	h.Set("Authorization", "Bearer "+token)
	return h
}

// backendError convierte los errores HTTP conocidos en errores de dominio.
// El resto se devuelve intacto para que domain.ContextError lo clasifique con el contexto de la pantalla.
func backendError(err error) error {
	var fe *fetch.Error
	if !errors.As(err, &fe) {
		return err
	}
	code := strings.ToLower(fe.Code)
	switch {
	case code == "email_not_confirmed" || strings.Contains(strings.ToLower(fe.Message), "email not confirmed"):
		return domain.Wrap(domain.ErrEmailNotConfirmed, domain.FriendlyMessage(fe, fe.Message), fe)
	case code == "pgrst116" || fe.Status == http.StatusNotFound:
		return domain.Wrap(domain.ErrNotFound, "Registro não encontrado.", fe)
	case fe.Status == http.StatusUnauthorized || code == "bad_jwt" || code == "pgrst301":
		return domain.Wrap(domain.ErrUnauthorized, "Sessão expirada. Faça login novamente.", fe)
	}
	return err
}
