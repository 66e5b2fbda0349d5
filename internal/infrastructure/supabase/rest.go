package supabase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/pkg/fetch"
)

const restPrefix = "/rest/v1/"

// rest ejecuta una petición PostgREST sobre table con los headers del principal.
// prefer se envía como header Prefer (ej. "return=representation").
func (c *Client) rest(ctx context.Context, method, table string, q url.Values, body any, prefer string, out any) error {
	h := c.headers(ctx)
	if prefer != "" {
		h.Set("Prefer", prefer)
	}
	err := c.http.Do(ctx, fetch.Request{
		Method:   method,
		Endpoint: restPrefix + table,
		Query:    q,
		Header:   h,
		Body:     body,
	}, out)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("table", table).Msg("postgrest")
	}
	return backendError(err)
}

// getOne lee como máximo una fila; sin filas devuelve domain.ErrNotFound.
func getOne[T any](ctx context.Context, c *Client, table string, q url.Values) (*T, error) {
	q.Set("limit", "1")
	var rows []T
	if err := c.rest(ctx, http.MethodGet, table, q, nil, "", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

// mutate aplica PATCH/DELETE y exige que al menos una fila haya sido afectada;
// con RLS una fila invisible se reporta como inexistente.
func mutate(ctx context.Context, c *Client, method, table string, q url.Values, body any) error {
	_, err := mutateRows[map[string]any](ctx, c, method, table, q, body)
	return err
}

// mutateRows igual que mutate pero devuelve las filas afectadas tal como quedaron.
func mutateRows[T any](ctx context.Context, c *Client, method, table string, q url.Values, body any) ([]T, error) {
	var rows []T
	if err := c.rest(ctx, method, table, q, body, "return=representation", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows, nil
}

func eq(v string) string { return "eq." + v }
