// Package fetch es el helper HTTP/JSON compartido por los clientes del backend y de la API propia:
// pone Content-Type JSON, decodifica la respuesta y convierte los no-2xx en *Error
// con el mensaje del backend (o el status HTTP si no viene mensaje).
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout timeout de red por petición si no se inyecta un *http.Client.
const DefaultTimeout = 15 * time.Second

// Error respuesta no-2xx del servidor remoto.
type Error struct {
	Status  int
	Code    string // código del backend (error_code, code) si viene
	Message string
}

func (e *Error) Error() string { return e.Message }

// StatusOf devuelve el status HTTP de un *Error envuelto en err, o 0.
func StatusOf(err error) int {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Status
	}
	return 0
}

// Client cliente JSON sobre una URL base.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (pruebas, transportes propios).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithHeader agrega un header fijo a todas las peticiones.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// New construye el cliente. baseURL sin barra final.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		headers:    http.Header{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL URL base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

// Request describe una llamada. Endpoint es relativo a la URL base.
type Request struct {
	Method   string
	Endpoint string
	Query    url.Values
	Header   http.Header
	Body     any
}

// Do ejecuta la petición y decodifica el cuerpo JSON en out (si out != nil y hay cuerpo).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	_, err := c.DoWithHeader(ctx, req, out)
	return err
}

// DoWithHeader igual que Do pero devuelve los headers de la respuesta.
func (c *Client) DoWithHeader(ctx context.Context, req Request, out any) (http.Header, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(req.Endpoint, "/")
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("fetch: serializar body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("fetch: crear request: %w", err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s %s: %w", method, req.Endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.Header, fmt.Errorf("fetch: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Header, decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.Header, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.Header, fmt.Errorf("fetch: decodificar respuesta: %w", err)
	}
	return resp.Header, nil
}

// decodeError toma el primer campo de mensaje conocido; sin mensaje usa el status.
func decodeError(status int, raw []byte) *Error {
	e := &Error{Status: status}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err == nil {
		for _, k := range []string{"message", "msg", "error_description", "error"} {
			if s, ok := payload[k].(string); ok && s != "" {
				e.Message = s
				break
			}
		}
		for _, k := range []string{"error_code", "code"} {
			switch v := payload[k].(type) {
			case string:
				if v != "" && e.Code == "" {
					e.Code = v
				}
			}
		}
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return e
}
