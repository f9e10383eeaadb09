// Package medapi es el cliente HTTP de la API REST de la plataforma médica
// (autenticación y endpoints /admin).
package medapi

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

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medicare-console/internal/domain"
)

const maxBodyBytes = 4 << 20

// Observer recibe la duración de cada llamada. route es la plantilla de la
// ruta (/admin/patients/:id), nunca la ruta con ids.
type Observer interface {
	ObserveAPICall(method, route string, status int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAPICall(string, string, int, time.Duration) {}

// Client adaptador de AuthAPI y AdminAPI sobre net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	observer   Observer
	log        zerolog.Logger
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el http.Client (tests, transportes propios).
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// WithObserver registra latencias (métricas).
func WithObserver(o Observer) Option { return func(c *Client) { c.observer = o } }

// WithLogger define el logger del cliente.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// WithMaxRetries reintentos de GET ante fallas de red o 5xx. 0 desactiva.
func WithMaxRetries(n int) Option { return func(c *Client) { c.maxRetries = n } }

// New construye el cliente. baseURL incluye el prefijo /api.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: 2,
		observer:   nopObserver{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describe una petición a la API.
type call struct {
	method string
	route  string // plantilla para métricas y logs
	path   string // ruta real, ya con ids escapados
	token  string
	query  url.Values
	body   any
}

// do ejecuta la llamada y decodifica la respuesta en out (si no es nil).
// Los GET se reintentan con backoff exponencial ante fallas de red o 5xx.
func (c *Client) do(ctx context.Context, in call, out any) error {
	var payload []byte
	if in.body != nil {
		b, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("medapi: serializar request: %w", err)
		}
		payload = b
	}

	var raw []byte
	op := func() error {
		var err error
		raw, err = c.roundTrip(ctx, in, payload)
		if err == nil {
			return nil
		}
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	var err error
	if in.method == http.MethodGet && c.maxRetries > 0 {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 100 * time.Millisecond
		b.MaxInterval = time.Second
		err = backoff.RetryNotify(op,
			backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx),
			func(err error, next time.Duration) {
				c.log.Warn().Err(err).Str("route", in.route).Dur("next", next).Msg("reintentando llamada a la API")
			})
	} else {
		err = op()
	}
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: respuesta ilegible: %w", domain.ErrUpstream, in.method, in.route, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, in call, payload []byte) ([]byte, error) {
	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("medapi: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveAPICall(in.method, in.route, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrUpstream, in.method, in.route, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrUpstream, in.method, in.route, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.observer.ObserveAPICall(in.method, in.route, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: leer respuesta: %w", domain.ErrUpstream, in.method, in.route, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp.StatusCode, raw)
		c.log.Debug().
			Str("method", in.method).
			Str("route", in.route).
			Int("status", resp.StatusCode).
			Str("server_message", apiErr.Message).
			Msg("la API respondió con error")
		return nil, apiErr
	}
	return raw, nil
}

func segment(id string) string { return url.PathEscape(id) }
