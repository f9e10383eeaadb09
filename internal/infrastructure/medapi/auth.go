package medapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/ports"
)

var _ ports.AuthAPI = (*Client)(nil)

// Login POST /auth/login. La respuesta es {token, user} sin envelope.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, call{method: http.MethodPost, route: "/auth/login", path: "/auth/login", body: in}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register POST /auth/register con el formulario tal cual. El cuerpo de la respuesta se ignora.
func (c *Client) Register(ctx context.Context, form dto.RegisterRequest) error {
	if form == nil {
		form = dto.RegisterRequest{}
	}
	return c.do(ctx, call{method: http.MethodPost, route: "/auth/register", path: "/auth/register", body: form}, nil)
}
