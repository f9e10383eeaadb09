package dto

import (
	"net/url"
	"strconv"
)

// PageQuery parámetros de listado que la API remota acepta (page, limit y filtros).
type PageQuery struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Role   string `query:"role"`
	Status string `query:"status"`
	Urgent *bool  `query:"urgent"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageQuery) DefaultPage(limit int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = limit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Values serializa la consulta omitiendo filtros vacíos (role "all" incluido).
func (p PageQuery) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Role != "" && p.Role != "all" {
		v.Set("role", p.Role)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Urgent != nil {
		v.Set("urgent", strconv.FormatBool(*p.Urgent))
	}
	return v
}

// Pagination metadatos de página devueltos por la API remota.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Envelope respuesta estándar de la API remota: {data, pagination?, message?}.
type Envelope[T any] struct {
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Page listado paginado que la consola devuelve al navegador.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// NewPage arma un Page a partir de un envelope; sin paginación se asume una sola página.
func NewPage[T any](env *Envelope[[]T], page int) Page[T] {
	out := Page[T]{Items: env.Data, Page: page, TotalPages: 1}
	if out.Items == nil {
		out.Items = []T{}
	}
	if env.Pagination != nil {
		out.TotalPages = env.Pagination.TotalPages
		if env.Pagination.Page > 0 {
			out.Page = env.Pagination.Page
		}
	}
	return out
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmación simple de una mutación.
type MessageResponse struct {
	Message string `json:"message"`
}
