package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUpstream           = errors.New("la API remota no respondió correctamente")
	ErrMalformedSession   = errors.New("sesión persistida incompleta o corrupta")
	ErrIncompleteLogin    = errors.New("Invalid login response")
	ErrLoginSuperseded    = errors.New("Login superseded")
	ErrAdminStatusChange  = errors.New("Admin accounts cannot be disabled")
	ErrMissingPatient     = errors.New("Please select a patient")
	ErrMissingDonationFld = errors.New("Please fill all required fields")
)
