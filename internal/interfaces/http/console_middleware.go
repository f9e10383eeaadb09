package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medicare-console/internal/application/session"
	"github.com/jhoicas/medicare-console/pkg/jwt"
)

// Nombres de cookie y keys de Locals de la consola.
const (
	DeviceCookie = "mc_device"
	TabCookie    = "mc_tab"

	LocalStore    = "session_store"
	LocalDeviceID = "device_id"
)

// ConsoleConfig dependencias del middleware de consola.
type ConsoleConfig struct {
	Registry  *session.Registry
	Signer    *jwt.Signer
	Secure    bool
	Domain    string
	DeviceTTL time.Duration
	Log       zerolog.Logger
}

// Console liga cada petición al Store de su pestaña.
//
// La cookie de dispositivo (persistente) es la llave del almacenamiento durable;
// la de pestaña (cookie de sesión del navegador) es el marcador de vida: si no
// llega, el Store arranca como primera carga y la emite al marcar. Una cookie
// con firma inválida se trata como ausente.
func Console(cfg ConsoleConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deviceID, err := cfg.Signer.Parse(jwt.KindDevice, c.Cookies(DeviceCookie))
		if err != nil {
			deviceID = uuid.NewString()
			if err := setSigned(c, cfg, DeviceCookie, jwt.KindDevice, deviceID, cfg.DeviceTTL); err != nil {
				return err
			}
			cfg.Log.Debug().Str("device_id", deviceID).Msg("nuevo dispositivo")
		}

		tabID, err := cfg.Signer.Parse(jwt.KindTab, c.Cookies(TabCookie))
		present := err == nil
		if !present {
			tabID = uuid.NewString()
		}
		var markErr error
		marker := &session.StaticMarker{
			Present: present,
			OnMark: func() {
				markErr = setSigned(c, cfg, TabCookie, jwt.KindTab, tabID, 0)
			},
		}

		st := cfg.Registry.Open(c.UserContext(), deviceID, tabID, marker)
		if markErr != nil {
			return markErr
		}
		c.Locals(LocalStore, st)
		c.Locals(LocalDeviceID, deviceID)
		return c.Next()
	}
}

// setSigned emite una cookie firmada; ttl 0 la deja como cookie de sesión.
func setSigned(c *fiber.Ctx, cfg ConsoleConfig, name string, kind jwt.Kind, id string, ttl time.Duration) error {
	value, err := cfg.Signer.Generate(kind, id, ttl)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "no se pudo firmar la cookie "+name)
	}
	ck := &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		Secure:   cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if ttl > 0 {
		ck.Expires = time.Now().Add(ttl)
	} else {
		ck.SessionOnly = true
	}
	c.Cookie(ck)
	return nil
}

// StoreFrom devuelve el Store de la petición. Usarlo fuera de Console es un
// error de programación y entra en pánico.
func StoreFrom(c *fiber.Ctx) *session.Store {
	st, ok := c.Locals(LocalStore).(*session.Store)
	if !ok || st == nil {
		panic("http: StoreFrom llamado sin el middleware Console en la ruta " + c.Path())
	}
	return st
}

// GetDeviceID devuelve el id de dispositivo (después de Console).
func GetDeviceID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalDeviceID).(string)
	return s
}
