package session

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/medicare-console/internal/application/ports"
)

// Level severidad de una notificación transitoria.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notifier recibe las notificaciones transitorias que la interfaz muestra tras
// cada operación (toast).
type Notifier interface {
	Notify(level Level, message string)
}

// Recorder recibe los eventos del ciclo de vida para métricas.
type Recorder interface {
	RecordLogin(outcome string)
	RecordLogout()
	RecordRestore(outcome string)
}

// LogNotifier escribe las notificaciones en el logger.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Notify(level Level, message string) {
	ev := n.Log.Info()
	if level == LevelError {
		ev = n.Log.Warn()
	}
	ev.Str("level", string(level)).Msg(message)
}

type nopRecorder struct{}

func (nopRecorder) RecordLogin(string)   {}
func (nopRecorder) RecordLogout()        {}
func (nopRecorder) RecordRestore(string) {}

// messageFrom extrae el mensaje legible de un error: primero el del servidor,
// luego el texto del error y por último fallback.
func messageFrom(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var mc ports.MessageCarrier
	if errors.As(err, &mc) {
		if m := strings.TrimSpace(mc.ServerMessage()); m != "" {
			return m
		}
	}
	if m := strings.TrimSpace(err.Error()); m != "" {
		return m
	}
	return fallback
}
