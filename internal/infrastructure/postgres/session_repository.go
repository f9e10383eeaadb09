package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/medicare-console/internal/application/session"
)

var (
	_ session.PersistenceFactory = (*SessionRepo)(nil)
	_ session.Persistence        = (*deviceSession)(nil)
)

// Claves durables; iguales a las del resto de backends.
const (
	keyToken    = "token"
	keyUser     = "user"
	keyUserRole = "userRole"
)

// SessionRepo sesiones durables en la tabla console_sessions (una fila por clave).
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el adaptador de persistencia de sesiones.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// ForDevice devuelve la vista de un dispositivo.
func (r *SessionRepo) ForDevice(deviceID string) session.Persistence {
	return &deviceSession{pool: r.pool, deviceID: deviceID}
}

// PurgeBefore borra las sesiones sin escritura desde cutoff. Devuelve las filas borradas.
func (r *SessionRepo) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM console_sessions
		WHERE device_id IN (
			SELECT device_id FROM console_sessions GROUP BY device_id HAVING MAX(updated_at) < $1
		)`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

type deviceSession struct {
	pool     *pgxpool.Pool
	deviceID string
}

func (d *deviceSession) Load(ctx context.Context) (session.Record, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT key, value FROM console_sessions WHERE device_id = $1`, d.deviceID)
	if err != nil {
		if isUndefinedTable(err) {
			return session.Record{}, fmt.Errorf("load session: tabla console_sessions inexistente (¿migraciones?): %w", err)
		}
		return session.Record{}, fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	var rec session.Record
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return session.Record{}, fmt.Errorf("scan session: %w", err)
		}
		switch key {
		case keyToken:
			rec.Token = value
		case keyUser:
			rec.User = value
		case keyUserRole:
			rec.Role = value
		}
	}
	if err := rows.Err(); err != nil {
		return session.Record{}, fmt.Errorf("load session rows: %w", err)
	}
	return rec, nil
}

// Save reemplaza las tres claves en una sola transacción. Usa upsert por
// (device_id, key) para que dos pestañas del mismo dispositivo puedan guardar a la vez.
func (d *deviceSession) Save(ctx context.Context, rec session.Record) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	const upsert = `
		INSERT INTO console_sessions (device_id, key, value, updated_at) VALUES ($1, $2, $3, NOW())
		ON CONFLICT (device_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	batch.Queue(upsert, d.deviceID, keyToken, rec.Token)
	batch.Queue(upsert, d.deviceID, keyUser, rec.User)
	batch.Queue(upsert, d.deviceID, keyUserRole, rec.Role)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (d *deviceSession) Clear(ctx context.Context) error {
	if _, err := d.pool.Exec(ctx, `DELETE FROM console_sessions WHERE device_id = $1`, d.deviceID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
