package sessionrepository

import (
	"context"
	"fmt"
	"time"

	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/reporting"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Postgres struct {
	db     *sqlx.DB
	schema string
	tracer trace.Tracer
}

func NewPostgres(db *sqlx.DB, schema string) *Postgres {
	tracer := otel.Tracer("slumber/sessionrepository/postgres")
	return &Postgres{
		db:     db,
		schema: schema,
		tracer: tracer,
	}
}

type dbSession struct {
	ID                    string    `db:"id"`
	UserID                string    `db:"user_id"`
	StartAt               time.Time `db:"start_at"`
	EndAt                 time.Time `db:"end_at"`
	StartUTCOffsetSeconds int       `db:"start_utc_offset_seconds"`
	EndUTCOffsetSeconds   int       `db:"end_utc_offset_seconds"`
	Timezone              string    `db:"timezone"`
	MidSleep              float64   `db:"mid_sleep"`
	TrackLength           float64   `db:"track_length"`
	SleepLength           float64   `db:"sleep_length"`
}

func toDBSession(userID string, session domain.SleepSession) (dbSession, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return dbSession{}, fmt.Errorf("failed to generate id: %w", err)
	}

	_, startOffset := session.Start.Zone()
	_, endOffset := session.End.Zone()

	return dbSession{
		ID:                    id.String(),
		UserID:                userID,
		StartAt:               session.Start.UTC(),
		EndAt:                 session.End.UTC(),
		StartUTCOffsetSeconds: startOffset,
		EndUTCOffsetSeconds:   endOffset,
		Timezone:              zoneName(session.Location()),
		MidSleep:              session.MidSleep,
		TrackLength:           session.TrackLength,
		SleepLength:           session.SleepLength,
	}, nil
}

func (s dbSession) toDomain() domain.SleepSession {
	return domain.SleepSession{
		Start:       restoreTime(s.StartAt, s.Timezone, s.StartUTCOffsetSeconds),
		End:         restoreTime(s.EndAt, s.Timezone, s.EndUTCOffsetSeconds),
		MidSleep:    s.MidSleep,
		TrackLength: s.TrackLength,
		SleepLength: s.SleepLength,
	}
}

func (p *Postgres) StoreSessions(ctx context.Context, userID string, sessions []domain.SleepSession) error {
	ctx, span := p.tracer.Start(ctx, "Postgres.StoreSessions")
	defer span.End()
	span.SetAttributes(attribute.Int("sessionCount", len(sessions)))

	if userID == "" {
		err := fmt.Errorf("userID is empty")
		reporting.Report(ctx, err)
		return err
	}

	if len(sessions) == 0 {
		return nil
	}

	// A single statement can not upsert the same row twice, the last occurrence wins
	rowIndex := make(map[sessionKey]int, len(sessions))
	rows := make([]dbSession, 0, len(sessions))
	for i, session := range sessions {
		if !session.End.After(session.Start) {
			return &domain.InvalidSessionError{Index: i, Start: session.Start, End: session.End}
		}
		row, err := toDBSession(userID, session)
		if err != nil {
			reporting.Report(ctx, err)
			return err
		}

		key := keyOf(session)
		if index, ok := rowIndex[key]; ok {
			rows[index] = row
			continue
		}
		rowIndex[key] = len(rows)
		rows = append(rows, row)
	}

	txx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("failed to start transaction: %w", err)
		reporting.Report(ctx, err)
		return err
	}
	defer txx.Rollback()

	_, err = txx.NamedExecContext(
		ctx,
		fmt.Sprintf(`INSERT INTO %s.sleep_sessions
		(id, user_id, start_at, end_at, start_utc_offset_seconds, end_utc_offset_seconds, timezone, mid_sleep, track_length, sleep_length)
		VALUES (:id, :user_id, :start_at, :end_at, :start_utc_offset_seconds, :end_utc_offset_seconds, :timezone, :mid_sleep, :track_length, :sleep_length)
		ON CONFLICT (user_id, start_at, end_at)
		DO UPDATE SET
			start_utc_offset_seconds = EXCLUDED.start_utc_offset_seconds,
			end_utc_offset_seconds = EXCLUDED.end_utc_offset_seconds,
			timezone = EXCLUDED.timezone,
			mid_sleep = EXCLUDED.mid_sleep,
			track_length = EXCLUDED.track_length,
			sleep_length = EXCLUDED.sleep_length`,
			pq.QuoteIdentifier(p.schema)),
		rows,
	)
	if err != nil {
		err := fmt.Errorf("failed to insert sessions: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"userID":       userID,
			"sessionCount": fmt.Sprint(len(sessions)),
		})
		return err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err)
		return err
	}

	return nil
}

func (p *Postgres) GetSessions(ctx context.Context, userID string, start, end time.Time) ([]domain.SleepSession, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetSessions")
	defer span.End()

	if userID == "" {
		err := fmt.Errorf("userID is empty")
		reporting.Report(ctx, err)
		return nil, err
	}

	var rows []dbSession
	err := p.db.SelectContext(
		ctx,
		&rows,
		fmt.Sprintf(`SELECT
			id, user_id, start_at, end_at, start_utc_offset_seconds, end_utc_offset_seconds, timezone, mid_sleep, track_length, sleep_length
		FROM %s.sleep_sessions
		WHERE user_id = $1 AND start_at >= $2 AND start_at < $3
		ORDER BY start_at ASC, end_at ASC`,
			pq.QuoteIdentifier(p.schema)),
		userID,
		start.UTC(),
		end.UTC(),
	)
	if err != nil {
		err := fmt.Errorf("failed to select sessions: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"userID": userID,
			"start":  start.Format(time.RFC3339),
			"end":    end.Format(time.RFC3339),
		})
		return nil, err
	}
	span.SetAttributes(attribute.Int("sessionCount", len(rows)))

	sessions := make([]domain.SleepSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.toDomain())
	}

	return sessions, nil
}
