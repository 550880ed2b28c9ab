package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/groblegark/gatewarden/internal/model"
)

// recordColumns is the column list used for SELECT statements on the
// gate_records table.
const recordColumns = `id, group_id, member_id, phase, question_id,
	attempts_remaining, deadline, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func querySaveRecord(ctx context.Context, db executor, r *model.GateRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO gate_records (
			id, group_id, member_id, phase, question_id,
			attempts_remaining, deadline, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
		ON CONFLICT (group_id, member_id) DO UPDATE SET
			phase = EXCLUDED.phase,
			question_id = EXCLUDED.question_id,
			attempts_remaining = EXCLUDED.attempts_remaining,
			deadline = EXCLUDED.deadline,
			updated_at = EXCLUDED.updated_at`,
		r.ID,
		r.GroupID,
		r.MemberID,
		string(r.Phase),
		r.QuestionID,
		r.AttemptsRemaining,
		r.Deadline,
		r.CreatedAt,
		r.UpdatedAt,
	)
	return err
}

func queryGetRecord(ctx context.Context, db executor, key model.Key) (*model.GateRecord, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM gate_records WHERE group_id = $1 AND member_id = $2`,
		key.GroupID, key.MemberID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func queryDeleteRecord(ctx context.Context, db executor, key model.Key) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM gate_records WHERE group_id = $1 AND member_id = $2`,
		key.GroupID, key.MemberID)
	return err
}

func queryListRecords(ctx context.Context, db executor) ([]*model.GateRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM gate_records ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*model.GateRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func queryRecordEvent(ctx context.Context, db executor, ev *model.GateEvent) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO gate_events (topic, group_id, member_id, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		ev.Topic,
		ev.GroupID,
		ev.MemberID,
		payloadBytes(ev.Payload),
	).Scan(&ev.ID, &ev.CreatedAt)
}

func queryGetEvents(ctx context.Context, db executor, key model.Key) ([]*model.GateEvent, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, topic, group_id, member_id, payload, created_at
		FROM gate_events
		WHERE group_id = $1 AND member_id = $2
		ORDER BY id`,
		key.GroupID, key.MemberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evs []*model.GateEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		evs = append(evs, ev)
	}
	return evs, rows.Err()
}
