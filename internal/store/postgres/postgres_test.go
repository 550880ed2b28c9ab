package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/groblegark/gatewarden/internal/model"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return &PostgresStore{db: db}, mock
}

// recordRowColumns is the column list for scanRecord results.
var recordRowColumns = []string{
	"id", "group_id", "member_id", "phase", "question_id",
	"attempts_remaining", "deadline", "created_at", "updated_at",
}

func addRecordRow(rows *sqlmock.Rows, id string, group, member int64, phase string, attempts int, now time.Time) *sqlmock.Rows {
	return rows.AddRow(id, group, member, phase, "q1", attempts, now.Add(5*time.Minute), now, now)
}

func TestSaveRecord(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO gate_records").
		WithArgs("gw-a", int64(-100), int64(1), "pending", "q1", 3, now.Add(5*time.Minute), now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.SaveRecord(context.Background(), &model.GateRecord{
		ID:                "gw-a",
		GroupID:           -100,
		MemberID:          1,
		Phase:             model.PhasePending,
		QuestionID:        "q1",
		AttemptsRemaining: 3,
		Deadline:          now.Add(5 * time.Minute),
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
}

func TestGetRecord(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(recordRowColumns)
	addRecordRow(rows, "gw-a", -100, 1, "answering", 2, now)

	mock.ExpectQuery("SELECT (.+) FROM gate_records WHERE group_id = \\$1 AND member_id = \\$2").
		WithArgs(int64(-100), int64(1)).
		WillReturnRows(rows)

	rec, err := s.GetRecord(context.Background(), model.Key{GroupID: -100, MemberID: 1})
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if rec.Phase != model.PhaseAnswering {
		t.Errorf("expected answering phase, got %q", rec.Phase)
	}
	if rec.AttemptsRemaining != 2 {
		t.Errorf("expected 2 attempts remaining, got %d", rec.AttemptsRemaining)
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM gate_records WHERE group_id = \\$1 AND member_id = \\$2").
		WithArgs(int64(-100), int64(99)).
		WillReturnRows(sqlmock.NewRows(recordRowColumns))

	_, err := s.GetRecord(context.Background(), model.Key{GroupID: -100, MemberID: 99})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM gate_records WHERE group_id = \\$1 AND member_id = \\$2").
		WithArgs(int64(-100), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.DeleteRecord(context.Background(), model.Key{GroupID: -100, MemberID: 1}); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
}

func TestListRecords(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(recordRowColumns)
	addRecordRow(rows, "gw-a", -100, 1, "pending", 3, now)
	addRecordRow(rows, "gw-b", -100, 2, "answering", 1, now)

	mock.ExpectQuery("SELECT (.+) FROM gate_records ORDER BY created_at").
		WillReturnRows(rows)

	recs, err := s.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[1].MemberID != 2 {
		t.Errorf("unexpected second record: %+v", recs[1])
	}
}

func TestRecordEvent(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO gate_events").
		WithArgs("gatewarden.member.gated", int64(-100), int64(1), []byte(`{"question_id":"q1"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	ev := &model.GateEvent{
		Topic:    "gatewarden.member.gated",
		GroupID:  -100,
		MemberID: 1,
		Payload:  json.RawMessage(`{"question_id":"q1"}`),
	}
	if err := s.RecordEvent(context.Background(), ev); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	if ev.ID != 7 {
		t.Errorf("expected returned id 7, got %d", ev.ID)
	}
}

func TestRecordEvent_EmptyPayload(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO gate_events").
		WithArgs("gatewarden.member.removed", int64(-100), int64(1), []byte(`{}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(8), now))

	ev := &model.GateEvent{
		Topic:    "gatewarden.member.removed",
		GroupID:  -100,
		MemberID: 1,
	}
	if err := s.RecordEvent(context.Background(), ev); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
}

func TestGetEvents(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "topic", "group_id", "member_id", "payload", "created_at"}).
		AddRow(int64(1), "gatewarden.member.gated", int64(-100), int64(1), []byte(`{}`), now).
		AddRow(int64(2), "gatewarden.member.passed", int64(-100), int64(1), []byte(`{}`), now)

	mock.ExpectQuery("SELECT (.+) FROM gate_events").
		WithArgs(int64(-100), int64(1)).
		WillReturnRows(rows)

	evs, err := s.GetEvents(context.Background(), model.Key{GroupID: -100, MemberID: 1})
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	if evs[0].Topic != "gatewarden.member.gated" {
		t.Errorf("unexpected first topic %q", evs[0].Topic)
	}
}
