package model

import (
	"strings"
	"testing"
	"time"
)

func validRecord() *GateRecord {
	return &GateRecord{
		ID:                "gw-test123",
		GroupID:           -100200,
		MemberID:          42,
		Phase:             PhaseAnswering,
		QuestionID:        "q-arith-1",
		AttemptsRemaining: 2,
		Deadline:          time.Now().Add(5 * time.Minute),
	}
}

func TestPhaseIsValid(t *testing.T) {
	for _, p := range []Phase{PhasePending, PhaseAnswering, PhaseResolved} {
		if !p.IsValid() {
			t.Errorf("expected %q to be valid", p)
		}
	}
	if Phase("banned").IsValid() {
		t.Error("expected unknown phase to be invalid")
	}
	if Phase("").IsValid() {
		t.Error("expected empty phase to be invalid")
	}
}

func TestValidateRecord_Valid(t *testing.T) {
	if err := ValidateRecord(validRecord()); err != nil {
		t.Errorf("expected valid record, got %v", err)
	}
}

func TestValidateRecord_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GateRecord)
		field  string
	}{
		{"missing group", func(r *GateRecord) { r.GroupID = 0 }, "group_id"},
		{"missing member", func(r *GateRecord) { r.MemberID = 0 }, "member_id"},
		{"bad phase", func(r *GateRecord) { r.Phase = "limbo" }, "phase"},
		{"missing question", func(r *GateRecord) { r.QuestionID = "" }, "question_id"},
		{"negative attempts", func(r *GateRecord) { r.AttemptsRemaining = -1 }, "attempts_remaining"},
		{"zero deadline", func(r *GateRecord) { r.Deadline = time.Time{} }, "deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(r)
			err := ValidateRecord(r)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error mentioning %q, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	q := &Question{ID: "q1", Prompt: "2+2?", Answers: []string{"4", "four"}}
	if err := ValidateQuestion(q); err != nil {
		t.Errorf("expected valid question, got %v", err)
	}

	bad := &Question{ID: "q2", Prompt: "no answers"}
	if err := ValidateQuestion(bad); err == nil {
		t.Error("expected error for question without answers")
	}

	blank := &Question{ID: "q3", Prompt: "blank answer", Answers: []string{" "}}
	if err := ValidateQuestion(blank); err == nil {
		t.Error("expected error for blank accepted answer")
	}
}

func TestRecordExpired(t *testing.T) {
	now := time.Now()
	r := validRecord()
	r.Deadline = now.Add(time.Minute)

	if r.Expired(now) {
		t.Error("record should not be expired before the deadline")
	}
	if !r.Expired(r.Deadline) {
		t.Error("record is invalid at the deadline instant")
	}
	if !r.Expired(now.Add(2 * time.Minute)) {
		t.Error("record should be expired after the deadline")
	}
}

func TestKeyString(t *testing.T) {
	k := Key{GroupID: -1001, MemberID: 77}
	if got := k.String(); got != "-1001/77" {
		t.Errorf("expected -1001/77, got %s", got)
	}
}
