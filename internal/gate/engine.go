// Package gate implements the admission gate state machine.
//
// A new member joins, gets restricted, and is assigned a random
// challenge question with a deadline. A correct answer lifts the
// restriction; a wrong answer burns an attempt; running out of attempts
// or time removes the member from the group.
//
// All transitions for a given (group, member) key run under the same
// striped lock, so a deadline firing and a concurrent answer can never
// both act on the same record. The scheduler delivers timeouts into this
// serialized path instead of mutating state itself.
package gate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/groblegark/gatewarden/internal/events"
	"github.com/groblegark/gatewarden/internal/idgen"
	"github.com/groblegark/gatewarden/internal/model"
	"github.com/groblegark/gatewarden/internal/questions"
	"github.com/groblegark/gatewarden/internal/store"
	"github.com/groblegark/gatewarden/internal/transport"
)

// Engine orchestrates member gate records in response to join, answer,
// and timeout events.
type Engine struct {
	policy    Policy
	bank      *questions.Bank
	store     store.Store
	transport transport.Transport
	publisher events.Publisher
	logger    *slog.Logger

	sched *Scheduler
	locks keyLocks
}

// New creates a gate engine. Call Start to recover persisted records and
// begin accepting events, and Stop to cancel outstanding timers.
func New(policy Policy, bank *questions.Bank, s store.Store, tr transport.Transport, pub events.Publisher, logger *slog.Logger) *Engine {
	if policy.AttemptBudget <= 0 {
		policy.AttemptBudget = DefaultPolicy().AttemptBudget
	}
	if policy.AnswerTimeout <= 0 {
		policy.AnswerTimeout = DefaultPolicy().AnswerTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		policy:    policy,
		bank:      bank,
		store:     s,
		transport: tr,
		publisher: pub,
		logger:    logger,
	}
	e.sched = NewScheduler(e.handleTimeout)
	return e
}

// Start reloads persisted gate records and re-arms their deadlines.
// Records whose deadline already passed while the process was down are
// expired immediately.
func (e *Engine) Start(ctx context.Context) error {
	recs, err := e.store.ListRecords(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	var expired []model.Key
	for _, rec := range recs {
		if rec.Expired(now) {
			expired = append(expired, rec.Key())
			continue
		}
		e.sched.Arm(rec.Key(), rec.Deadline)
	}
	if len(recs) > 0 {
		e.logger.Info("gate: recovered records",
			"active", len(recs)-len(expired),
			"expired", len(expired))
	}

	for _, key := range expired {
		e.handleTimeout(key)
	}
	return nil
}

// Stop cancels all pending deadline timers.
func (e *Engine) Stop() {
	e.sched.Stop()
}

// HandleJoin processes a member-joined event: creates the gate record,
// restricts the member, delivers the question, and arms the deadline.
// A join for an already-gated key is ignored (no second record, no
// re-armed timer).
func (e *Engine) HandleJoin(ctx context.Context, key model.Key) error {
	mu := e.locks.lock(key)
	defer mu.Unlock()

	_, err := e.store.GetRecord(ctx, key)
	if err == nil {
		// Duplicate join: the member is already gated.
		e.logger.Debug("gate: duplicate join ignored", "key", key.String())
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return err
	}

	q := e.bank.Pick(key)
	id, err := idgen.Generate()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rec := &model.GateRecord{
		ID:                id,
		GroupID:           key.GroupID,
		MemberID:          key.MemberID,
		Phase:             model.PhasePending,
		QuestionID:        q.ID,
		AttemptsRemaining: e.policy.AttemptBudget,
		Deadline:          now.Add(e.policy.AnswerTimeout),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := e.store.SaveRecord(ctx, rec); err != nil {
		return err
	}

	// Restriction failures fail closed: the record stands and the
	// deadline will remove the member if they cannot answer.
	if err := e.transport.RestrictMember(ctx, key.GroupID, key.MemberID); err != nil {
		e.logger.Warn("gate: restrict failed", "key", key.String(), "error", err)
	}

	e.sched.Arm(key, rec.Deadline)
	e.recordAndPublish(ctx, events.TopicMemberGated, key, events.MemberGated{Record: rec})
	e.logger.Info("gate: member gated",
		"key", key.String(),
		"question_id", q.ID,
		"deadline", rec.Deadline)

	e.prompt(ctx, rec, q)
	return nil
}

// prompt delivers the question and advances Pending records to
// Answering. Called with the key lock held.
func (e *Engine) prompt(ctx context.Context, rec *model.GateRecord, q model.Question) {
	key := rec.Key()
	if err := e.transport.SendPrompt(ctx, key.GroupID, key.MemberID, q.Prompt); err != nil {
		// The member stays Pending; the deadline still governs them.
		e.logger.Warn("gate: prompt failed", "key", key.String(), "error", err)
		return
	}

	if rec.Phase == model.PhasePending {
		rec.Phase = model.PhaseAnswering
		rec.UpdatedAt = time.Now().UTC()
		if err := e.store.SaveRecord(ctx, rec); err != nil {
			e.logger.Warn("gate: save after prompt failed", "key", key.String(), "error", err)
		}
	}
	e.recordAndPublish(ctx, events.TopicMemberPrompted, key, events.MemberPrompted{
		Key:        key,
		QuestionID: q.ID,
	})
}

// HandleMessage processes a message from a member. Messages from members
// with no active record are ignored (already resolved, or never gated).
func (e *Engine) HandleMessage(ctx context.Context, key model.Key, text string) error {
	mu := e.locks.lock(key)
	defer mu.Unlock()

	rec, err := e.store.GetRecord(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	q, err := e.bank.Lookup(rec.QuestionID)
	if errors.Is(err, model.ErrUnknownQuestion) {
		// The bank was reloaded underneath the record. Unresolvable:
		// remove the member rather than leaving them gated forever.
		e.logger.Warn("gate: record references unknown question",
			"key", key.String(), "question_id", rec.QuestionID)
		e.resolveRemoved(ctx, key, events.ReasonUnknownQuestion)
		return nil
	}
	if err != nil {
		return err
	}

	if questions.Validate(q, text) {
		e.resolvePassed(ctx, key, rec.QuestionID)
		return nil
	}

	rec.AttemptsRemaining--
	if rec.AttemptsRemaining <= 0 {
		e.resolveRemoved(ctx, key, events.ReasonAttemptsExhausted)
		return nil
	}

	if e.policy.RerollOnRetry {
		q = e.bank.Pick(key)
		rec.QuestionID = q.ID
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := e.store.SaveRecord(ctx, rec); err != nil {
		return err
	}

	e.recordAndPublish(ctx, events.TopicMemberRetried, key, events.MemberRetried{
		Key:               key,
		QuestionID:        rec.QuestionID,
		AttemptsRemaining: rec.AttemptsRemaining,
	})
	e.logger.Info("gate: wrong answer",
		"key", key.String(),
		"attempts_remaining", rec.AttemptsRemaining)

	// Re-prompt with the (possibly re-rolled) question. Deadline unchanged.
	e.prompt(ctx, rec, q)
	return nil
}

// handleTimeout is the scheduler callback: the deadline for a key
// elapsed without resolution.
func (e *Engine) handleTimeout(key model.Key) {
	ctx := context.Background()
	mu := e.locks.lock(key)
	defer mu.Unlock()

	_, err := e.store.GetRecord(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		// Stale timeout: the record resolved first.
		e.logger.Debug("gate: stale timeout ignored", "key", key.String())
		return
	}
	if err != nil {
		e.logger.Error("gate: timeout record lookup failed", "key", key.String(), "error", err)
		return
	}

	e.logger.Info("gate: deadline elapsed", "key", key.String())
	e.resolveRemoved(ctx, key, events.ReasonTimeout)
}

// Resolve is the admin override: approve lifts the gate as if the member
// answered correctly; deny removes them. Returns model.ErrNotFound when
// no active record exists for the key.
func (e *Engine) Resolve(ctx context.Context, key model.Key, approve bool) error {
	mu := e.locks.lock(key)
	defer mu.Unlock()

	rec, err := e.store.GetRecord(ctx, key)
	if err != nil {
		return err
	}

	if approve {
		e.resolvePassed(ctx, key, rec.QuestionID)
	} else {
		e.resolveRemoved(ctx, key, events.ReasonAdmin)
	}
	return nil
}

// resolvePassed performs the success terminal transition. Called with
// the key lock held.
func (e *Engine) resolvePassed(ctx context.Context, key model.Key, questionID string) {
	e.sched.Cancel(key)

	// Fails closed: if the unrestrict call fails the member keeps the
	// restriction until an admin intervenes; privileges are never
	// granted as a side effect of an error elsewhere.
	if err := e.transport.UnrestrictMember(ctx, key.GroupID, key.MemberID); err != nil {
		e.logger.Warn("gate: unrestrict failed", "key", key.String(), "error", err)
	}

	e.discard(ctx, key)
	e.recordAndPublish(ctx, events.TopicMemberPassed, key, events.MemberPassed{
		Key:        key,
		QuestionID: questionID,
	})
	e.logger.Info("gate: member passed", "key", key.String())
}

// resolveRemoved performs a failure terminal transition (timeout,
// exhausted attempts, unknown question, admin deny). Called with the key
// lock held.
func (e *Engine) resolveRemoved(ctx context.Context, key model.Key, reason string) {
	e.sched.Cancel(key)

	// One bounded retry; after that the record is discarded regardless,
	// so gated state cannot leak behind a broken transport.
	if err := e.transport.RemoveMember(ctx, key.GroupID, key.MemberID); err != nil {
		e.logger.Warn("gate: remove failed, retrying once", "key", key.String(), "error", err)
		if err := e.transport.RemoveMember(ctx, key.GroupID, key.MemberID); err != nil {
			e.logger.Error("gate: remove failed", "key", key.String(), "error", err)
		}
	}

	e.discard(ctx, key)
	e.recordAndPublish(ctx, events.TopicMemberRemoved, key, events.MemberRemoved{
		Key:    key,
		Reason: reason,
	})
	e.logger.Info("gate: member removed", "key", key.String(), "reason", reason)
}

// discard deletes the record and the bank's per-member assignment marker.
func (e *Engine) discard(ctx context.Context, key model.Key) {
	if err := e.store.DeleteRecord(ctx, key); err != nil {
		e.logger.Error("gate: delete record failed", "key", key.String(), "error", err)
	}
	e.bank.Forget(key)
}

// recordAndPublish persists an audit event and publishes it to NATS.
// Both operations are best-effort; failures are logged but do not block
// the transition.
func (e *Engine) recordAndPublish(ctx context.Context, topic string, key model.Key, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		e.logger.Warn("gate: marshal event failed", "topic", topic, "key", key.String(), "error", err)
		return
	}
	if err := e.store.RecordEvent(ctx, &model.GateEvent{
		Topic:    topic,
		GroupID:  key.GroupID,
		MemberID: key.MemberID,
		Payload:  payload,
	}); err != nil {
		e.logger.Warn("gate: record event failed", "topic", topic, "key", key.String(), "error", err)
	}
	if err := e.publisher.Publish(ctx, topic, event); err != nil {
		e.logger.Warn("gate: publish event failed", "topic", topic, "key", key.String(), "error", err)
	}
}

// PendingTimers returns the number of armed deadline timers.
func (e *Engine) PendingTimers() int {
	return e.sched.Active()
}
