// Package questions holds the challenge question bank and the answer
// validator.
//
// The Bank is read-mostly: Pick and Lookup take a read lock and are safe
// for concurrent use across gate keys; Reload swaps the whole question
// set under a write lock. Per-member selection avoids handing the same
// member the question they were assigned last time, when the bank is
// large enough to allow it.
package questions

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/groblegark/gatewarden/internal/model"
)

// Bank holds the loaded question set and tracks the last question
// assigned per (group, member) key.
type Bank struct {
	mu           sync.RWMutex
	questions    []model.Question
	byID         map[string]model.Question
	lastAssigned map[model.Key]string
}

// New creates a bank from an already-validated question list.
func New(qs []model.Question) (*Bank, error) {
	if len(qs) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	byID := make(map[string]model.Question, len(qs))
	for i := range qs {
		q := qs[i]
		if err := model.ValidateQuestion(&q); err != nil {
			return nil, fmt.Errorf("question %q: %w", q.ID, err)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		byID[q.ID] = q
	}
	return &Bank{
		questions:    qs,
		byID:         byID,
		lastAssigned: make(map[model.Key]string),
	}, nil
}

// Load fetches and parses questions from the source and creates a bank.
func Load(ctx context.Context, src Source) (*Bank, error) {
	qs, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return New(qs)
}

// Len returns the number of loaded questions.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}

// Pick returns one question for the given key, selected uniformly at
// random but avoiding the question the member was assigned last time
// when the bank has more than one question. It always returns a valid
// question for a non-empty bank.
func (b *Bank) Pick(key model.Key) model.Question {
	b.mu.Lock()
	defer b.mu.Unlock()

	last := b.lastAssigned[key]
	q := b.questions[rand.IntN(len(b.questions))]
	if q.ID == last && len(b.questions) > 1 {
		// Re-draw from the remaining questions by offsetting past the repeat.
		n := 1 + rand.IntN(len(b.questions)-1)
		for i := range b.questions {
			if b.questions[i].ID == last {
				q = b.questions[(i+n)%len(b.questions)]
				break
			}
		}
	}

	b.lastAssigned[key] = q.ID
	return q
}

// Lookup returns the question with the given identifier, or
// model.ErrUnknownQuestion if the identifier is not loaded (e.g. the
// bank was reloaded and the identifier went stale).
func (b *Bank) Lookup(id string) (model.Question, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	q, ok := b.byID[id]
	if !ok {
		return model.Question{}, fmt.Errorf("question %q: %w", id, model.ErrUnknownQuestion)
	}
	return q, nil
}

// Forget drops the last-assigned marker for a key. Called when a gate
// record reaches a terminal state so the map does not grow without bound.
func (b *Bank) Forget(key model.Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.lastAssigned, key)
}

// Reload replaces the question set from the source. Records holding
// identifiers that vanish in the reload will fail Lookup with
// model.ErrUnknownQuestion; the gate treats that as unresolvable.
func (b *Bank) Reload(ctx context.Context, src Source) error {
	qs, err := src.Fetch(ctx)
	if err != nil {
		return err
	}
	fresh, err := New(qs)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.questions = fresh.questions
	b.byID = fresh.byID
	return nil
}
