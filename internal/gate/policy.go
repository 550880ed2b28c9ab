package gate

import "time"

// Policy holds the configurable admission rules, passed into the engine
// at construction.
type Policy struct {
	// AttemptBudget is the maximum number of wrong answers tolerated
	// before the member is removed.
	AttemptBudget int

	// AnswerTimeout is how long a member has to answer correctly after
	// joining, before they are removed.
	AnswerTimeout time.Duration

	// RerollOnRetry selects whether a wrong answer assigns a fresh
	// question (true) or re-sends the same one (false).
	RerollOnRetry bool
}

// DefaultPolicy returns the policy used when nothing is configured:
// three attempts, five minutes, same question on retry.
func DefaultPolicy() Policy {
	return Policy{
		AttemptBudget: 3,
		AnswerTimeout: 5 * time.Minute,
	}
}
