package model

import "errors"

// ErrNotFound is returned by stores when no record exists for a key.
var ErrNotFound = errors.New("not found")

// ErrUnknownQuestion is returned by the question bank when a record
// references a question identifier that is no longer loaded (e.g. the
// bank was reloaded and the identifier went stale). Non-retryable: the
// gate resolves the record by removing the member rather than leaving
// them gated forever.
var ErrUnknownQuestion = errors.New("unknown question")
