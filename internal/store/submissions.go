package store

import (
	"sync"

	"github.com/surfaumaroc/surfcast/internal/contact"
)

// SubmissionLog is an append-only in-memory record of contact submissions.
type SubmissionLog struct {
	mu   sync.RWMutex
	recs []contact.Record
}

func NewSubmissionLog() *SubmissionLog {
	return &SubmissionLog{}
}

func (l *SubmissionLog) Append(rec contact.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recs = append(l.recs, rec)
}

func (l *SubmissionLog) All() []contact.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]contact.Record, len(l.recs))
	copy(out, l.recs)
	return out
}
