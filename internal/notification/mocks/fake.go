package mocks

import (
	"context"
	"sync"

	"eke/internal/notification"
)

// FakeNotifier records intents instead of publishing them. Thread-safe so
// services may emit from detached goroutines; tests poll Recorded or
// CountByKind (assert.Eventually works well).
type FakeNotifier struct {
	mu      sync.Mutex
	intents []notification.Intent
	err     error
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

var _ notification.Notifier = (*FakeNotifier)(nil)

func (f *FakeNotifier) Notify(_ context.Context, intent notification.Intent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.intents = append(f.intents, intent)

	return nil
}

// FailWith makes every subsequent Notify return err.
func (f *FakeNotifier) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.err = err
}

func (f *FakeNotifier) Recorded() []notification.Intent {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]notification.Intent, len(f.intents))
	copy(out, f.intents)

	return out
}

func (f *FakeNotifier) CountByKind(kind notification.Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, intent := range f.intents {
		if intent.Kind == kind {
			count++
		}
	}

	return count
}
