package helpers

import (
	"context"
	"sync"

	"vibenet_backend/internal/email"
)

// RecordingMailer keeps every message instead of sending it. Set Err to make
// Send fail.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []*email.Email
	Err  error
}

func (m *RecordingMailer) Name() string { return "recording" }

func (m *RecordingMailer) Send(_ context.Context, msg *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *RecordingMailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

func (m *RecordingMailer) Last() *email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	return m.Sent[len(m.Sent)-1]
}
