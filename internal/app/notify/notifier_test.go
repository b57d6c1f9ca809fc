package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webxtars/vybh-backend/internal/adapters/mail"
	"github.com/webxtars/vybh-backend/internal/domain/user/model"
)

type memQueue struct {
	mu   sync.Mutex
	msgs []mail.Message
}

func (q *memQueue) Enqueue(_ context.Context, m mail.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, m)
	return nil
}

func (q *memQueue) Dequeue(ctx context.Context) (mail.Message, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return mail.Message{}, false, nil
	}
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return m, true, nil
}

type captureSender struct {
	mu   sync.Mutex
	sent []mail.Message
	fail bool
}

func (s *captureSender) Send(_ context.Context, m mail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, m)
	return nil
}

func TestNotifier_UserCreatedEnqueuesWelcome(t *testing.T) {
	q := &memQueue{}
	n := New(q, &captureSender{}, zap.NewNop())

	err := n.UserCreated(model.PublicUser{
		ID:        uuid.New(),
		FirstName: "John",
		Email:     "john@x.com",
	})
	if err != nil {
		t.Fatalf("UserCreated: %v", err)
	}

	if len(q.msgs) != 1 {
		t.Fatalf("queue length = %d, want 1", len(q.msgs))
	}
	msg := q.msgs[0]
	if msg.To != "john@x.com" {
		t.Fatalf("To = %q", msg.To)
	}
	if !strings.Contains(msg.Text, "Hello John") || !strings.Contains(msg.HTML, "Hello John") {
		t.Fatal("welcome body does not address the user by first name")
	}
}

func TestNotifier_RunDrainsQueue(t *testing.T) {
	q := &memQueue{}
	sender := &captureSender{}
	n := New(q, sender, zap.NewNop())

	_ = n.UserCreated(model.PublicUser{FirstName: "A", Email: "a@x.com"})
	_ = n.UserCreated(model.PublicUser{FirstName: "B", Email: "b@x.com"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		sender.mu.Lock()
		sent := len(sender.sent)
		sender.mu.Unlock()
		if sent == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("worker sent %d of 2 messages", sent)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned %v after cancel", err)
	}
}

func TestNotifier_RunSwallowsSendFailures(t *testing.T) {
	q := &memQueue{}
	sender := &captureSender{fail: true}
	n := New(q, sender, zap.NewNop())

	_ = n.UserCreated(model.PublicUser{FirstName: "A", Email: "a@x.com"})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := n.Run(ctx); err != nil {
		t.Fatalf("Run surfaced a send failure: %v", err)
	}
}
