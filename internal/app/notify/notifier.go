// Package notify owns the fire-and-forget welcome mail: user creation
// enqueues a message, a background worker drains the queue and sends.
// Nothing in here ever propagates a failure back to the request that
// triggered it.
package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/webxtars/vybh-backend/internal/adapters/mail"
	"github.com/webxtars/vybh-backend/internal/domain/user/model"
)

type Queue interface {
	Enqueue(ctx context.Context, m mail.Message) error
	Dequeue(ctx context.Context) (m mail.Message, ok bool, err error)
}

type Notifier struct {
	queue  Queue
	sender mail.Sender
	log    *zap.Logger
}

func New(queue Queue, sender mail.Sender, log *zap.Logger) *Notifier {
	return &Notifier{queue: queue, sender: sender, log: log}
}

// UserCreated enqueues the welcome mail for a new account.
func (n *Notifier) UserCreated(u model.PublicUser) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return n.queue.Enqueue(ctx, welcomeMessage(u))
}

// Run drains the outbound queue until ctx is cancelled. Send failures
// are logged and the message dropped; there is no retry policy.
func (n *Notifier) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		msg, ok, err := n.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			n.log.Error("mail queue read failed", zap.Error(err))
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		if !ok {
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		err = n.sender.Send(sendCtx, msg)
		cancel()
		if err != nil {
			n.log.Error("mail send failed",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
			continue
		}
		n.log.Info("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	}
}

func welcomeMessage(u model.PublicUser) mail.Message {
	text := fmt.Sprintf(
		"Hello %s,\n\nWelcome to Vybh. Your account is ready to use.\n\nIf you did not create an account, no further action is required.\n\nBest regards,\nThe Vybh Team",
		u.FirstName,
	)
	html := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
		<b>Hello %s,</b>
		<p>Welcome to Vybh. Your account is ready to use.</p>
		<p>If you did not create an account, no further action is required.</p>
		<p>Best regards,<br/><b>The Vybh Team</b></p>
		</div>`,
		u.FirstName,
	)

	return mail.Message{
		To:      u.Email,
		Subject: "Welcome to Vybh",
		Text:    text,
		HTML:    html,
	}
}
