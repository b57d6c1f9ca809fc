package mail

import "context"

// Message is a single outbound email, as queued and as handed to a
// Sender.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}
