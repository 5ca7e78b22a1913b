package services

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Mailer sends one HTML email to a set of recipients, honouring the context
// deadline.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

// MailerFunc adapts a plain function (e.g. config.SendMail) to Mailer.
type MailerFunc func(ctx context.Context, to []string, subject, html string) error

func (f MailerFunc) Send(ctx context.Context, to []string, subject, html string) error {
	return f(ctx, to, subject, html)
}

// SMSSender sends one SMS. Implemented by config.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// PushSender fans one notice out to a set of device tokens. Implemented by
// config.ExpoPushClient.
type PushSender interface {
	SendPush(ctx context.Context, tokens []string, title, body string) error
}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelPush  = "push"
)

// DispatchAttempt is one outbound message on one channel.
type DispatchAttempt struct {
	Channel string
	To      []string
	Subject string
	Body    string
}

// DispatchResult is the per-channel outcome. A failed attempt never fails
// the caller; it is reported here and logged.
type DispatchResult struct {
	Channel string `json:"channel"`
	Target  string `json:"target"`
	Sent    bool   `json:"sent"`
	Error   string `json:"error,omitempty"`
}

// Notifier fans admission events out to the side channels. Attempts run in
// order, each wrapped so one failure does not abort the batch, and the whole
// batch is bounded by a timeout so a slow provider cannot stall a response.
type Notifier struct {
	mailer  Mailer
	sms     SMSSender
	push    PushSender
	timeout time.Duration
}

const defaultDispatchTimeout = 5 * time.Second

func NewNotifier(mailer Mailer, sms SMSSender, push PushSender) *Notifier {
	return &Notifier{mailer: mailer, sms: sms, push: push, timeout: defaultDispatchTimeout}
}

// HasSMS reports whether an SMS sender is wired in.
func (n *Notifier) HasSMS() bool { return n != nil && n.sms != nil }

// HasPush reports whether a push sender is wired in.
func (n *Notifier) HasPush() bool { return n != nil && n.push != nil }

// Dispatch runs the attempts and returns one result per attempt.
func (n *Notifier) Dispatch(ctx context.Context, attempts []DispatchAttempt) []DispatchResult {
	if n == nil || len(attempts) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	results := make([]DispatchResult, 0, len(attempts))
	for _, attempt := range attempts {
		results = append(results, n.send(ctx, attempt))
	}
	return results
}

func (n *Notifier) send(ctx context.Context, attempt DispatchAttempt) DispatchResult {
	result := DispatchResult{Channel: attempt.Channel, Target: firstTarget(attempt.To)}

	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		log.Printf("dispatch skipped (channel=%s): %v", attempt.Channel, err)
		return result
	}

	// The send runs off to the side so a provider that ignores the context
	// cannot hold the dispatch past its deadline.
	done := make(chan error, 1)
	go func() { done <- n.sendOnChannel(ctx, attempt) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		result.Error = err.Error()
		log.Printf("dispatch failed (channel=%s to=%v subject=%q): %v",
			attempt.Channel, attempt.To, attempt.Subject, err)
		return result
	}

	result.Sent = true
	return result
}

func (n *Notifier) sendOnChannel(ctx context.Context, attempt DispatchAttempt) error {
	switch attempt.Channel {
	case ChannelEmail:
		if n.mailer == nil {
			return fmt.Errorf("mailer not configured")
		}
		return n.mailer.Send(ctx, attempt.To, attempt.Subject, attempt.Body)
	case ChannelSMS:
		if n.sms == nil {
			return fmt.Errorf("sms sender not configured")
		}
		return n.sms.SendSMS(ctx, firstTarget(attempt.To), attempt.Body)
	case ChannelPush:
		if n.push == nil {
			return fmt.Errorf("push sender not configured")
		}
		return n.push.SendPush(ctx, attempt.To, attempt.Subject, attempt.Body)
	default:
		return fmt.Errorf("unknown channel %q", attempt.Channel)
	}
}

// Warnings condenses failed attempts into response warning strings.
func Warnings(results []DispatchResult) []string {
	var warnings []string
	for _, r := range results {
		if !r.Sent {
			warnings = append(warnings, fmt.Sprintf("%s delivery failed: %s", r.Channel, r.Error))
		}
	}
	return warnings
}

func firstTarget(to []string) string {
	if len(to) == 0 {
		return ""
	}
	return to[0]
}
