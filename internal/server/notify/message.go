// Package notify delivers account notifications. Senders either talk SMTP
// directly, hand the message to RabbitMQ for the notification worker, or
// just log it for local development.
package notify

import (
	"context"
	"fmt"
)

// RoutingKeyOTPIssued is the topic a queued verification message is
// published under.
const RoutingKeyOTPIssued = "account.otp_issued"

const otpSubject = "Email verification code"

// Message is a single outgoing mail. Code is set for verification mails so
// that a failed delivery can still surface it in the operator log.
type Message struct {
	To      string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Code    string `json:"code,omitempty"`
}

func OTPMessage(email, code string) Message {
	return Message{
		To:      email,
		Subject: otpSubject,
		Body:    fmt.Sprintf("Your verification code for the community portal: %s", code),
		Code:    code,
	}
}

// Sender delivers a message. Failures wrap common.ErrDelivery.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
