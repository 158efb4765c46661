package notify

import (
	"context"

	"github.com/dmitrijs2005/eventportal/internal/logging"
)

// LogSender writes messages to the log instead of mailing them.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(l logging.Logger) *LogSender {
	return &LogSender{logger: l.With("module", "log_sender")}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info(ctx, "notification", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
