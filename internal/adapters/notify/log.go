package notify

import (
	"context"

	"go.uber.org/zap"

	lg "github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/log"
)

// LogNotifier writes the verification link to the log instead of mailing it.
// Development only: the link carries a live token.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) SendVerificationEmail(_ context.Context, to, link string) error {
	l.log.Info("verification link", lg.Email(to), zap.String("link", link))
	return nil
}
