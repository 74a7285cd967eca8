package notify

import (
	"fmt"

	domainNotify "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/notify"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/config"
	"go.uber.org/zap"
)

// New picks the notifier named by MAIL_TRANSPORT. The returned close func
// releases transport resources and is safe to call once at shutdown.
func New(cfg *config.Config, log *zap.Logger) (domainNotify.Notifier, func() error, error) {
	switch cfg.MailTransport {
	case config.MailSMTP:
		n, err := NewSMTPNotifier(SMTPOptions{
			Host:     cfg.MailServer,
			Port:     cfg.MailPort,
			Username: cfg.MailUsername,
			Password: cfg.MailPassword,
			From:     cfg.MailDefaultSender,
			ValidFor: cfg.VerificationTokenTTL,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return n, noClose, nil
	case config.MailKafka:
		n := NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		return n, n.Close, nil
	case config.MailLog, "":
		return NewLogNotifier(log), noClose, nil
	default:
		return nil, nil, fmt.Errorf("unknown mail transport %q", cfg.MailTransport)
	}
}

func noClose() error { return nil }
