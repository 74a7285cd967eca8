package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/config"
)

type writerStub struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *writerStub) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *writerStub) Close() error {
	w.closed = true
	return nil
}

func TestSMTPNotifier_BuildMessage(t *testing.T) {
	n, err := NewSMTPNotifier(SMTPOptions{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "bot@example.com",
		ValidFor: 3 * time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)

	msg, err := n.buildMessage("ann@x.com", "http://localhost:8080/mail/validate/abc.def")
	require.NoError(t, err)

	s := string(msg)
	require.Contains(t, s, "From: bot@example.com\r\n")
	require.Contains(t, s, "To: ann@x.com\r\n")
	require.Contains(t, s, "Subject: Email verification\r\n")
	require.Contains(t, s, `href="http://localhost:8080/mail/validate/abc.def"`)
	require.Contains(t, s, "3m0s")
}

func TestSMTPNotifier_EscapesLink(t *testing.T) {
	n, _ := NewSMTPNotifier(SMTPOptions{Host: "h", Port: 25, From: "f@x.com"}, zap.NewNop())

	msg, err := n.buildMessage("ann@x.com", `http://x/"><script>`)
	require.NoError(t, err)
	require.NotContains(t, string(msg), "<script>")
}

func TestSMTPNotifier_RequiresHost(t *testing.T) {
	_, err := NewSMTPNotifier(SMTPOptions{}, zap.NewNop())
	require.Error(t, err)
}

func TestKafkaNotifier_PublishesEvent(t *testing.T) {
	w := &writerStub{}
	at := time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)
	n := &KafkaNotifier{writer: w, log: zap.NewNop(), now: func() time.Time { return at }}

	require.NoError(t, n.SendVerificationEmail(context.Background(), "ann@x.com", "http://l/mail/validate/t"))
	require.Len(t, w.msgs, 1)
	require.Equal(t, "ann@x.com", string(w.msgs[0].Key))

	var ev VerificationRequested
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	require.Equal(t, "ann@x.com", ev.Email)
	require.Equal(t, "http://l/mail/validate/t", ev.Link)
	require.True(t, ev.RequestedAt.Equal(at))

	require.NoError(t, n.Close())
	require.True(t, w.closed)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	w := &writerStub{err: errors.New("leader not available")}
	n := &KafkaNotifier{writer: w, log: zap.NewNop(), now: time.Now}

	err := n.SendVerificationEmail(context.Background(), "ann@x.com", "l")
	require.Error(t, err)
}

func TestLogNotifier_HidesAddress(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.SendVerificationEmail(context.Background(), "ann@x.com", "http://l/x"))
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	fields := entry.ContextMap()
	require.Equal(t, "http://l/x", fields["link"])
	for _, v := range fields {
		s, _ := v.(string)
		require.False(t, strings.Contains(s, "ann@x.com"))
	}
}

func TestNew_SelectsTransport(t *testing.T) {
	log := zap.NewNop()

	n, closeFn, err := New(&config.Config{MailTransport: config.MailLog}, log)
	require.NoError(t, err)
	require.IsType(t, &LogNotifier{}, n)
	require.NoError(t, closeFn())

	n, closeFn, err = New(&config.Config{MailTransport: config.MailKafka, KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "t"}, log)
	require.NoError(t, err)
	require.IsType(t, &KafkaNotifier{}, n)
	require.NoError(t, closeFn())

	n, _, err = New(&config.Config{MailTransport: config.MailSMTP, MailServer: "smtp.x", MailPort: 587}, log)
	require.NoError(t, err)
	require.IsType(t, &SMTPNotifier{}, n)

	_, _, err = New(&config.Config{MailTransport: "pigeon"}, log)
	require.Error(t, err)
}
