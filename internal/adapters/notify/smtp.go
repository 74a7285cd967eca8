package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	lg "github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/log"
)

//go:embed templates/verification.html
var templatesFS embed.FS

var verificationTmpl = template.Must(template.ParseFS(templatesFS, "templates/verification.html"))

const (
	subject     = "Email verification"
	dialTimeout = 8 * time.Second
	sendTimeout = 15 * time.Second
)

type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ValidFor time.Duration
}

type SMTPNotifier struct {
	opts SMTPOptions
	log  *zap.Logger
}

func NewSMTPNotifier(opts SMTPOptions, log *zap.Logger) (*SMTPNotifier, error) {
	if opts.Host == "" || opts.Port == 0 {
		return nil, errors.New("smtp: host and port are required")
	}
	if opts.From == "" {
		opts.From = opts.Username
	}
	return &SMTPNotifier{opts: opts, log: log}, nil
}

func (s *SMTPNotifier) SendVerificationEmail(ctx context.Context, to, link string) error {
	msg, err := s.buildMessage(to, link)
	if err != nil {
		return err
	}

	if err := s.send(ctx, to, msg); err != nil {
		return err
	}
	s.log.Info("verification mail sent", lg.Email(to))
	return nil
}

func (s *SMTPNotifier) buildMessage(to, link string) ([]byte, error) {
	var body bytes.Buffer
	err := verificationTmpl.Execute(&body, map[string]any{
		"Link":     link,
		"ValidFor": s.opts.ValidFor.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	msg := strings.Join([]string{
		"From: " + s.opts.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")
	return []byte(msg), nil
}

func (s *SMTPNotifier) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))

	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	deadline := time.Now().Add(sendTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, s.opts.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.opts.Host}); err != nil {
			return err
		}
	}
	if s.opts.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.opts.Username, s.opts.Password, s.opts.Host)); err != nil {
			return err
		}
	}

	if err := c.Mail(s.opts.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
