// Package mail implements the outbound email dispatcher over SMTP with
// STARTTLS.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const smtpTimeout = 30 * time.Second

// SMTPDispatcher sends mail through a single SMTP relay. It implements
// ports.EmailDispatcher.
type SMTPDispatcher struct {
	host     string
	port     int
	username string
	password string
	from     string
	log      zerolog.Logger
}

func NewSMTPDispatcher(host string, port int, username, password, from string, log zerolog.Logger) *SMTPDispatcher {
	return &SMTPDispatcher{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		log:      log,
	}
}

// Send delivers one message. Any failure before the server accepts the body
// is returned to the caller so dependent work can be rolled back.
func (d *SMTPDispatcher) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", d.host, d.port)

	ctx, cancel := context.WithTimeout(ctx, smtpTimeout)
	defer cancel()

	dialer := net.Dialer{Timeout: smtpTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, d.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("create smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: d.host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	} else if d.port != 25 && d.port != 1025 {
		return fmt.Errorf("starttls not offered on port %d", d.port)
	}

	if d.username != "" && d.password != "" {
		auth := smtp.PlainAuth("", d.username, d.password, d.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(d.from); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write([]byte(d.buildMessage(to, subject, body))); err != nil {
		wc.Close()
		return fmt.Errorf("write email body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close email body: %w", err)
	}

	if err := client.Quit(); err != nil {
		d.log.Warn().Err(err).Msg("smtp quit failed")
	}

	return nil
}

func (d *SMTPDispatcher) buildMessage(to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", d.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return b.String()
}
