package email

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/gomail.v2"

	"github.com/Alijeyrad/moksha_web/config"
)

type Client struct {
	cfg Config
}

// NewFromConfig builds a client from the application's email section.
func NewFromConfig(cfg config.EmailConfig) (*Client, error) {
	return New(ConfigFrom(cfg))
}

func New(cfg Config) (*Client, error) {
	if cfg.Enabled && strings.TrimSpace(cfg.SMTPHost) == "" {
		return nil, invalid("smtp host is required when email is enabled")
	}
	return &Client{cfg: cfg}, nil
}

// Enabled reports whether Send will attempt delivery.
func (c *Client) Enabled() bool { return c.cfg.Enabled }

// Send delivers m over SMTP. It returns when the server accepts the message,
// the context ends, or the SMTP timeout passes, whichever comes first.
func (c *Client) Send(ctx context.Context, m Message) error {
	if !c.cfg.Enabled {
		return ErrDisabled
	}

	msg, err := buildMessage(c.cfg.From, m)
	if err != nil {
		return err
	}

	d := c.newDialer()

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(msg)
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.SMTPTimeout())
	defer cancel()

	select {
	case err := <-done:
		if err != nil {
			return &SendError{Host: c.cfg.SMTPHost, Err: err}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) newDialer() *gomail.Dialer {
	d := gomail.NewDialer(c.cfg.SMTPHost, c.cfg.SMTPPort, c.cfg.SMTPUsername, c.cfg.SMTPPassword)

	// Port 465 speaks implicit TLS; other ports upgrade with STARTTLS.
	d.SSL = c.cfg.SMTPUseTLS && c.cfg.SMTPPort == 465
	if c.cfg.SMTPUseTLS {
		d.TLSConfig = &tls.Config{ServerName: c.cfg.SMTPHost, MinVersion: tls.VersionTLS12}
	}
	d.LocalName = "moksha-web"

	return d
}

func buildMessage(from string, m Message) (*gomail.Message, error) {
	from = strings.TrimSpace(from)
	to := cleanAddrs(m.To)
	subject := strings.TrimSpace(m.Subject)
	switch {
	case from == "":
		return nil, invalid("from is required")
	case len(to) == 0:
		return nil, invalid("at least one recipient is required")
	case subject == "":
		return nil, invalid("subject is required")
	}

	headers := map[string][]string{"From": {from}, "To": to, "Subject": {subject}}
	if cc := cleanAddrs(m.CC); len(cc) > 0 {
		headers["Cc"] = cc
	}
	if rt := strings.TrimSpace(m.ReplyTo); rt != "" {
		headers["Reply-To"] = []string{rt}
	}
	for k, v := range m.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if _, reserved := headers[k]; k == "" || v == "" || reserved {
			continue
		}
		headers[k] = []string{v}
	}

	msg := gomail.NewMessage()
	msg.SetHeaders(headers)
	msg.SetDateHeader("Date", time.Now())

	text, html := strings.TrimSpace(m.TextBody) != "", strings.TrimSpace(m.HTMLBody) != ""
	switch {
	case text && html:
		msg.SetBody("text/plain", m.TextBody)
		msg.AddAlternative("text/html", m.HTMLBody)
	case html:
		msg.SetBody("text/html", m.HTMLBody)
	case text:
		msg.SetBody("text/plain", m.TextBody)
	default:
		return nil, invalid("either TextBody or HTMLBody is required")
	}
	return msg, nil
}

func cleanAddrs(in []string) []string {
	return lo.FilterMap(in, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
}
