package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"

	"trailhub/internal/config"
)

type MailService interface {
	SendPasswordReset(ctx context.Context, to, token string) error
	SendNotification(ctx context.Context, to, subject, body string) error
}

// EmailData feeds both the HTML and the plain-text templates.
type EmailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const htmlTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:24px;background:#f1f5f9;font-family:Helvetica,Arial,sans-serif;color:#0f172a">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:12px;padding:32px">
    <h1 style="font-size:20px;margin:0 0 16px">{{.Title}}</h1>
    <p style="line-height:1.5">{{.Intro}}</p>
    {{if .ButtonURL}}<p><a href="{{.ButtonURL}}" style="display:inline-block;padding:12px 20px;background:#15803d;color:#ffffff;border-radius:8px;text-decoration:none">{{.ButtonTxt}}</a></p>{{end}}
    <p style="font-size:12px;color:#64748b">{{.AppName}} &copy; {{.Year}}</p>
  </div>
</body>
</html>`

const plainTemplate = `{{.Title}}

{{.Intro}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}
{{.AppName}} (c) {{.Year}}
`

type smtpMailService struct {
	cfg      config.Mail
	htmlTpl  *template.Template
	plainTpl *texttemplate.Template
	log      *zap.Logger
	now      func() time.Time
	// deliver hands a finished message to the SMTP server.
	deliver func(to string, msg []byte) error
}

// NewMailService returns an SMTP mailer. When mail is disabled messages are
// rendered and dropped with a log line.
func NewMailService(cfg *config.Config, log *zap.Logger) MailService {
	s := &smtpMailService{
		cfg:      cfg.Mail,
		htmlTpl:  template.Must(template.New("html").Parse(htmlTemplate)),
		plainTpl: texttemplate.Must(texttemplate.New("plain").Parse(plainTemplate)),
		log:      log.Named("mail"),
		now:      time.Now,
	}
	s.deliver = s.sendSMTP
	return s
}

func (s *smtpMailService) appName() string {
	if s.cfg.FromName != "" {
		return s.cfg.FromName
	}
	return "Trailhub"
}

func (s *smtpMailService) SendPasswordReset(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	return s.sendEmail(ctx, to, EmailData{
		Title:     "Reset your password",
		Intro:     "We received a request to reset your password. The link below is valid for 15 minutes. If you did not request this, you can ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset Password",
	})
}

func (s *smtpMailService) SendNotification(ctx context.Context, to, subject, body string) error {
	return s.sendEmail(ctx, to, EmailData{Title: subject, Intro: body})
}

func (s *smtpMailService) sendEmail(ctx context.Context, to string, data EmailData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data.AppName = s.appName()
	data.Year = s.now().Year()

	msg, err := s.buildMessage(to, data)
	if err != nil {
		return err
	}
	if !s.cfg.Enabled {
		s.log.Info("mail disabled, message dropped", zap.String("to", to), zap.String("subject", data.Title))
		return nil
	}
	if err := s.deliver(to, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	s.log.Debug("mail sent", zap.String("to", to), zap.String("subject", data.Title))
	return nil
}

func (s *smtpMailService) buildMessage(to string, data EmailData) ([]byte, error) {
	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return nil, err
	}
	if err := s.plainTpl.Execute(&tb, data); err != nil {
		return nil, err
	}

	now := s.now()
	boundary := fmt.Sprintf("alt_%d", now.UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.fromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", data.Title))
	write("Date: %s\r\n", now.Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n", tb.String())

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n", hb.String())

	write("--%s--\r\n", boundary)
	return msg.Bytes(), nil
}

func (s *smtpMailService) fromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.BEncoding.Encode("utf-8", name), s.cfg.From)
}

func (s *smtpMailService) dial(addr string) (net.Conn, error) {
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	if s.cfg.UseSSL {
		return tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	}
	return dialer.Dial("tcp", addr)
}

func (s *smtpMailService) sendSMTP(to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	conn, err := s.dial(addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server %s does not support STARTTLS", s.cfg.Host)
		}
	}

	if s.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err := c.Mail(s.cfg.From); err != nil {
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
		return err
	}
	return w.Close()
}
