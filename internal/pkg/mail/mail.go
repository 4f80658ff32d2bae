package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// Config holds SMTP settings.
type Config struct {
	Enable  bool   `yaml:"enable"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	Pass    string `yaml:"pass"`
	From    string `yaml:"from"`
	ReplyTo string `yaml:"reply_to"`
	// ContactTo receives contact-form notifications.
	ContactTo string `yaml:"contact_to"`
}

// Message is a single email to send.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender sends emails via SMTP. When the mailer is disabled every send is a
// silent no-op so state changes never depend on delivery.
type Sender struct {
	cfg Config
}

func New(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// ContactRecipient returns the configured contact-form inbox.
func (s *Sender) ContactRecipient() string { return s.cfg.ContactTo }

// Send dispatches an email over SMTP.
func (s *Sender) Send(msg Message) error {
	if !s.cfg.Enable {
		return nil
	}
	host := s.cfg.Host
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString(fmt.Sprintf("From: %s\r\n", from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	if s.cfg.ReplyTo != "" {
		body.WriteString(fmt.Sprintf("Reply-To: %s\r\n", s.cfg.ReplyTo))
	}
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, host)
	return smtp.SendMail(addr, auth, from, msg.To, body.Bytes())
}

func render(tpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// VerifyData feeds the subscription-verification template.
type VerifyData struct {
	VerifyURL string
}

// SendSubscribeVerify mails a double-opt-in confirmation link.
func (s *Sender) SendSubscribeVerify(to string, data VerifyData) error {
	html, err := render(verifyTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{To: []string{to}, Subject: "Verify your newsletter subscription", HTML: html})
}

// WelcomeData feeds the welcome template.
type WelcomeData struct {
	Categories     []string
	PreferencesURL string
}

// SendWelcome mails the post-verification welcome message.
func (s *Sender) SendWelcome(to string, data WelcomeData) error {
	html, err := render(welcomeTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{To: []string{to}, Subject: "Welcome to the newsletter", HTML: html})
}

// PreferencesData feeds the preferences-updated template.
type PreferencesData struct {
	Categories     []string
	PreferencesURL string
}

// SendPreferencesUpdated confirms a topic-preference change.
func (s *Sender) SendPreferencesUpdated(to string, data PreferencesData) error {
	html, err := render(preferencesTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{To: []string{to}, Subject: "Your newsletter preferences were updated", HTML: html})
}

// ContactData feeds the contact-form templates.
type ContactData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// SendContactNotification forwards a contact-form submission to the owner.
func (s *Sender) SendContactNotification(data ContactData) error {
	to := strings.TrimSpace(s.cfg.ContactTo)
	if to == "" {
		return nil
	}
	subject := data.Subject
	if subject == "" {
		subject = "New Message"
	}
	html, err := render(contactNotifyTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{To: []string{to}, Subject: "Portfolio Contact: " + subject, HTML: html})
}

// SendContactAutoReply acknowledges a contact-form submission to the sender.
func (s *Sender) SendContactAutoReply(data ContactData) error {
	html, err := render(contactReplyTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{To: []string{data.Email}, Subject: "Thank you for contacting me", HTML: html})
}

// ResetData feeds the password-reset template.
type ResetData struct {
	ResetURL string
}

// SendPasswordReset mails a single-use password-reset link.
func (s *Sender) SendPasswordReset(to string, data ResetData) error {
	html, err := render(passwordResetTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{To: []string{to}, Subject: "Reset your password", HTML: html})
}
