// Package mail delivers contact-form messages and keeps a copy of each
// in the database so nothing is lost when SMTP is unavailable.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/db"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Limits on submitted fields.
const (
	MaxNameLen    = 200
	MaxMessageLen = 5000
)

// Message is one contact-form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"message"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate trims the fields and checks them.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)
	switch {
	case m.Name == "":
		return fmt.Errorf("name is required")
	case len(m.Name) > MaxNameLen:
		return fmt.Errorf("name longer than %d bytes", MaxNameLen)
	case m.Body == "":
		return fmt.Errorf("message is required")
	case len(m.Body) > MaxMessageLen:
		return fmt.Errorf("message longer than %d bytes", MaxMessageLen)
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("invalid email %q: %w", m.Email, err)
	}
	if strings.ContainsAny(m.Name+m.Email, "\r\n") {
		return fmt.Errorf("header fields must be single-line")
	}
	return nil
}

// Sender hands a composed message to a transport.
type Sender interface {
	Send(ctx context.Context, to string, msg []byte) error
}

// SMTP sends through an authenticated relay.
type SMTP struct {
	Host, Port, User, Pass string
}

// Send implements Sender.
func (s SMTP) Send(_ context.Context, to string, msg []byte) error {
	if s.User == "" || s.Pass == "" {
		return ErrNotConfigured
	}
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := smtp.SendMail(s.Host+":"+s.Port, auth, s.User, []string{to}, msg); err != nil {
		return fmt.Errorf("sending mail via %s: %w", s.Host, err)
	}
	return nil
}

// Mailer stores and forwards contact messages.
type Mailer struct {
	db     *db.DB
	sender Sender
	from   string
	to     string
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Mailer. from is the envelope sender and to the inbox
// that receives submissions; to defaults to from.
func New(database *db.DB, sender Sender, from, to string, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if to == "" {
		to = from
	}
	return &Mailer{db: database, sender: sender, from: from, to: to, logger: logger, now: time.Now}
}

// Submit validates m, stores it, and tries to deliver it. The stored
// copy survives a delivery failure; the error is still returned so the
// form can tell the visitor.
func (ml *Mailer) Submit(ctx context.Context, m Message) (Message, error) {
	if err := m.Validate(); err != nil {
		return m, err
	}
	m.ID = uuid.NewString()
	m.CreatedAt = ml.now().UTC()

	if _, err := ml.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Body, m.CreatedAt.Format(time.DateTime),
	); err != nil {
		return m, fmt.Errorf("storing message: %w", err)
	}

	if err := ml.sender.Send(ctx, ml.to, ml.compose(m)); err != nil {
		ml.logger.Warn("contact message not delivered", "id", m.ID, "error", err)
		return m, err
	}

	if _, err := ml.db.ExecContext(ctx, `UPDATE contact_messages SET delivered = 1 WHERE id = ?`, m.ID); err != nil {
		ml.logger.Warn("marking message delivered", "id", m.ID, "error", err)
	}
	m.Delivered = true
	ml.logger.Info("contact message sent", "id", m.ID)
	return m, nil
}

func (ml *Mailer) compose(m Message) []byte {
	var b strings.Builder
	b.WriteString("To: " + ml.to + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + m.Name + "\r\n")
	b.WriteString("From: " + ml.from + "\r\n")
	b.WriteString("Reply-To: " + m.Email + "\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "New contact form submission from your portfolio:\r\n\r\nName: %s\r\nEmail: %s\r\nMessage:\r\n%s\r\n\r\n---\r\nSent from your portfolio contact form\r\n",
		m.Name, m.Email, m.Body)
	return []byte(b.String())
}

// Recent returns the newest stored messages first.
func (ml *Mailer) Recent(ctx context.Context, limit int) ([]Message, error) {
	rows, err := ml.db.QueryContext(ctx, `
		SELECT id, name, email, message, delivered, CAST(created_at AS TEXT)
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var created string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.Delivered, &created); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		if t, err := time.Parse(time.DateTime, created); err == nil {
			m.CreatedAt = t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Undelivered counts stored messages that never reached the inbox.
func (ml *Mailer) Undelivered(ctx context.Context) (int64, error) {
	var n int64
	if err := ml.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages WHERE delivered = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting undelivered: %w", err)
	}
	return n, nil
}
