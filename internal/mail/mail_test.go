package mail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Zachkp/portfolio/internal/db"
)

type fakeSender struct {
	to   string
	msg  []byte
	fail error
}

func (f *fakeSender) Send(_ context.Context, to string, msg []byte) error {
	if f.fail != nil {
		return f.fail
	}
	f.to, f.msg = to, msg
	return nil
}

func setupMailer(t *testing.T, sender Sender) *Mailer {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return New(database, sender, "site@example.com", "me@example.com", nil)
}

func TestSubmitDelivers(t *testing.T) {
	sender := &fakeSender{}
	m := setupMailer(t, sender)

	got, err := m.Submit(context.Background(), Message{Name: " Ada ", Email: "ada@example.com", Body: "hello"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.ID == "" || !got.Delivered || got.Name != "Ada" {
		t.Errorf("Submit returned %+v", got)
	}
	if sender.to != "me@example.com" {
		t.Errorf("sent to %q", sender.to)
	}
	body := string(sender.msg)
	for _, want := range []string{"Subject: Portfolio Contact: Ada", "Reply-To: ada@example.com", "hello"} {
		if !strings.Contains(body, want) {
			t.Errorf("message lacks %q:\n%s", want, body)
		}
	}

	recent, err := m.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != got.ID || !recent[0].Delivered {
		t.Errorf("Recent = %+v", recent)
	}
}

func TestSubmitKeepsUndelivered(t *testing.T) {
	m := setupMailer(t, &fakeSender{fail: ErrNotConfigured})

	_, err := m.Submit(context.Background(), Message{Name: "Ada", Email: "ada@example.com", Body: "hi"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Submit err = %v, want ErrNotConfigured", err)
	}
	n, err := m.Undelivered(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Undelivered = %d, want 1", n)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"no name", Message{Email: "a@b.co", Body: "x"}},
		{"bad email", Message{Name: "A", Email: "nope", Body: "x"}},
		{"no body", Message{Name: "A", Email: "a@b.co", Body: "   "}},
		{"header injection", Message{Name: "A\r\nBcc: x@y.z", Email: "a@b.co", Body: "x"}},
		{"long body", Message{Name: "A", Email: "a@b.co", Body: strings.Repeat("x", MaxMessageLen+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.msg.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSMTPRequiresCredentials(t *testing.T) {
	err := SMTP{Host: "localhost", Port: "25"}.Send(context.Background(), "x@y.z", nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
