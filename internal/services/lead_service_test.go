package services

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"core_site_echo/internal/demo"
	"core_site_echo/internal/models"
)

type fakeNotifier struct {
	leads []models.DemoRequest
	err   error
}

func (f *fakeNotifier) NotifyLead(ctx context.Context, lead models.DemoRequest) error {
	f.leads = append(f.leads, lead)
	return f.err
}

func TestLeadServiceSubmitWithoutDatabase(t *testing.T) {
	n := &fakeNotifier{}
	s := NewLeadService(nil, nil, n, 5, time.Hour)

	err := s.SubmitFrom(context.Background(), "/product", demo.Fields{
		demo.FieldName:    "Ada Lovelace",
		demo.FieldEmail:   "Ada@Example.com",
		demo.FieldCompany: "Analytical Engines",
	})
	if err != nil {
		t.Fatalf("SubmitFrom() error = %v", err)
	}
	if len(n.leads) != 1 {
		t.Fatalf("notifier got %d leads; want 1", len(n.leads))
	}
	lead := n.leads[0]
	if lead.Email != "ada@example.com" || lead.SourcePath != "/product" || lead.UUID == "" || lead.Status != models.LeadStatusNew {
		t.Errorf("lead = %+v", lead)
	}
}

func TestLeadServiceSubmitValidation(t *testing.T) {
	n := &fakeNotifier{}
	s := NewLeadService(nil, nil, n, 5, time.Hour)

	err := s.Submit(context.Background(), demo.Fields{demo.FieldName: "Ada"})
	var verr *demo.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit() error = %v; want ValidationError", err)
	}
	if len(n.leads) != 0 {
		t.Error("notifier called for invalid request")
	}
}

func TestLeadServiceSubmitFailures(t *testing.T) {
	valid := demo.Fields{
		demo.FieldName:    "Ada",
		demo.FieldEmail:   "ada@example.com",
		demo.FieldCompany: "AE",
	}

	if err := NewLeadService(nil, nil, nil, 0, 0).Submit(context.Background(), valid); err == nil {
		t.Error("expected error with no storage and no notifier")
	}

	boom := errors.New("smtp down")
	err := NewLeadService(nil, nil, &fakeNotifier{err: boom}, 0, 0).Submit(context.Background(), valid)
	if !errors.Is(err, boom) {
		t.Errorf("Submit() error = %v; want wrapped %v", err, boom)
	}
}

func TestLeadServiceWithoutDatabaseReadsAreEmpty(t *testing.T) {
	s := NewLeadService(nil, nil, nil, 0, 0)
	stats, err := s.Stats(context.Background())
	if err != nil || stats.Total != 0 {
		t.Errorf("Stats() = %+v, %v", stats, err)
	}
	leads, err := s.List(context.Background(), "", 10)
	if err != nil || len(leads) != 0 {
		t.Errorf("List() = %v, %v", leads, err)
	}
	if err := s.UpdateStatus(context.Background(), 1, "bogus"); err == nil {
		t.Error("UpdateStatus() accepted an unknown status")
	}
}

type fakeEmail struct {
	configured bool
	err        error
	to         []string
	subject    string
	body       string
}

func (f *fakeEmail) Configured() bool { return f.configured }
func (f *fakeEmail) SendEmail(ctx context.Context, to []string, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

type fakeText struct {
	configured bool
	err        error
	chat, text string
}

func (f *fakeText) Configured() bool { return f.configured }
func (f *fakeText) SendText(ctx context.Context, chatID, text string) error {
	f.chat, f.text = chatID, text
	return f.err
}

func TestSalesNotifier(t *testing.T) {
	lead := models.DemoRequest{UUID: "ref-1", Name: "Ada", Email: "ada@example.com", Company: "AE", Message: "Show me"}
	ctx := context.Background()

	t.Run("both channels", func(t *testing.T) {
		email := &fakeEmail{configured: true}
		text := &fakeText{configured: true}
		n := NewSalesNotifier(email, text, "sales@example.com", "15550100")
		if err := n.NotifyLead(ctx, lead); err != nil {
			t.Fatalf("NotifyLead() error = %v", err)
		}
		if email.to[0] != "sales@example.com" || !strings.Contains(email.subject, "AE") || !strings.Contains(email.body, "Show me") {
			t.Errorf("email = %+v", email)
		}
		if text.chat != "15550100" || !strings.Contains(text.text, "ada@example.com") {
			t.Errorf("text = %+v", text)
		}
	})

	t.Run("one channel failing is tolerated", func(t *testing.T) {
		n := NewSalesNotifier(&fakeEmail{configured: true, err: errors.New("smtp")}, &fakeText{configured: true}, "s@example.com", "1")
		if err := n.NotifyLead(ctx, lead); err != nil {
			t.Errorf("NotifyLead() error = %v", err)
		}
	})

	t.Run("all channels failing", func(t *testing.T) {
		n := NewSalesNotifier(&fakeEmail{configured: true, err: errors.New("smtp")}, &fakeText{configured: true, err: errors.New("waha")}, "s@example.com", "1")
		if err := n.NotifyLead(ctx, lead); err == nil {
			t.Error("NotifyLead() error = nil")
		}
	})

	t.Run("nothing configured logs only", func(t *testing.T) {
		n := NewSalesNotifier(&fakeEmail{}, &fakeText{}, "s@example.com", "1")
		if err := n.NotifyLead(ctx, lead); err != nil {
			t.Errorf("NotifyLead() error = %v", err)
		}
	})
}

func TestEmailServiceSendEmail(t *testing.T) {
	var gotAddr string
	var gotMsg []byte
	s := &EmailService{
		host: "smtp.example.com", port: "587", user: "u", password: "p", from: "site@example.com",
		send: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotMsg = addr, msg
			return nil
		},
	}

	if err := s.SendEmail(context.Background(), []string{"sales@example.com"}, "Hi\r\nBcc: x", "line1\nline2"); err != nil {
		t.Fatalf("SendEmail() error = %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	msg := string(gotMsg)
	if strings.Contains(msg, "\r\nBcc:") {
		t.Errorf("header injection in subject: %q", msg)
	}
	if !strings.Contains(msg, "line1\r\nline2") {
		t.Errorf("body not CRLF encoded: %q", msg)
	}

	if err := (&EmailService{}).SendEmail(context.Background(), []string{"x@example.com"}, "s", "b"); err == nil {
		t.Error("expected error without credentials")
	}
}

func TestGetOrSetWithoutCache(t *testing.T) {
	calls := 0
	v, err := GetOrSet(nil, context.Background(), "k", time.Minute, func() (int, error) {
		calls++
		return 42, nil
	})
	if err != nil || v != 42 || calls != 1 {
		t.Errorf("GetOrSet() = %d, %v (calls %d)", v, err, calls)
	}
}
