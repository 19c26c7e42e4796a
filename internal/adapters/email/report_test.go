package email

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	message.SetString(language.BrazilianPortuguese, "report.mail.subject", "Relatório da célula – %s")
	message.SetString(language.BrazilianPortuguese, "report.attendance", "%d presente(s)")
}

func summary() ReportSummary {
	return ReportSummary{
		CelulaID:    1,
		Date:        "15/10/2026",
		LongDate:    "15 de outubro de 2026",
		Local:       "Casa da Ana",
		Tema:        "Fé & obras",
		Preacher:    "Bruno",
		Attendees:   []string{"Ana", "Bruno", "Carla"},
		Observation: "Reunião **abençoada**\n<script>alert(1)</script>",
	}
}

// TestComposeReport verifies subject, markdown rendering and escaping.
func TestComposeReport(t *testing.T) {
	p := message.NewPrinter(language.BrazilianPortuguese)
	req, err := ComposeReport(p, "pastor@celula.org", summary())
	if err != nil {
		t.Fatalf("ComposeReport: %v", err)
	}
	if req.Subject != "Relatório da célula – 15/10/2026" {
		t.Errorf("Subject = %q", req.Subject)
	}
	if len(req.To) != 1 || req.To[0] != "pastor@celula.org" {
		t.Errorf("To = %v", req.To)
	}
	for _, want := range []string{"<strong>abençoada</strong>", "3 presente(s)", "Fé &amp; obras", "<li>Carla</li>"} {
		if !strings.Contains(req.HTML, want) {
			t.Errorf("HTML missing %q:\n%s", want, req.HTML)
		}
	}
	if strings.Contains(req.HTML, "<script>") {
		t.Error("raw HTML from the observation reached the mail")
	}
	if !strings.Contains(req.Text, "Ana, Bruno, Carla") {
		t.Errorf("Text = %q", req.Text)
	}
}

// TestReportMailerSend verifies the composed mail reaches the sender.
func TestReportMailerSend(t *testing.T) {
	noop := NewNoopSender()
	m := &ReportMailer{Sender: noop, To: "pastor@celula.org", Printer: message.NewPrinter(language.BrazilianPortuguese)}
	if err := m.Send(context.Background(), summary()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	sent := noop.Sent()
	if len(sent) != 1 || !strings.HasPrefix(sent[0].Subject, "Relatório da célula") {
		t.Errorf("sent = %+v", sent)
	}
}

// TestResendRequiresRecipients verifies an empty recipient list is refused before any call.
func TestResendRequiresRecipients(t *testing.T) {
	s := NewResendSender("re_test", "Célula <relatorios@celula.local>")
	if _, err := s.Send(context.Background(), SendRequest{Subject: "x"}); err != ErrNoRecipients {
		t.Errorf("err = %v, want ErrNoRecipients", err)
	}
}
