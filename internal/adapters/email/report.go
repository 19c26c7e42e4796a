package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/message"
)

// markdown renders observations. It runs without WithUnsafe, so raw HTML in
// the input is dropped from the output.
var markdown = goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()))

// ReportSummary is what the supervisor is told about a saved meeting.
type ReportSummary struct {
	CelulaID    int64
	Date        string // display form, dd/mm/yyyy
	LongDate    string // e.g. "15 de outubro de 2026"
	Local       string
	Tema        string
	Preacher    string
	Attendees   []string
	Observation string // Markdown
	Updated     bool
}

var reportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html><body style="font-family: sans-serif">
<h2>{{.Title}}</h2>
<p><strong>{{.LongDate}}</strong> &middot; {{.Local}}</p>
<p>{{.Tema}}{{if .Preacher}} &middot; {{.Preacher}}{{end}}</p>
<p>{{.AttendanceLine}}</p>
{{if .Attendees}}<ul>{{range .Attendees}}<li>{{.}}</li>{{end}}</ul>{{end}}
<div>{{.ObservationHTML}}</div>
</body></html>`))

// RenderMarkdown converts Markdown to HTML, falling back to escaped text.
func RenderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// ComposeReport builds the supervisor mail for s in the printer's language.
// PRE: to is non-empty
func ComposeReport(p *message.Printer, to string, s ReportSummary) (SendRequest, error) {
	subject := p.Sprintf("report.mail.subject", s.Date)
	attendance := p.Sprintf("report.attendance", len(s.Attendees))

	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, struct {
		ReportSummary
		Title           string
		AttendanceLine  string
		ObservationHTML template.HTML
	}{
		ReportSummary:   s,
		Title:           subject,
		AttendanceLine:  attendance,
		ObservationHTML: RenderMarkdown(s.Observation),
	})
	if err != nil {
		return SendRequest{}, fmt.Errorf("render report mail: %w", err)
	}

	text := strings.Join([]string{
		subject,
		s.LongDate + " · " + s.Local,
		s.Tema,
		attendance + ": " + strings.Join(s.Attendees, ", "),
		"",
		s.Observation,
	}, "\n")

	return SendRequest{To: []string{to}, Subject: subject, HTML: buf.String(), Text: text}, nil
}

// ReportMailer sends report summaries to a fixed supervisor address.
type ReportMailer struct {
	Sender  Sender
	To      string
	Printer *message.Printer
}

// Send composes and delivers the summary.
func (m *ReportMailer) Send(ctx context.Context, s ReportSummary) error {
	req, err := ComposeReport(m.Printer, m.To, s)
	if err != nil {
		return err
	}
	if _, err := m.Sender.Send(ctx, req); err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	return nil
}
