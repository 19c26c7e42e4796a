package resources

import (
	"context"

	"celula/internal/application/form"
	"celula/internal/application/listing"
	"celula/internal/application/schema"
	"celula/internal/application/selection"
	"celula/internal/domain/mask"
	"celula/internal/domain/report"

	"golang.org/x/text/message"
)

// Report field messages.
const (
	msgData       = "Data da reunião deve ser uma data válida"
	msgPresentes  = "Pelo menos um membro deve estar presente."
	msgLocal      = "Deve haver um local"
	msgTema       = "Deve haver um tema"
	msgObservacao = "Deve haver uma observação"
	msgPregador   = "Deve haver um pregador."
)

// ReportSchema validates the meeting report form.
var ReportSchema = schema.New(
	schema.Day("data").Required(msgData).Invalid(msgData),
	schema.IDs("presentes", schema.Transform(distinctIDs), schema.MinItems(1, msgPresentes)).
		Required(msgPresentes).
		Invalid(msgPresentes).
		From(func(r map[string]any) any { return idList(r["presentes"]) }),
	schema.Text("local", schema.MinLen(1, msgLocal)).Required(msgLocal),
	schema.Text("tema", schema.MinLen(1, msgTema)).Required(msgTema),
	schema.Text("observacao", schema.MinLen(1, msgObservacao)).Required(msgObservacao),
	schema.Int("pregador_id", schema.Min(1, msgPregador)).
		Required(msgPregador).
		Invalid(msgPregador).
		From(func(r map[string]any) any { return idOf(firstOf(r, "pregador_id", "pregador")) }),
)

// distinctIDs passes an attendee list through a selection set, so each
// member is sent once and in the order first picked.
func distinctIDs(v any) any {
	ids, _ := v.([]int64)
	return selection.NewSet(ids...).IDs()
}

// ReportForm configures the report create/edit form for cell celulaID.
func ReportForm(celulaID int64, p *message.Printer, afterSave func(context.Context, form.Saved)) form.Config {
	return form.Config{
		Resource:  report.Resource,
		Schema:    ReportSchema,
		Enrich:    map[string]any{"celula_id": celulaID},
		ListRoute: RouteReportList,
		AfterSave: afterSave,
		Describe: func(values map[string]any, edit, ok bool) form.Notice {
			return saveNotice(p, "report", displayDate(values["data"]), edit, ok)
		},
	}
}

// ReportList configures the report table.
func ReportList(p *message.Printer) listing.Config[report.Report] {
	return listing.Config[report.Report]{
		Resource:  report.Resource,
		ID:        func(r report.Report) int64 { return r.ID },
		Haystack:  report.Report.SearchFields,
		EditRoute: func(id int64) string { return EditRoute(RouteReportForm, id) },
		Describe: func(r report.Report, ok bool) form.Notice {
			return deleteNotice(p, "report", displayDate(r.Data), ok)
		},
	}
}

// displayDate renders a wire date as dd/mm/yyyy, or as given when unparseable.
func displayDate(v any) string {
	s, _ := v.(string)
	t, err := mask.ParseDate(s)
	if err != nil {
		return s
	}
	return mask.FormatBR(t)
}
