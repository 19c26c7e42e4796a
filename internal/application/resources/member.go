package resources

import (
	"context"

	"celula/internal/application/form"
	"celula/internal/application/listing"
	"celula/internal/application/schema"
	"celula/internal/domain/mask"
	"celula/internal/domain/member"

	"golang.org/x/text/message"
)

// Member field messages.
const (
	msgNome         = "Nome deve ter pelo menos 2 caracteres."
	msgEndereco     = "Endereço deve ter pelo menos 5 caracteres."
	msgTelefone     = "Telefone deve estar no formato (XX)XXXXX-XXXX ou (XX)XXXX-XXXX."
	msgConversaoReq = "Data de conversão é obrigatória"
	msgConversao    = "Data de conversão deve estar no formato AAAA.S"
	msgInicioReq    = "Data de início da célula é obrigatória"
	msgInicio       = "Data de início da célula deve ser uma data válida"
	msgAniversario  = "Aniversário deve ser uma data válida"
	msgCargo        = "Cargo deve ser selecionado."
	msgNomeTooLong  = "Nome deve ter no máximo 120 caracteres."
)

// MemberSchema validates the member form.
var MemberSchema = schema.New(
	schema.Text("nome",
		schema.MinLen(member.MinNameLength, msgNome),
		schema.MaxLen(member.MaxNameLength, msgNomeTooLong),
	),
	schema.Text("endereco", schema.MinLen(member.MinAddressLength, msgEndereco)),
	schema.Text("telefone",
		schema.Transform(func(v any) any { return mask.FormatPhone(v.(string)) }),
		schema.Refine(func(v any) bool { return mask.IsPhone(v.(string)) }, msgTelefone),
	),
	schema.Text("data_conversao",
		schema.Refine(func(v any) bool { return mask.IsSemester(v.(string)) }, msgConversao),
	).Required(msgConversaoReq),
	schema.Day("data_inicio_celula").Required(msgInicioReq).Invalid(msgInicio),
	schema.Day("aniversario").Opt().Invalid(msgAniversario),
	schema.Int("cargo_id", schema.Min(1, msgCargo)).
		Required(msgCargo).
		Invalid(msgCargo).
		From(func(r map[string]any) any {
			if v := firstOf(r, "cargo_id"); v != nil {
				return v
			}
			return firstID(r["cargos"])
		}),
)

// MemberForm configures the member create/edit form for cell celulaID.
func MemberForm(celulaID int64, p *message.Printer, afterSave func(context.Context, form.Saved)) form.Config {
	return form.Config{
		Resource:  member.Resource,
		Schema:    MemberSchema,
		Enrich:    map[string]any{"celula_id": celulaID},
		ListRoute: RouteMemberList,
		AfterSave: afterSave,
		Describe: func(values map[string]any, edit, ok bool) form.Notice {
			nome, _ := values["nome"].(string)
			return saveNotice(p, "member", nome, edit, ok)
		},
	}
}

// MemberList configures the member table.
func MemberList(p *message.Printer) listing.Config[member.Member] {
	return listing.Config[member.Member]{
		Resource:  member.Resource,
		ID:        func(m member.Member) int64 { return m.ID },
		Haystack:  member.Member.SearchFields,
		EditRoute: func(id int64) string { return EditRoute(RouteMemberForm, id) },
		Describe: func(m member.Member, ok bool) form.Notice {
			return deleteNotice(p, "member", m.Nome, ok)
		},
	}
}

func saveNotice(p *message.Printer, kind, subject string, edit, ok bool) form.Notice {
	mode := "create"
	if edit {
		mode = "update"
	}
	if ok {
		return form.Notice{
			Kind:        form.NoticeSuccess,
			Title:       p.Sprintf("notice.save_ok"),
			Description: p.Sprintf(kind+".saved."+mode, subject),
		}
	}
	return form.Notice{
		Kind:        form.NoticeError,
		Title:       p.Sprintf("notice.save_failed"),
		Description: p.Sprintf(kind+".failed."+mode, subject),
	}
}

func deleteNotice(p *message.Printer, kind, subject string, ok bool) form.Notice {
	if ok {
		return form.Notice{
			Kind:        form.NoticeSuccess,
			Title:       p.Sprintf("notice.delete_ok"),
			Description: p.Sprintf(kind+".deleted", subject),
		}
	}
	return form.Notice{
		Kind:        form.NoticeError,
		Title:       p.Sprintf("notice.delete_failed"),
		Description: p.Sprintf(kind+".delete_failed", subject),
	}
}
