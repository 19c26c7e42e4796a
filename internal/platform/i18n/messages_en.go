package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.AmericanEnglish

	message.SetString(lang, "app.title", "Cell group")
	message.SetString(lang, "nav.members", "Members")
	message.SetString(lang, "nav.new_member", "New member")
	message.SetString(lang, "nav.reports", "Reports")
	message.SetString(lang, "nav.new_report", "New report")
	message.SetString(lang, "nav.login", "Sign in")
	message.SetString(lang, "nav.logout", "Sign out")

	message.SetString(lang, "member.title.list", "Cell members")
	message.SetString(lang, "member.title.create", "New member")
	message.SetString(lang, "member.title.edit", "Edit member")
	message.SetString(lang, "member.field.nome", "Name")
	message.SetString(lang, "member.field.endereco", "Address")
	message.SetString(lang, "member.field.telefone", "Phone")
	message.SetString(lang, "member.field.data_conversao", "Conversion semester")
	message.SetString(lang, "member.field.data_inicio_celula", "Joined the cell")
	message.SetString(lang, "member.field.aniversario", "Birthday")
	message.SetString(lang, "member.field.cargo_id", "Role")
	message.SetString(lang, "member.placeholder.role", "Pick a role")
	message.SetString(lang, "member.hint.semester", "Format YYYY.S, for example 2024.1")
	message.SetString(lang, "member.empty", "No members found.")
	message.SetString(lang, "member.load_failed", "Could not load members. Please try again.")
	message.SetString(lang, "member.saved.create", "Member %s created")
	message.SetString(lang, "member.saved.update", "Member %s updated")
	message.SetString(lang, "member.failed.create", "Member %s was not created")
	message.SetString(lang, "member.failed.update", "Member %s was not updated")
	message.SetString(lang, "member.deleted", "Member %s deleted")
	message.SetString(lang, "member.delete_failed", "Member %s was not deleted")
	message.SetString(lang, "member.confirm_delete", "Delete %s? This cannot be undone.")

	message.SetString(lang, "report.title.list", "Cell reports")
	message.SetString(lang, "report.title.create", "New report")
	message.SetString(lang, "report.title.edit", "Edit report")
	message.SetString(lang, "report.field.data", "Meeting date")
	message.SetString(lang, "report.field.local", "Location")
	message.SetString(lang, "report.field.tema", "Theme")
	message.SetString(lang, "report.field.observacao", "Notes")
	message.SetString(lang, "report.field.pregador_id", "Preacher")
	message.SetString(lang, "report.field.presentes", "Attendees")
	message.SetString(lang, "report.placeholder.members", "Pick the members")
	message.SetString(lang, "report.placeholder.preacher", "Pick the preacher")
	message.SetString(lang, "report.attendance", "%d present")
	message.SetString(lang, "report.empty", "No reports found.")
	message.SetString(lang, "report.load_failed", "Could not load reports. Please try again.")
	message.SetString(lang, "report.saved.create", "Report for %s created")
	message.SetString(lang, "report.saved.update", "Report for %s updated")
	message.SetString(lang, "report.failed.create", "Report for %s was not created")
	message.SetString(lang, "report.failed.update", "Report for %s was not updated")
	message.SetString(lang, "report.deleted", "Report for %s deleted")
	message.SetString(lang, "report.delete_failed", "Report for %s was not deleted")
	message.SetString(lang, "report.mail.subject", "Cell report – %s")
	message.SetString(lang, "report.confirm_delete", "Delete the report of %s? This cannot be undone.")
	message.SetString(lang, "report.selected", "Selected")

	message.SetString(lang, "notice.save_ok", "Saved")
	message.SetString(lang, "notice.save_failed", "Save failed")
	message.SetString(lang, "notice.delete_ok", "Deleted")
	message.SetString(lang, "notice.delete_failed", "Delete failed")
	message.SetString(lang, "notice.login_failed", "Invalid email or password.")
	message.SetString(lang, "notice.session_expired", "Your session expired. Please sign in again.")
	message.SetString(lang, "notice.form_expired", "The form expired. Please fill it in again.")
	message.SetString(lang, "notice.load_failed", "The record could not be loaded. Try again.")
	message.SetString(lang, "login.title", "Sign in to the cell")

	message.SetString(lang, "action.save", "Save")
	message.SetString(lang, "action.cancel", "Cancel")
	message.SetString(lang, "action.edit", "Edit")
	message.SetString(lang, "action.delete", "Delete")
	message.SetString(lang, "action.confirm", "Confirm")
	message.SetString(lang, "action.search", "Search")
	message.SetString(lang, "action.login", "Sign in")
	message.SetString(lang, "login.email", "Email")
	message.SetString(lang, "login.password", "Password")
	message.SetString(lang, "page.prev", "Previous")
	message.SetString(lang, "page.next", "Next")
	message.SetString(lang, "page.rows", "%d–%d of %d")
	message.SetString(lang, "error.internal", "Something went wrong. Please try again.")
	message.SetString(lang, "error.not_found", "Page not found.")
}
