package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	message.SetString(lang, "app.title", "Célula")
	message.SetString(lang, "nav.members", "Membros")
	message.SetString(lang, "nav.new_member", "Cadastrar membro")
	message.SetString(lang, "nav.reports", "Relatórios")
	message.SetString(lang, "nav.new_report", "Cadastrar relatório")
	message.SetString(lang, "nav.login", "Entrar")
	message.SetString(lang, "nav.logout", "Sair")

	message.SetString(lang, "member.title.list", "Membros da célula")
	message.SetString(lang, "member.title.create", "Cadastrar membro")
	message.SetString(lang, "member.title.edit", "Editar membro")
	message.SetString(lang, "member.field.nome", "Nome")
	message.SetString(lang, "member.field.endereco", "Endereço")
	message.SetString(lang, "member.field.telefone", "Telefone")
	message.SetString(lang, "member.field.data_conversao", "Data de conversão")
	message.SetString(lang, "member.field.data_inicio_celula", "Início na célula")
	message.SetString(lang, "member.field.aniversario", "Aniversário")
	message.SetString(lang, "member.field.cargo_id", "Cargo")
	message.SetString(lang, "member.placeholder.role", "Selecione um cargo")
	message.SetString(lang, "member.hint.semester", "Formato AAAA.S, por exemplo 2024.1")
	message.SetString(lang, "member.empty", "Nenhum membro encontrado.")
	message.SetString(lang, "member.load_failed", "Não foi possível carregar os membros. Tente novamente.")
	message.SetString(lang, "member.saved.create", "Membro %s cadastrado com sucesso")
	message.SetString(lang, "member.saved.update", "Membro %s atualizado com sucesso")
	message.SetString(lang, "member.failed.create", "Membro %s não foi cadastrado")
	message.SetString(lang, "member.failed.update", "Membro %s não foi atualizado")
	message.SetString(lang, "member.deleted", "Membro %s excluído com sucesso")
	message.SetString(lang, "member.delete_failed", "Membro %s não foi excluído")
	message.SetString(lang, "member.confirm_delete", "Tem certeza que deseja excluir %s? Esta ação não pode ser desfeita.")

	message.SetString(lang, "report.title.list", "Relatórios da célula")
	message.SetString(lang, "report.title.create", "Cadastrar relatório")
	message.SetString(lang, "report.title.edit", "Editar relatório")
	message.SetString(lang, "report.field.data", "Data da reunião")
	message.SetString(lang, "report.field.local", "Local")
	message.SetString(lang, "report.field.tema", "Tema")
	message.SetString(lang, "report.field.observacao", "Observação")
	message.SetString(lang, "report.field.pregador_id", "Pregador")
	message.SetString(lang, "report.field.presentes", "Presentes")
	message.SetString(lang, "report.placeholder.members", "Selecione os membros")
	message.SetString(lang, "report.placeholder.preacher", "Selecione o pregador")
	message.SetString(lang, "report.attendance", "%d presente(s)")
	message.SetString(lang, "report.empty", "Nenhum relatório encontrado.")
	message.SetString(lang, "report.load_failed", "Não foi possível carregar os relatórios. Tente novamente.")
	message.SetString(lang, "report.saved.create", "Relatório do dia %s cadastrado com sucesso")
	message.SetString(lang, "report.saved.update", "Relatório do dia %s atualizado com sucesso")
	message.SetString(lang, "report.failed.create", "Relatório do dia %s não foi cadastrado")
	message.SetString(lang, "report.failed.update", "Relatório do dia %s não foi atualizado")
	message.SetString(lang, "report.deleted", "Relatório do dia %s excluído com sucesso")
	message.SetString(lang, "report.delete_failed", "Relatório do dia %s não foi excluído")
	message.SetString(lang, "report.mail.subject", "Relatório da célula – %s")
	message.SetString(lang, "report.confirm_delete", "Tem certeza que deseja excluir o relatório do dia %s? Esta ação não pode ser desfeita.")
	message.SetString(lang, "report.selected", "Selecionados")

	message.SetString(lang, "notice.save_ok", "Sucesso ao Salvar")
	message.SetString(lang, "notice.save_failed", "Erro ao Salvar")
	message.SetString(lang, "notice.delete_ok", "Sucesso ao Excluir")
	message.SetString(lang, "notice.delete_failed", "Erro ao Excluir")
	message.SetString(lang, "notice.login_failed", "E-mail ou senha inválidos.")
	message.SetString(lang, "notice.session_expired", "Sua sessão expirou. Entre novamente.")
	message.SetString(lang, "notice.form_expired", "O formulário expirou. Preencha novamente.")
	message.SetString(lang, "notice.load_failed", "Não foi possível carregar o registro. Tente novamente.")
	message.SetString(lang, "login.title", "Entrar na célula")

	message.SetString(lang, "action.save", "Salvar")
	message.SetString(lang, "action.cancel", "Cancelar")
	message.SetString(lang, "action.edit", "Editar")
	message.SetString(lang, "action.delete", "Excluir")
	message.SetString(lang, "action.confirm", "Confirmar")
	message.SetString(lang, "action.search", "Pesquisar")
	message.SetString(lang, "action.login", "Entrar")
	message.SetString(lang, "login.email", "E-mail")
	message.SetString(lang, "login.password", "Senha")
	message.SetString(lang, "page.prev", "Anterior")
	message.SetString(lang, "page.next", "Próxima")
	message.SetString(lang, "page.rows", "%d–%d de %d")
	message.SetString(lang, "error.internal", "Algo deu errado. Tente novamente.")
	message.SetString(lang, "error.not_found", "Página não encontrada.")
}
