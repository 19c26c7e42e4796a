package api

import (
	"database/sql"
	"errors"
	"net/http"

	"celula/internal/application/orchestrators"
	"celula/internal/application/projections"
	"celula/internal/domain/member"
	"celula/internal/domain/report"
	"celula/internal/domain/role"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// handleLogin handles POST /api/login
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := strictDecode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	acct, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{AccountStore: s.stores.Accounts})
	switch {
	case errors.Is(err, orchestrators.ErrAccountLocked):
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusUnauthorized, orchestrators.ErrInvalidCredentials.Error())
		return
	}
	token, exp, err := s.tokens.Issue(acct)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp.Unix()})
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// handleListMembers handles GET /api/membros
func (s *server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := projections.QueryGetMemberList(r.Context(), projections.GetMemberListQuery{
		CelulaID: claimsFrom(r.Context()).CelulaID,
		Search:   r.URL.Query().Get("search"),
	}, projections.GetMemberListDeps{MemberStore: s.stores.Members})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope[member.Member]{Data: members})
}

// handleGetMember handles GET /api/membros/{id}
func (s *server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, _, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := s.stores.Members.GetByID(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleSaveMember handles POST /api/membros and PUT /api/membros/{id}
func (s *server) handleSaveMember(w http.ResponseWriter, r *http.Request) {
	id, edit, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var m member.Member
	if err := strictDecode(w, r, &m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	m.ID = id
	if m.CelulaID == 0 {
		m.CelulaID = claimsFrom(r.Context()).CelulaID
	}
	saved, err := orchestrators.ExecuteSaveMember(r.Context(), m, orchestrators.SaveMemberDeps{
		MemberStore: s.stores.Members,
		RoleStore:   s.stores.Roles,
	})
	if err != nil {
		saveError(w, err)
		return
	}
	status := http.StatusCreated
	if edit {
		status = http.StatusOK
	}
	writeJSON(w, status, saved)
}

// handleDeleteMember handles DELETE /api/membros/{id}
func (s *server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	s.delete(w, r, member.Resource, s.stores.Members)
}

// handleListReports handles GET /api/relatorios
func (s *server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := projections.QueryGetReportList(r.Context(), projections.GetReportListQuery{
		CelulaID: claimsFrom(r.Context()).CelulaID,
		Search:   r.URL.Query().Get("search"),
	}, projections.GetReportListDeps{ReportStore: s.stores.Reports})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope[report.Report]{Data: reports})
}

// handleGetReport handles GET /api/relatorios/{id}
func (s *server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, _, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rep, err := s.stores.Reports.GetByID(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleSaveReport handles POST /api/relatorios and PUT /api/relatorios/{id}
func (s *server) handleSaveReport(w http.ResponseWriter, r *http.Request) {
	id, edit, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var rep report.Report
	if err := strictDecode(w, r, &rep); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	rep.ID = id
	if rep.CelulaID == 0 {
		rep.CelulaID = claimsFrom(r.Context()).CelulaID
	}
	saved, err := orchestrators.ExecuteSaveReport(r.Context(), rep, orchestrators.SaveReportDeps{
		ReportStore: s.stores.Reports,
		MemberStore: s.stores.Members,
	})
	if err != nil {
		saveError(w, err)
		return
	}
	status := http.StatusCreated
	if edit {
		status = http.StatusOK
	}
	writeJSON(w, status, saved)
}

// handleDeleteReport handles DELETE /api/relatorios/{id}
func (s *server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	s.delete(w, r, report.Resource, s.stores.Reports)
}

// handleListRoles handles GET /api/cargos
func (s *server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := projections.QueryGetRoleList(r.Context(), projections.GetRoleListDeps{RoleStore: s.stores.Roles})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope[role.Role]{Data: roles})
}

// handleGetRole handles GET /api/cargos/{id}
func (s *server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	id, _, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	found, err := s.stores.Roles.GetByID(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *server) delete(w http.ResponseWriter, r *http.Request, resource string, store orchestrators.Deleter) {
	id, _, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := orchestrators.ExecuteDelete(r.Context(), resource, id, orchestrators.DeleteDeps{Store: store}); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// saveError maps orchestrator failures: missing rows are 404, domain
// validation failures 422, the rest 500.
func saveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "not found")
	case isValidation(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		internalError(w, err)
	}
}

var validationErrors = []error{
	orchestrators.ErrUnknownRole,
	orchestrators.ErrUnknownMember,
	member.ErrNameTooShort,
	member.ErrNameTooLong,
	member.ErrAddressTooShort,
	member.ErrInvalidPhone,
	member.ErrInvalidSemester,
	member.ErrInvalidDate,
	member.ErrRoleRequired,
	report.ErrInvalidDate,
	report.ErrNoAttendees,
	report.ErrDuplicateAttendee,
	report.ErrLocationRequired,
	report.ErrThemeRequired,
	report.ErrObservationMissing,
	report.ErrPreacherRequired,
}

func isValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
