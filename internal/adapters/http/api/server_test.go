package api

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"celula/internal/adapters/apiclient"
	"celula/internal/adapters/storage"
	accountStore "celula/internal/adapters/storage/account"
	memberStore "celula/internal/adapters/storage/member"
	reportStore "celula/internal/adapters/storage/report"
	roleStore "celula/internal/adapters/storage/role"
	"celula/internal/application/orchestrators"
	"celula/internal/domain/member"
	"celula/internal/domain/report"
	"celula/internal/domain/role"
)

const (
	adminEmail    = "admin@celula.local"
	adminPassword = "celula-admin-123"
)

type staticToken struct{ token string }

func (s *staticToken) Token() string { return s.token }

type fixture struct {
	srv    *httptest.Server
	tokens *Tokens
	auth   *staticToken
	client *apiclient.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	tdb := storage.NewTimedDB(db, nil, 0)
	stores := Stores{
		Accounts: accountStore.NewSQLiteStore(tdb),
		Members:  memberStore.NewSQLiteStore(tdb),
		Reports:  reportStore.NewSQLiteStore(tdb),
		Roles:    roleStore.NewSQLiteStore(tdb),
	}
	ctx := context.Background()
	if err := orchestrators.ExecuteSeedRoles(ctx, orchestrators.SeedRolesDeps{RoleStore: stores.Roles}); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	if _, err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.CreateAccountInput{
		Email: adminEmail, Password: adminPassword, CelulaID: 1,
	}, orchestrators.CreateAccountDeps{AccountStore: stores.Accounts}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	tokens := NewTokens([]byte("test-secret"), time.Hour)
	srv := httptest.NewServer(NewHandler(ctx, stores, Options{Tokens: tokens}))
	t.Cleanup(srv.Close)

	auth := &staticToken{}
	return &fixture{srv: srv, tokens: tokens, auth: auth, client: apiclient.New(srv.URL, auth)}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	token, err := f.client.Login(context.Background(), adminEmail, adminPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	f.auth.token = token
}

// TestLogin verifies credential checks and the token envelope.
func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.client.Login(ctx, adminEmail, "wrong-password"); err == nil {
		t.Error("expected rejection for a wrong password")
	}
	token, err := f.client.Login(ctx, adminEmail, adminPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := f.tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Email != adminEmail || claims.CelulaID != 1 || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

// TestBearerRequired verifies missing, forged and expired tokens are refused.
func TestBearerRequired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.client.GetAll(ctx, member.Resource, "")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", resp.StatusCode)
	}

	forged := NewTokens([]byte("other-secret"), time.Hour)
	f.auth.token, _, _ = forged.Issue(orchestrators.LoginResult{AccountID: "x", CelulaID: 1})
	if resp, _ := f.client.GetAll(ctx, member.Resource, ""); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("forged token status = %d, want 401", resp.StatusCode)
	}

	past := NewTokens([]byte("test-secret"), time.Minute)
	past.now = func() time.Time { return time.Now().Add(-time.Hour) }
	f.auth.token, _, _ = past.Issue(orchestrators.LoginResult{AccountID: "x", CelulaID: 1})
	if resp, _ := f.client.GetAll(ctx, member.Resource, ""); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expired token status = %d, want 401", resp.StatusCode)
	}
}

func memberBody(nome string) map[string]any {
	return map[string]any{
		"nome":               nome,
		"endereco":           "Rua das Flores, 10",
		"telefone":           "(11)91234-5678",
		"data_conversao":     "2020.1",
		"data_inicio_celula": "2021-03-01",
		"cargo_id":           1,
		"celula_id":          1,
	}
}

// TestMemberCRUD verifies the member lifecycle through the resource client.
func TestMemberCRUD(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	resp, err := f.client.Post(ctx, member.Resource, memberBody("Ana"))
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create = %v, %v", resp, err)
	}
	var created member.Member
	if err := resp.Record(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 || created.PrimaryRole() != "líder" || created.Ativo != 1 {
		t.Errorf("created = %+v", created)
	}
	f.client.Post(ctx, member.Resource, memberBody("Bruno"))

	resp, _ = f.client.GetAll(ctx, member.Resource, "ANA")
	var found []member.Member
	if err := resp.List(&found); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 || found[0].ID != created.ID {
		t.Errorf("search = %+v", found)
	}

	body := memberBody("Ana Paula")
	body["cargo_id"] = 5
	resp, _ = f.client.Put(ctx, member.Resource, created.ID, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d: %s", resp.StatusCode, resp.Body)
	}
	resp, _ = f.client.Get(ctx, member.Resource, created.ID)
	var got member.Member
	resp.Record(&got)
	if got.Nome != "Ana Paula" || got.CargoID != 5 {
		t.Errorf("after update = %+v", got)
	}

	invalid := memberBody("A")
	if resp, _ := f.client.Post(ctx, member.Resource, invalid); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("invalid status = %d, want 422", resp.StatusCode)
	}
	unknown := memberBody("Carla")
	unknown["cargo_id"] = 99
	if resp, _ := f.client.Post(ctx, member.Resource, unknown); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("unknown role status = %d, want 422", resp.StatusCode)
	}

	if resp, _ := f.client.Delete(ctx, member.Resource, created.ID); resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	if resp, _ := f.client.Get(ctx, member.Resource, created.ID); resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
	if resp, _ := f.client.Delete(ctx, member.Resource, created.ID); resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

// TestReportCRUD verifies attendance ids go in and named attendees come out.
func TestReportCRUD(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	var ids []int64
	for _, nome := range []string{"Ana", "Bruno"} {
		resp, _ := f.client.Post(ctx, member.Resource, memberBody(nome))
		var m member.Member
		resp.Record(&m)
		ids = append(ids, m.ID)
	}

	body := map[string]any{
		"data":        "2026-10-15",
		"local":       "Casa da Ana",
		"tema":        "Fé",
		"observacao":  "Reunião **abençoada**",
		"pregador_id": ids[1],
		"presentes":   ids,
		"celula_id":   1,
	}
	resp, err := f.client.Post(ctx, report.Resource, body)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create = %v, %v", resp, err)
	}
	var created report.Report
	resp.Record(&created)
	if created.Pregador != "Bruno" || len(created.Presentes) != 2 || created.Presentes[0].Nome != "Ana" {
		t.Errorf("created = %+v", created)
	}

	resp, _ = f.client.GetAll(ctx, report.Resource, "casa")
	var list []report.Report
	resp.List(&list)
	if len(list) != 1 {
		t.Errorf("search = %+v", list)
	}

	body["presentes"] = []int64{ids[0], 999}
	if resp, _ := f.client.Put(ctx, report.Resource, created.ID, body); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("unknown attendee status = %d, want 422", resp.StatusCode)
	}
	body["extra"] = true
	if resp, _ := f.client.Post(ctx, report.Resource, body); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown field status = %d, want 400", resp.StatusCode)
	}
}

// TestRoles verifies seeded roles are listed and fetchable.
func TestRoles(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	resp, _ := f.client.GetAll(ctx, role.Resource, "")
	var roles []role.Role
	if err := resp.List(&roles); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(roles) != len(role.Defaults) || roles[4].Nome != "Membro" {
		t.Errorf("roles = %+v", roles)
	}
	if resp, _ := f.client.Get(ctx, role.Resource, 77); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing role status = %d, want 404", resp.StatusCode)
	}
}
