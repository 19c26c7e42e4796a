package browser_test

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/text/language"

	_ "modernc.org/sqlite"

	"celula/internal/adapters/apiclient"
	"celula/internal/adapters/auth"
	"celula/internal/adapters/email"
	web "celula/internal/adapters/http"
	"celula/internal/adapters/http/api"
	"celula/internal/adapters/storage"
	accountStore "celula/internal/adapters/storage/account"
	memberStore "celula/internal/adapters/storage/member"
	reportStore "celula/internal/adapters/storage/report"
	roleStore "celula/internal/adapters/storage/role"
	"celula/internal/application/lookup"
	"celula/internal/application/orchestrators"
	memberDomain "celula/internal/domain/member"
	"celula/internal/platform/i18n"
)

const (
	adminEmail    = "admin@test.com"
	adminPassword = "TestPass123!"
	roleLeader    = 1
	roleMember    = 5
)

// testApp holds the running backend, front end and Playwright handles.
type testApp struct {
	BaseURL string
	Stores  api.Stores
	Mail    *email.NoopSender
	Browser playwright.Browser
}

// newTestApp starts the REST backend on a temp SQLite DB, the front end in
// front of it, and a headless Chromium.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	tdb := storage.NewTimedDB(db, nil, 0)
	stores := api.Stores{
		Accounts: accountStore.NewSQLiteStore(tdb),
		Members:  memberStore.NewSQLiteStore(tdb),
		Reports:  reportStore.NewSQLiteStore(tdb),
		Roles:    roleStore.NewSQLiteStore(tdb),
	}
	if err := orchestrators.ExecuteSeedRoles(ctx, orchestrators.SeedRolesDeps{RoleStore: stores.Roles}); err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}
	if _, err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.CreateAccountInput{
		Email: adminEmail, Password: adminPassword, CelulaID: 1,
	}, orchestrators.CreateAccountDeps{AccountStore: stores.Accounts}); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	backend := httptest.NewServer(api.NewHandler(ctx, stores, api.Options{
		Tokens: api.NewTokens([]byte("browser-test-secret"), time.Hour),
	}))
	t.Cleanup(backend.Close)

	session := auth.NewContext()
	client := apiclient.New(backend.URL, session)
	mail := email.NewNoopSender()
	front := httptest.NewServer(web.NewMux(ctx, web.Deps{
		Client:  client,
		Session: session,
		Lookups: lookup.New(client, 0),
		Mailer: &email.ReportMailer{
			Sender:  mail,
			To:      "supervisor@test.com",
			Printer: i18n.Printer(language.BrazilianPortuguese),
		},
	}, web.Options{
		CelulaID: 1,
		CSRFKey:  []byte("browser-test-csrf-key-32-bytes!!"),
	}))
	t.Cleanup(front.Close)

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
	})

	return &testApp{BaseURL: front.URL, Stores: stores, Mail: mail, Browser: browser}
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login signs in as the seeded admin and waits for the member list.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	a.goTo(t, page, "/login")
	fill(t, page, "input[name=email]", adminEmail)
	fill(t, page, "input[name=password]", adminPassword)
	click(t, page, "button[type=submit]")
	a.waitFor(t, page, "/visualizar-membros")
}

// seedMember stores a member directly and returns its id.
func (a *testApp) seedMember(t *testing.T, nome string, cargo int64) int64 {
	t.Helper()
	id, err := a.Stores.Members.Create(context.Background(), memberDomain.Member{
		Nome:             nome,
		Endereco:         "Rua das Palmeiras, 10",
		Telefone:         "(11)4000-1234",
		DataConversao:    "2020.1",
		DataInicioCelula: "2021-01-10",
		Ativo:            1,
		CelulaID:         1,
		CargoID:          cargo,
	})
	if err != nil {
		t.Fatalf("failed to seed member %q: %v", nome, err)
	}
	return id
}

func (a *testApp) goTo(t *testing.T, page playwright.Page, path string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + path); err != nil {
		t.Fatalf("failed to navigate to %s: %v", path, err)
	}
}

func (a *testApp) waitFor(t *testing.T, page playwright.Page, path string) {
	t.Helper()
	if err := page.WaitForURL(a.BaseURL+path, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("did not reach %s: %v", path, err)
	}
}

func fill(t *testing.T, page playwright.Page, selector, value string) {
	t.Helper()
	if err := page.Locator(selector).Fill(value); err != nil {
		t.Fatalf("failed to fill %s: %v", selector, err)
	}
}

func click(t *testing.T, page playwright.Page, selector string) {
	t.Helper()
	if err := page.Locator(selector).Click(); err != nil {
		t.Fatalf("failed to click %s: %v", selector, err)
	}
}

func count(t *testing.T, page playwright.Page, selector string) int {
	t.Helper()
	n, err := page.Locator(selector).Count()
	if err != nil {
		t.Fatalf("failed to count %s: %v", selector, err)
	}
	return n
}

func text(t *testing.T, page playwright.Page, selector string) string {
	t.Helper()
	s, err := page.Locator(selector).First().TextContent()
	if err != nil {
		t.Fatalf("failed to read %s: %v", selector, err)
	}
	return s
}
