package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

// TestResolve verifies the precedence of query, cookie and Accept-Language.
func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{"default", "/", "", "", language.BrazilianPortuguese, false},
		{"query", "/?lang=en", "pt-BR", "pt-BR", language.AmericanEnglish, true},
		{"cookie", "/", "en-US", "pt-BR", language.AmericanEnglish, false},
		{"accept", "/", "", "en-GB,en;q=0.8", language.AmericanEnglish, false},
		{"accept portuguese", "/", "", "pt-PT", language.BrazilianPortuguese, false},
		{"unsupported accept", "/", "", "ja", language.BrazilianPortuguese, false},
		{"garbage query", "/?lang=!!", "", "", language.BrazilianPortuguese, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: LangCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			got, persist := Resolve(r, Default())
			if got != tt.want || persist != tt.wantPersist {
				t.Errorf("Resolve() = %v, %v; want %v, %v", got, persist, tt.want, tt.wantPersist)
			}
		})
	}
}

// TestPrinter verifies catalog lookups and formatting per language.
func TestPrinter(t *testing.T) {
	pt := Printer(language.BrazilianPortuguese)
	if got := pt.Sprintf("report.saved.create", "15/10/2026"); got != "Relatório do dia 15/10/2026 cadastrado com sucesso" {
		t.Errorf("pt = %q", got)
	}
	en := Printer(language.English)
	if got := en.Sprintf("notice.save_ok"); got != "Saved" {
		t.Errorf("en = %q", got)
	}
}
