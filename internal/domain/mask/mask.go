// Package mask formats and checks the free-text fields of cell records:
// phone numbers, semester dates and calendar dates.
package mask

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Wire and display layouts for calendar dates.
const (
	LayoutISO = "2006-01-02"
	LayoutBR  = "02/01/2006"
)

// ErrInvalidDate is returned when a value cannot be read as a calendar date.
var ErrInvalidDate = errors.New("invalid date")

var (
	phonePattern    = regexp.MustCompile(`^\(\d{2}\)\d{4,5}-\d{4}$`)
	semesterPattern = regexp.MustCompile(`^\d{4}\.\d$`)
)

// Digits strips every character that is not an ASCII digit.
func Digits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FormatPhone renders raw input as (DD)DDDD-DDDD for up to ten digits and
// (DD)DDDDD-DDDD otherwise. Digits past the eleventh are dropped.
// PRE: none
// POST: FormatPhone(FormatPhone(v)) == FormatPhone(v)
func FormatPhone(value string) string {
	d := Digits(value)
	if len(d) <= 10 {
		return "(" + span(d, 0, 2) + ")" + span(d, 2, 6) + "-" + span(d, 6, 10)
	}
	return "(" + span(d, 0, 2) + ")" + span(d, 2, 7) + "-" + span(d, 7, 11)
}

// IsPhone reports whether value is a complete formatted phone number.
func IsPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// IsSemester reports whether value has the YYYY.S shape, e.g. "2022.1".
func IsSemester(value string) bool {
	return len(value) == 6 && semesterPattern.MatchString(value)
}

// ParseDate reads a calendar date in ISO form, Brazilian dd/mm/yyyy form or
// as the date part of an RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if len(v) > len(LayoutISO) && v[len(LayoutISO)] == 'T' {
		v = v[:len(LayoutISO)]
	}
	for _, layout := range []string{LayoutISO, LayoutBR} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// FormatISO renders t in the yyyy-MM-dd wire format.
func FormatISO(t time.Time) string {
	return t.Format(LayoutISO)
}

// FormatBR renders t as dd/mm/yyyy.
func FormatBR(t time.Time) string {
	return t.Format(LayoutBR)
}

var longDateMatcher = language.NewMatcher([]language.Tag{
	language.BrazilianPortuguese,
	language.AmericanEnglish,
})

var monthsPT = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// LongDate renders t in the long display form of the closest supported
// language: "15 de outubro de 2026" or "October 15, 2026".
func LongDate(tag language.Tag, t time.Time) string {
	_, idx, _ := longDateMatcher.Match(tag)
	if idx == 1 {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthsPT[t.Month()-1], t.Year())
}

// span mirrors a clamped substring: out of range bounds yield what exists.
func span(s string, from, to int) string {
	if from > len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
