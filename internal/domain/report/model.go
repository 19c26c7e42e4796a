package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"celula/internal/domain/mask"
)

// Resource is the API collection holding meeting reports.
const Resource = "relatorios"

// Domain errors
var (
	ErrInvalidDate        = errors.New("meeting date must be a valid calendar date")
	ErrNoAttendees        = errors.New("at least one member must be present")
	ErrDuplicateAttendee  = errors.New("attendee listed more than once")
	ErrLocationRequired   = errors.New("meeting location is required")
	ErrThemeRequired      = errors.New("meeting theme is required")
	ErrObservationMissing = errors.New("meeting observation is required")
	ErrPreacherRequired   = errors.New("meeting preacher must be selected")
)

// Attendee is a member marked present at a meeting. On the wire it is read
// either as a bare member id or as an object carrying id and nome.
type Attendee struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome,omitempty"`
}

// UnmarshalJSON accepts both `3` and `{"id":3,"nome":"..."}`.
func (a *Attendee) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		return json.Unmarshal(data, &a.ID)
	}
	type plain Attendee
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Attendee(p)
	return nil
}

// Report records one cell meeting.
type Report struct {
	ID         int64      `json:"id"`
	Data       string     `json:"data"`
	Local      string     `json:"local"`
	Tema       string     `json:"tema"`
	Observacao string     `json:"observacao"`
	PregadorID int64      `json:"pregador_id"`
	Pregador   string     `json:"pregador,omitempty"`
	Presentes  []Attendee `json:"presentes"`
	CelulaID   int64      `json:"celula_id"`
}

// Validate checks if the Report has valid data.
// PRE: Report struct is populated
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Presentes holds each member at most once
func (r *Report) Validate() error {
	if _, err := mask.ParseDate(r.Data); err != nil {
		return ErrInvalidDate
	}
	if len(r.Presentes) == 0 {
		return ErrNoAttendees
	}
	seen := make(map[int64]bool, len(r.Presentes))
	for _, a := range r.Presentes {
		if seen[a.ID] {
			return ErrDuplicateAttendee
		}
		seen[a.ID] = true
	}
	if strings.TrimSpace(r.Local) == "" {
		return ErrLocationRequired
	}
	if strings.TrimSpace(r.Tema) == "" {
		return ErrThemeRequired
	}
	if strings.TrimSpace(r.Observacao) == "" {
		return ErrObservationMissing
	}
	if r.PregadorID < 1 {
		return ErrPreacherRequired
	}
	return nil
}

// AttendeeIDs returns the ids of the members present, in listed order.
func (r *Report) AttendeeIDs() []int64 {
	ids := make([]int64, len(r.Presentes))
	for i, a := range r.Presentes {
		ids[i] = a.ID
	}
	return ids
}

// SearchFields lists the values a free-text filter matches against.
func (r Report) SearchFields() []string {
	return []string{r.Data, r.Local, r.Tema, r.Pregador}
}
