package sessions

import (
	"net/url"
	"strconv"

	"plenario/pkg/query"
	"plenario/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "sessions", "s").
	Project("id", "ID").
	Project("sequence", "Sequence").
	Project("year", "Year").
	Project("ordinal", "Ordinal").
	Project("ordinal_type", "OrdinalType").
	Project("date", "Date").
	Project("start_time", "StartTime").
	Project("end_time", "EndTime").
	Project("president_id", "PresidentID").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "Date",
	Descending: true,
}

var caseProjection = query.
	NewProjectionMap("public", "session_cases", "sc").
	Project("id", "ID").
	Project("session_id", "SessionID").
	Project("case_id", "CaseID").
	Project("agenda_order", "AgendaOrder").
	Project("status", "Status").
	Project("result", "Result").
	Project("minutes", "Minutes").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Filters contains optional filtering criteria for session queries.
// Nil fields are ignored.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	OrdinalType *string `json:"ordinal_type,omitempty"`
	Year        *int    `json:"year,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("OrdinalType", f.OrdinalType).
		WhereEquals("Year", f.Year)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if o := values.Get("ordinal_type"); o != "" {
		f.OrdinalType = &o
	}

	if y := values.Get("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil {
			f.Year = &v
		}
	}

	return f
}

func scanSession(s repository.Scanner) (Session, error) {
	var sess Session
	err := s.Scan(
		&sess.ID,
		&sess.Sequence,
		&sess.Year,
		&sess.Ordinal,
		&sess.OrdinalType,
		&sess.Date,
		&sess.StartTime,
		&sess.EndTime,
		&sess.PresidentID,
		&sess.Status,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	return sess, err
}

func scanSessionCase(s repository.Scanner) (SessionCase, error) {
	var sc SessionCase
	err := s.Scan(
		&sc.ID,
		&sc.SessionID,
		&sc.CaseID,
		&sc.AgendaOrder,
		&sc.Status,
		&sc.Result,
		&sc.Minutes,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	)
	return sc, err
}
