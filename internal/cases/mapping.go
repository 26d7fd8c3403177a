package cases

import (
	"net/url"
	"strconv"

	"plenario/pkg/query"
	"plenario/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "cases", "c").
	Project("id", "ID").
	Project("sequence", "Sequence").
	Project("year", "Year").
	Project("classification", "Classification").
	Project("status", "Status").
	Project("archived", "Archived").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for case queries.
// Nil fields are ignored.
type Filters struct {
	Status         *string `json:"status,omitempty"`
	Classification *string `json:"classification,omitempty"`
	Year           *int    `json:"year,omitempty"`
	Archived       *bool   `json:"archived,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("Classification", f.Classification).
		WhereEquals("Year", f.Year).
		WhereEquals("Archived", f.Archived)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if c := values.Get("classification"); c != "" {
		f.Classification = &c
	}

	if y := values.Get("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil {
			f.Year = &v
		}
	}

	if a := values.Get("archived"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Archived = &v
		}
	}

	return f
}

func scanCase(s repository.Scanner) (Case, error) {
	var c Case
	err := s.Scan(
		&c.ID,
		&c.Sequence,
		&c.Year,
		&c.Classification,
		&c.Status,
		&c.Archived,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
