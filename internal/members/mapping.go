package members

import (
	"net/url"
	"strconv"

	"plenario/pkg/query"
	"plenario/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "members", "m").
	Project("id", "ID").
	Project("name", "Name").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

var authorityProjection = query.
	NewProjectionMap("public", "case_authorities", "a").
	Project("id", "ID").
	Project("case_id", "CaseID").
	Project("name", "Name").
	Project("member_id", "MemberID").
	Project("active", "Active")

// Filters contains optional filtering criteria for member queries.
// Nil fields are ignored.
type Filters struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	return f
}

func scanMember(s repository.Scanner) (Member, error) {
	var m Member
	err := s.Scan(
		&m.ID,
		&m.Name,
		&m.Active,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func scanAuthority(s repository.Scanner) (Authority, error) {
	var a Authority
	err := s.Scan(
		&a.ID,
		&a.CaseID,
		&a.Name,
		&a.MemberID,
		&a.Active,
	)
	return a, err
}
