package decisions

import (
	"net/url"
	"strconv"

	"plenario/pkg/query"
	"plenario/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "decisions", "d").
	Project("id", "ID").
	Project("case_id", "CaseID").
	Project("sequence", "Sequence").
	Project("year", "Year").
	Project("ementa_title", "EmentaTitle").
	Project("ementa_body", "EmentaBody").
	Project("vote_file_key", "VoteFileKey").
	Project("decision_file_key", "DecisionFileKey").
	Project("emitted_at", "EmittedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "EmittedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for decision queries.
// Nil fields are ignored.
type Filters struct {
	Year *int `json:"year,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Year", f.Year)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if y := values.Get("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil {
			f.Year = &v
		}
	}

	return f
}

func scanDecision(s repository.Scanner) (Decision, error) {
	var d Decision
	err := s.Scan(
		&d.ID,
		&d.CaseID,
		&d.Sequence,
		&d.Year,
		&d.EmentaTitle,
		&d.EmentaBody,
		&d.VoteFileKey,
		&d.DecisionFileKey,
		&d.EmittedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func scanPublication(s repository.Scanner) (Publication, error) {
	var p Publication
	err := s.Scan(
		&p.ID,
		&p.DecisionID,
		&p.PublicationOrder,
		&p.Number,
		&p.PublishedAt,
	)
	return p, err
}
