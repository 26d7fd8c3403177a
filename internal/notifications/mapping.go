package notifications

import (
	"plenario/pkg/query"
	"plenario/pkg/repository"
)

var listProjection = query.
	NewProjectionMap("public", "notification_lists", "nl").
	Project("id", "ID").
	Project("title", "Title").
	Project("created_at", "CreatedAt")

var listDefaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanList(s repository.Scanner) (List, error) {
	var l List
	err := s.Scan(&l.ID, &l.Title, &l.CreatedAt)
	return l, err
}

func scanItem(s repository.Scanner) (Item, error) {
	var i Item
	err := s.Scan(&i.ID, &i.ListID, &i.CaseID, &i.DecisionNumber, &i.CreatedAt)
	return i, err
}

func scanAttempt(s repository.Scanner) (Attempt, error) {
	var a Attempt
	err := s.Scan(
		&a.ID,
		&a.ItemID,
		&a.Channel,
		&a.Deadline,
		&a.Status,
		&a.ConfirmedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
