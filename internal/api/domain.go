package api

import (
	"context"

	"plenario/internal/cases"
	"plenario/internal/decisions"
	"plenario/internal/distribution"
	"plenario/internal/events"
	"plenario/internal/members"
	"plenario/internal/notifications"
	"plenario/internal/sessions"
	"plenario/internal/votes"
	"plenario/pkg/sequence"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Members       members.System
	Cases         cases.System
	Sessions      sessions.System
	Distribution  distribution.System
	Votes         votes.System
	Decisions     decisions.System
	Notifications notifications.System
}

// NewDomain creates all domain systems from the API runtime and wires the
// notification tracker to published decisions.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()
	sequences := sequence.NewPostgres()

	membersSystem := members.New(db, runtime.Logger, runtime.Pagination)

	casesSystem := cases.New(db, sequences, runtime.Logger, runtime.Pagination)

	sessionsSystem := sessions.New(
		db,
		sequences,
		runtime.Events,
		runtime.Logger,
		runtime.Pagination,
	)

	distributionSystem := distribution.New(db, membersSystem, runtime.Logger)

	votesSystem := votes.New(db, runtime.Logger)

	decisionsSystem := decisions.New(
		db,
		sequences,
		runtime.Storage,
		runtime.Events,
		runtime.Logger,
		runtime.Pagination,
	)

	notificationsSystem := notifications.New(db, runtime.Logger, runtime.Pagination)

	// The tracker is a downstream collaborator: it learns about published
	// decisions through the bus and never calls back into the judgment core.
	runtime.Events.SubscribeFunc(events.TypeDecisionPublished, func(evt events.Event) {
		payload, ok := evt.Data.(events.DecisionPublished)
		if !ok {
			return
		}
		if err := notificationsSystem.SeedPublished(context.Background(), payload); err != nil {
			runtime.Logger.Error("notification seeding failed", "error", err)
		}
	})

	return &Domain{
		Members:       membersSystem,
		Cases:         casesSystem,
		Sessions:      sessionsSystem,
		Distribution:  distributionSystem,
		Votes:         votesSystem,
		Decisions:     decisionsSystem,
		Notifications: notificationsSystem,
	}
}
