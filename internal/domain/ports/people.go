package ports

import (
	"context"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// PersonRepository is the durable store of retained people and their derived
// profession associations.
type PersonRepository interface {
	// EnsureSchema creates the tables if they don't exist.
	EnsureSchema(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error

	// WithTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx PersonTx) error) error

	// CountPeople returns the number of retained people.
	CountPeople(ctx context.Context) (int, error)

	// FindPerson returns a person with its professions, or nil if absent.
	FindPerson(ctx context.Context, title string) (*entities.PersonDetails, error)

	// ProfessionCounts returns how many people each profession has, largest first.
	ProfessionCounts(ctx context.Context) ([]entities.ProfessionCount, error)

	// ProfessionMembers returns the titles associated with a profession.
	ProfessionMembers(ctx context.Context, profession string) ([]string, error)

	// PendingImages returns titles whose portrait lookup was never attempted.
	PendingImages(ctx context.Context) ([]string, error)

	// SetImageOutcome records the portrait lookup result for a person.
	SetImageOutcome(ctx context.Context, title string, outcome entities.ImageOutcome) error

	// ListPeople returns people with their professions, ordered by title. A
	// non-empty profession restricts the list to its members.
	ListPeople(ctx context.Context, profession string) ([]entities.PersonDetails, error)

	// ListSummaries returns every person with a non-empty summary.
	ListSummaries(ctx context.Context) ([]entities.PersonSummary, error)

	// Summarize reports dataset totals and image outcome tallies.
	Summarize(ctx context.Context) (*entities.DatasetSummary, error)

	// LogRun appends an entry to the run log.
	LogRun(ctx context.Context, action string, details map[string]any) error

	// ListRuns returns the most recent run log entries, newest first.
	ListRuns(ctx context.Context, limit int) ([]entities.RunEntry, error)
}

// PersonTx is the set of operations available inside WithTx.
type PersonTx interface {
	// PersonExists reports whether a person with this title is stored.
	PersonExists(ctx context.Context, title string) (bool, error)

	// InsertPerson stores p unless the title already exists. It reports whether a
	// row was written; existing rows are never overwritten.
	InsertPerson(ctx context.Context, p entities.Person) (bool, error)

	// CountPeople returns the number of retained people as seen by the transaction.
	CountPeople(ctx context.Context) (int, error)

	// DeleteAssociations removes every profession association.
	DeleteAssociations(ctx context.Context) error

	// Associate links the profession of rule to every person whose first window
	// characters of summary contain the keyword preceded by a space. It returns the
	// number of new associations.
	Associate(ctx context.Context, rule entities.KeywordRule, window int) (int, error)

	// DeleteByProfession removes people associated with profession whose reference
	// count is below minRefs, and returns how many were removed.
	DeleteByProfession(ctx context.Context, profession string, minRefs int) (int, error)

	// DeleteBySoleProfession removes people whose only association is profession and
	// whose reference count is below minRefs, and returns how many were removed.
	DeleteBySoleProfession(ctx context.Context, profession string, minRefs int) (int, error)
}
