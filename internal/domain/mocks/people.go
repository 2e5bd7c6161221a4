package mocks

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// PersonRepository is an in-memory ports.PersonRepository. WithTx snapshots the
// state and restores it when fn fails, so rollback behaves like the real store.
type PersonRepository struct {
	People       map[string]entities.Person
	Associations map[string]map[string]bool // title -> professions
	Runs         []entities.RunEntry

	Err       error // returned by every call when set
	InsertErr error

	TxCount       int
	RollbackCount int
}

// NewPersonRepository creates an empty repository.
func NewPersonRepository() *PersonRepository {
	return &PersonRepository{
		People:       make(map[string]entities.Person),
		Associations: make(map[string]map[string]bool),
	}
}

// EnsureSchema returns the configured error.
func (m *PersonRepository) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close does nothing.
func (m *PersonRepository) Close() error {
	return nil
}

// WithTx runs fn against the repository and restores the prior state on error.
func (m *PersonRepository) WithTx(_ context.Context, fn func(tx ports.PersonTx) error) error {
	if m.Err != nil {
		return m.Err
	}
	m.TxCount++

	people := maps.Clone(m.People)
	assoc := make(map[string]map[string]bool, len(m.Associations))
	for title, profs := range m.Associations {
		assoc[title] = maps.Clone(profs)
	}

	if err := fn(&personTx{m: m}); err != nil {
		m.People = people
		m.Associations = assoc
		m.RollbackCount++
		return err
	}
	return nil
}

// CountPeople returns the number of stored people.
func (m *PersonRepository) CountPeople(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.People), nil
}

// FindPerson returns the person and its current professions.
func (m *PersonRepository) FindPerson(_ context.Context, title string) (*entities.PersonDetails, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.People[title]
	if !ok {
		return nil, nil
	}
	return &entities.PersonDetails{Person: p, Professions: m.professionsOf(title)}, nil
}

// ProfessionCounts tallies associations of people still present, largest first.
func (m *PersonRepository) ProfessionCounts(_ context.Context) ([]entities.ProfessionCount, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	counts := make(map[string]int)
	for title, profs := range m.Associations {
		if _, ok := m.People[title]; !ok {
			continue
		}
		for prof := range profs {
			counts[prof]++
		}
	}

	result := make([]entities.ProfessionCount, 0, len(counts))
	for prof, n := range counts {
		result = append(result, entities.ProfessionCount{Profession: prof, People: n})
	}
	slices.SortFunc(result, func(a, b entities.ProfessionCount) int {
		if a.People != b.People {
			return b.People - a.People
		}
		return strings.Compare(a.Profession, b.Profession)
	})
	return result, nil
}

// ProfessionMembers returns the titles associated with profession, sorted.
func (m *PersonRepository) ProfessionMembers(_ context.Context, profession string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var titles []string
	for title, profs := range m.Associations {
		if _, ok := m.People[title]; ok && profs[profession] {
			titles = append(titles, title)
		}
	}
	slices.Sort(titles)
	return titles, nil
}

// ListPeople returns people sorted by title, restricted to profession when set.
func (m *PersonRepository) ListPeople(_ context.Context, profession string) ([]entities.PersonDetails, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.PersonDetails
	for _, title := range slices.Sorted(maps.Keys(m.People)) {
		if profession != "" && !m.Associations[title][profession] {
			continue
		}
		out = append(out, entities.PersonDetails{Person: m.People[title], Professions: m.professionsOf(title)})
	}
	return out, nil
}

// PendingImages returns titles whose portrait lookup was never attempted, sorted.
func (m *PersonRepository) PendingImages(_ context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var titles []string
	for title, p := range m.People {
		if !p.Image.Attempted() {
			titles = append(titles, title)
		}
	}
	slices.Sort(titles)
	return titles, nil
}

// SetImageOutcome stores the outcome on the person.
func (m *PersonRepository) SetImageOutcome(_ context.Context, title string, outcome entities.ImageOutcome) error {
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.People[title]
	if !ok {
		return nil
	}
	p.Image = outcome
	m.People[title] = p
	return nil
}

// ListSummaries returns people with a non-empty summary, sorted by title.
func (m *PersonRepository) ListSummaries(_ context.Context) ([]entities.PersonSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.PersonSummary
	for _, title := range slices.Sorted(maps.Keys(m.People)) {
		p := m.People[title]
		if p.Summary != "" {
			result = append(result, entities.PersonSummary{Title: p.Title, BirthYear: p.BirthYear, Summary: p.Summary})
		}
	}
	return result, nil
}

// Summarize reports totals over the stored people.
func (m *PersonRepository) Summarize(ctx context.Context) (*entities.DatasetSummary, error) {
	counts, err := m.ProfessionCounts(ctx)
	if err != nil {
		return nil, err
	}
	s := &entities.DatasetSummary{
		People:        len(m.People),
		Professions:   len(counts),
		ImageFailures: make(map[entities.FailureReason]int),
	}
	for _, c := range counts {
		s.Associations += c.People
	}
	for _, p := range m.People {
		switch p.Image.Status {
		case entities.ImageNotAttempted:
			s.ImagesPending++
		case entities.ImageSuccess:
			s.ImagesSaved++
		case entities.ImageFailure:
			s.ImageFailures[p.Image.Reason]++
		}
	}
	return s, nil
}

// LogRun appends to Runs.
func (m *PersonRepository) LogRun(_ context.Context, action string, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.Runs = append(m.Runs, entities.RunEntry{Action: action, Details: details, CreatedAt: time.Now()})
	return nil
}

// ListRuns returns the newest limit entries first.
func (m *PersonRepository) ListRuns(_ context.Context, limit int) ([]entities.RunEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	runs := slices.Clone(m.Runs)
	slices.Reverse(runs)
	if limit > 0 && limit < len(runs) {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *PersonRepository) professionsOf(title string) []string {
	return slices.Sorted(maps.Keys(m.Associations[title]))
}

// personTx applies PersonTx operations straight to the repository maps.
type personTx struct {
	m *PersonRepository
}

func (tx *personTx) PersonExists(_ context.Context, title string) (bool, error) {
	_, ok := tx.m.People[title]
	return ok, nil
}

func (tx *personTx) InsertPerson(_ context.Context, p entities.Person) (bool, error) {
	if tx.m.InsertErr != nil {
		return false, tx.m.InsertErr
	}
	if _, ok := tx.m.People[p.Title]; ok {
		return false, nil
	}
	tx.m.People[p.Title] = p
	return true, nil
}

func (tx *personTx) CountPeople(_ context.Context) (int, error) {
	return len(tx.m.People), nil
}

func (tx *personTx) DeleteAssociations(_ context.Context) error {
	tx.m.Associations = make(map[string]map[string]bool)
	return nil
}

// Associate mirrors the store's matching: the keyword preceded by a space,
// case-sensitive, within the first window-1 characters of the summary.
func (tx *personTx) Associate(_ context.Context, rule entities.KeywordRule, window int) (int, error) {
	needle := " " + rule.Keyword
	added := 0
	for title, p := range tx.m.People {
		prefix := []rune(p.Summary)
		if n := window - 1; n < len(prefix) {
			prefix = prefix[:max(n, 0)]
		}
		if !strings.Contains(string(prefix), needle) {
			continue
		}
		if tx.m.Associations[title] == nil {
			tx.m.Associations[title] = make(map[string]bool)
		}
		if !tx.m.Associations[title][rule.Profession] {
			tx.m.Associations[title][rule.Profession] = true
			added++
		}
	}
	return added, nil
}

func (tx *personTx) DeleteByProfession(_ context.Context, profession string, minRefs int) (int, error) {
	return tx.deleteWhere(func(p entities.Person, profs map[string]bool) bool {
		return profs[profession] && p.ReferenceCount < minRefs
	}), nil
}

func (tx *personTx) DeleteBySoleProfession(_ context.Context, profession string, minRefs int) (int, error) {
	return tx.deleteWhere(func(p entities.Person, profs map[string]bool) bool {
		return len(profs) == 1 && profs[profession] && p.ReferenceCount < minRefs
	}), nil
}

// deleteWhere removes matching people but leaves their associations behind,
// as the store does until the next rebuild.
func (tx *personTx) deleteWhere(match func(entities.Person, map[string]bool) bool) int {
	removed := 0
	for title, p := range tx.m.People {
		if match(p, tx.m.Associations[title]) {
			delete(tx.m.People, title)
			removed++
		}
	}
	return removed
}
