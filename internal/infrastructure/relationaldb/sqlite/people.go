package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

var personColumns = []string{"title", "birth_year", "reference_count", "summary", "image_fname"}

// PersonExists reports whether a person with this title is stored.
func (t *txHandle) PersonExists(ctx context.Context, title string) (bool, error) {
	n, err := countRows(ctx, t.q,
		psql.Select("COUNT(1)").From("people").Where(sq.Eq{"title": title}),
		"checking person")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// InsertPerson inserts p unless its title is already stored.
func (t *txHandle) InsertPerson(ctx context.Context, p entities.Person) (bool, error) {
	n, err := exec(ctx, t.q,
		psql.Insert("people").
			Options("OR IGNORE").
			Columns(personColumns...).
			Values(p.Title, p.BirthYear.Code(), p.ReferenceCount, p.Summary, encodeImage(p.Image)),
		"inserting person")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountPeople returns the number of people visible to the transaction.
func (t *txHandle) CountPeople(ctx context.Context) (int, error) {
	return countPeople(ctx, t.q)
}

// DeleteAssociations empties people_to_profession.
func (t *txHandle) DeleteAssociations(ctx context.Context) error {
	_, err := exec(ctx, t.q, psql.Delete("people_to_profession"), "deleting associations")
	return err
}

// Associate inserts (title, profession) for every person whose summary prefix
// contains " "+keyword. substr(summary, 0, n) keeps the historical window, which
// covers the first n-1 characters. instr is case-sensitive.
func (t *txHandle) Associate(ctx context.Context, rule entities.KeywordRule, window int) (int, error) {
	matches := psql.Select("title").
		Column("?", rule.Profession).
		From("people").
		Where(sq.Expr("instr(substr(summary, 0, ?), ?) > 0", window, " "+rule.Keyword))

	return exec(ctx, t.q,
		psql.Insert("people_to_profession").
			Options("OR IGNORE").
			Columns("title", "profession").
			Select(matches),
		"associating keyword "+rule.Keyword)
}

// DeleteByProfession removes people in profession with too few references.
func (t *txHandle) DeleteByProfession(ctx context.Context, profession string, minRefs int) (int, error) {
	doomed := psql.Select("p.title").
		Distinct().
		From("people p").
		Join("people_to_profession a ON a.title = p.title").
		Where(sq.Eq{"a.profession": profession}).
		Where(sq.Lt{"p.reference_count": minRefs})

	return exec(ctx, t.q,
		psql.Delete("people").Where(sq.Expr("title IN (?)", doomed)),
		"pruning profession "+profession)
}

// DeleteBySoleProfession removes people whose only profession is profession and
// who have too few references.
func (t *txHandle) DeleteBySoleProfession(ctx context.Context, profession string, minRefs int) (int, error) {
	sole := psql.Select("title").
		From("people_to_profession").
		GroupBy("title").
		Having("COUNT(1) = 1")

	doomed := psql.Select("p.title").
		Distinct().
		From("people p").
		Join("people_to_profession a ON a.title = p.title").
		Where(sq.Eq{"a.profession": profession}).
		Where(sq.Lt{"p.reference_count": minRefs}).
		Where(sq.Expr("p.title IN (?)", sole))

	return exec(ctx, t.q,
		psql.Delete("people").Where(sq.Expr("title IN (?)", doomed)),
		"pruning sole profession "+profession)
}

func countPeople(ctx context.Context, q querier) (int, error) {
	return countRows(ctx, q, psql.Select("COUNT(title)").From("people"), "counting people")
}

// CountPeople returns the number of retained people.
func (r *Repository) CountPeople(ctx context.Context) (int, error) {
	return countPeople(ctx, r.db)
}

// FindPerson returns a person with its professions, or nil if absent.
func (r *Repository) FindPerson(ctx context.Context, title string) (*entities.PersonDetails, error) {
	sqlStr, args, err := psql.Select(personColumns...).
		From("people").
		Where(sq.Eq{"title": title}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building SQL for finding person: %w", err)
	}

	person, err := scanPerson(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p := entities.PersonDetails{Person: person}
	p.Professions, err = queryStrings(ctx, r.db,
		psql.Select("profession").
			From("people_to_profession").
			Where(sq.Eq{"title": title}).
			OrderBy("profession"),
		"listing professions")
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ListPeople returns people with their professions ordered by title. A
// non-empty profession restricts the list to its members.
func (r *Repository) ListPeople(ctx context.Context, profession string) ([]entities.PersonDetails, error) {
	people := psql.Select(prefixed("p", personColumns)...).From("people p")
	associations := psql.Select("a.title", "a.profession").
		From("people_to_profession a").
		Join("people p ON p.title = a.title").
		OrderBy("a.title", "a.profession")
	if profession != "" {
		people = people.Join("people_to_profession m ON m.title = p.title").Where(sq.Eq{"m.profession": profession})
		associations = associations.Join("people_to_profession m ON m.title = a.title").Where(sq.Eq{"m.profession": profession})
	}

	sqlStr, args, err := people.OrderBy("p.title").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building SQL for listing people: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var out []entities.PersonDetails
	index := make(map[string]int)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		index[person.Title] = len(out)
		out = append(out, entities.PersonDetails{Person: person, Professions: []string{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sqlStr, args, err = associations.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building SQL for listing associations: %w", err)
	}
	arows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("listing associations: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		var title, prof string
		if err := arows.Scan(&title, &prof); err != nil {
			return nil, fmt.Errorf("scanning association: %w", err)
		}
		if i, ok := index[title]; ok {
			out[i].Professions = append(out[i].Professions, prof)
		}
	}
	return out, arows.Err()
}

// ProfessionCounts returns people per profession, largest first. Stale rows for
// deleted people are not counted.
func (r *Repository) ProfessionCounts(ctx context.Context) ([]entities.ProfessionCount, error) {
	sqlStr, args, err := psql.Select("a.profession", "COUNT(1) AS n").
		From("people_to_profession a").
		Join("people p ON p.title = a.title").
		GroupBy("a.profession").
		OrderBy("n DESC", "a.profession").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building SQL for profession counts: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("counting professions: %w", err)
	}
	defer rows.Close()

	var counts []entities.ProfessionCount
	for rows.Next() {
		var c entities.ProfessionCount
		if err := rows.Scan(&c.Profession, &c.People); err != nil {
			return nil, fmt.Errorf("scanning profession count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ProfessionMembers returns the titles associated with profession.
func (r *Repository) ProfessionMembers(ctx context.Context, profession string) ([]string, error) {
	return queryStrings(ctx, r.db,
		psql.Select("a.title").
			From("people_to_profession a").
			Join("people p ON p.title = a.title").
			Where(sq.Eq{"a.profession": profession}).
			OrderBy("a.title"),
		"listing profession members")
}

// PendingImages returns titles whose portrait was never looked up.
func (r *Repository) PendingImages(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, r.db,
		psql.Select("title").
			From("people").
			Where(sq.Eq{"image_fname": nil}).
			OrderBy("title"),
		"listing pending images")
}

// SetImageOutcome records the portrait lookup result for a person.
func (r *Repository) SetImageOutcome(ctx context.Context, title string, outcome entities.ImageOutcome) error {
	n, err := exec(ctx, r.db,
		psql.Update("people").
			Set("image_fname", encodeImage(outcome)).
			Where(sq.Eq{"title": title}),
		"updating image")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("person not found: %s", title)
	}
	return nil
}

// ListSummaries returns every person with a non-empty summary.
func (r *Repository) ListSummaries(ctx context.Context) ([]entities.PersonSummary, error) {
	sqlStr, args, err := psql.Select("title", "birth_year", "summary").
		From("people").
		Where(sq.And{sq.NotEq{"summary": nil}, sq.NotEq{"summary": ""}}).
		OrderBy("title").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building SQL for listing summaries: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}
	defer rows.Close()

	var out []entities.PersonSummary
	for rows.Next() {
		var (
			s    entities.PersonSummary
			code int
		)
		if err := rows.Scan(&s.Title, &code, &s.Summary); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		s.BirthYear = entities.BirthYearFromCode(code)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Summarize reports dataset totals and image outcome tallies.
func (r *Repository) Summarize(ctx context.Context) (*entities.DatasetSummary, error) {
	summary := &entities.DatasetSummary{ImageFailures: make(map[entities.FailureReason]int)}

	var err error
	if summary.People, err = countPeople(ctx, r.db); err != nil {
		return nil, err
	}

	live := psql.Select().
		From("people_to_profession a").
		Join("people p ON p.title = a.title")
	if summary.Associations, err = countRows(ctx, r.db, live.Column("COUNT(1)"), "counting associations"); err != nil {
		return nil, err
	}
	if summary.Professions, err = countRows(ctx, r.db, live.Column("COUNT(DISTINCT a.profession)"), "counting professions"); err != nil {
		return nil, err
	}

	sqlStr, args, err := psql.Select("image_fname").From("people").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building SQL for image tallies: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("tallying images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var image sql.NullString
		if err := rows.Scan(&image); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		switch o := decodeImage(image); o.Status {
		case entities.ImageNotAttempted:
			summary.ImagesPending++
		case entities.ImageSuccess:
			summary.ImagesSaved++
		default:
			summary.ImageFailures[o.Reason]++
		}
	}
	return summary, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPerson reads a row selected with personColumns.
func scanPerson(row rowScanner) (entities.Person, error) {
	var (
		p       entities.Person
		code    int
		summary sql.NullString
		image   sql.NullString
	)
	if err := row.Scan(&p.Title, &code, &p.ReferenceCount, &summary, &image); err != nil {
		return p, fmt.Errorf("scanning person: %w", err)
	}
	p.BirthYear = entities.BirthYearFromCode(code)
	p.Summary = summary.String
	p.Image = decodeImage(image)
	return p, nil
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
