package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
	"github.com/ersonp/wikipeople/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

// seed inserts people in one transaction.
func seed(t *testing.T, repo *Repository, people ...entities.Person) {
	t.Helper()
	err := repo.WithTx(context.Background(), func(tx ports.PersonTx) error {
		for _, p := range people {
			if _, err := tx.InsertPerson(context.Background(), p); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

// classify rebuilds associations from rules with the default window.
func classify(t *testing.T, repo *Repository, rules ...entities.KeywordRule) {
	t.Helper()
	err := repo.WithTx(context.Background(), func(tx ports.PersonTx) error {
		if err := tx.DeleteAssociations(context.Background()); err != nil {
			return err
		}
		for _, r := range rules {
			if _, err := tx.Associate(context.Background(), r, config.DefaultSummaryWindow); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func person(title string, refs int, summary string) entities.Person {
	return entities.Person{
		Title:          title,
		BirthYear:      entities.KnownYear(1980),
		ReferenceCount: refs,
		Summary:        summary,
		Image:          entities.NotAttempted(),
	}
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
		assert.Equal(t, ":memory:", repo.Path())
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	tables := []string{"people", "people_to_profession", "runs"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}

	// Should not error when called again
	require.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestRepository_WithTx(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		seed(t, repo, person("Alice", 500, "Alice is a queen."))

		n, err := repo.CountPeople(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := repo.WithTx(ctx, func(tx ports.PersonTx) error {
			if _, err := tx.InsertPerson(ctx, person("Bob", 50, "")); err != nil {
				return err
			}
			n, err := tx.CountPeople(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			return boom
		})
		require.ErrorIs(t, err, boom)

		n, err := repo.CountPeople(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestRepository_InsertPerson_FirstWriteWins(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	var inserted []bool
	err := repo.WithTx(ctx, func(tx ports.PersonTx) error {
		for _, p := range []entities.Person{
			person("Alice", 500, "first"),
			person("Alice", 9000, "second"),
		} {
			ok, err := tx.InsertPerson(ctx, p)
			if err != nil {
				return err
			}
			inserted = append(inserted, ok)
		}

		exists, err := tx.PersonExists(ctx, "Alice")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = tx.PersonExists(ctx, "Nobody")
		require.NoError(t, err)
		assert.False(t, exists)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, inserted)

	found, err := repo.FindPerson(ctx, "Alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 500, found.ReferenceCount)
	assert.Equal(t, "first", found.Summary)
	assert.Equal(t, entities.NotAttempted(), found.Image)
}

func TestRepository_BirthYearRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	p := person("Anonymous", 40, "")
	p.BirthYear = entities.UnknownYear(entities.BirthMissingLiving)
	q := person("Cicero", 40, "")
	q.BirthYear = entities.KnownYear(-106)
	seed(t, repo, p, q)

	found, err := repo.FindPerson(ctx, "Anonymous")
	require.NoError(t, err)
	assert.Equal(t, entities.UnknownYear(entities.BirthMissingLiving), found.BirthYear)

	var stored int
	require.NoError(t, repo.db.QueryRow(`SELECT birth_year FROM people WHERE title = 'Anonymous'`).Scan(&stored))
	assert.Equal(t, 3000, stored)

	found, err = repo.FindPerson(ctx, "Cicero")
	require.NoError(t, err)
	assert.Equal(t, entities.KnownYear(-106), found.BirthYear)
}

func TestRepository_Associate(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		keyword string
		window  int
		matches bool
	}{
		{name: "space-anchored match", summary: "Alice was a queen of France.", keyword: "queen", window: 300, matches: true},
		{name: "prefix of a longer word still matches", summary: "Alice was queenly.", keyword: "queen", window: 300, matches: true},
		{name: "inside a word does not match", summary: "Alice was a vicequeen.", keyword: "queen", window: 300, matches: false},
		{name: "case-sensitive", summary: "Alice was a Queen.", keyword: "queen", window: 300, matches: false},
		{name: "keyword at start without space", summary: "queen Alice", keyword: "queen", window: 300, matches: false},
		{name: "within window", summary: "ab queen xyz", keyword: "queen", window: 10, matches: true},
		{name: "cut by window", summary: "ab queen xyz", keyword: "queen", window: 6, matches: false},
		{name: "percent is literal", summary: "Alice owns 100% of it.", keyword: "%", window: 300, matches: false},
		{name: "underscore is literal", summary: "snake_case fan", keyword: "_", window: 300, matches: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupTestRepo(t)
			ctx := context.Background()
			seed(t, repo, person("Alice", 100, tt.summary))

			var n int
			err := repo.WithTx(ctx, func(tx ports.PersonTx) error {
				var err error
				n, err = tx.Associate(ctx, entities.KeywordRule{Keyword: tt.keyword, Profession: "p"}, tt.window)
				return err
			})
			require.NoError(t, err)

			if tt.matches {
				assert.Equal(t, 1, n)
			} else {
				assert.Zero(t, n)
			}
		})
	}
}

func TestRepository_Associate_IgnoresDuplicateEdges(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo, person("Alice", 100, "Alice was a queen and a monarch."))

	classify(t, repo,
		entities.KeywordRule{Keyword: "queen", Profession: "royalty"},
		entities.KeywordRule{Keyword: "monarch", Profession: "royalty"},
	)

	found, err := repo.FindPerson(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"royalty"}, found.Professions)
}

func TestRepository_RebuildIsDeterministic(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo,
		person("Alice", 100, "Alice was a queen and poet."),
		person("Bob", 100, "Bob was a poet."),
		person("Carol", 100, "Carol was a painter."),
	)
	rules := []entities.KeywordRule{
		{Keyword: "queen", Profession: "royalty"},
		{Keyword: "poet", Profession: "writer"},
		{Keyword: "painter", Profession: "artist"},
	}

	snapshot := func() []entities.ProfessionCount {
		counts, err := repo.ProfessionCounts(ctx)
		require.NoError(t, err)
		return counts
	}

	classify(t, repo, rules...)
	first := snapshot()
	classify(t, repo, rules...)
	assert.Equal(t, first, snapshot())

	assert.Equal(t, []entities.ProfessionCount{
		{Profession: "writer", People: 2},
		{Profession: "artist", People: 1},
		{Profession: "royalty", People: 1},
	}, first)
}

func TestRepository_DeleteByProfession(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo,
		person("Low Poet Queen", 5, "She was a poet and queen."),
		person("High Poet", 50, "He was a poet."),
		person("Low Painter", 5, "He was a painter."),
	)
	classify(t, repo,
		entities.KeywordRule{Keyword: "poet", Profession: "writer"},
		entities.KeywordRule{Keyword: "queen", Profession: "royalty"},
		entities.KeywordRule{Keyword: "painter", Profession: "artist"},
	)

	var removed int
	err := repo.WithTx(ctx, func(tx ports.PersonTx) error {
		var err error
		removed, err = tx.DeleteByProfession(ctx, "writer", 10)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	gone, err := repo.FindPerson(ctx, "Low Poet Queen")
	require.NoError(t, err)
	assert.Nil(t, gone, "per-profession pruning ignores other professions")

	kept, err := repo.FindPerson(ctx, "Low Painter")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestRepository_DeleteBySoleProfession(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo,
		person("Two Jobs", 5, "A poet and painter."),
		person("One Job", 5, "A poet."),
		person("Famous", 500, "A poet."),
	)
	classify(t, repo,
		entities.KeywordRule{Keyword: "poet", Profession: "writer"},
		entities.KeywordRule{Keyword: "painter", Profession: "artist"},
	)

	var removed int
	err := repo.WithTx(ctx, func(tx ports.PersonTx) error {
		var err error
		removed, err = tx.DeleteBySoleProfession(ctx, "writer", 10)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	for title, present := range map[string]bool{"Two Jobs": true, "One Job": false, "Famous": true} {
		found, err := repo.FindPerson(ctx, title)
		require.NoError(t, err)
		assert.Equal(t, present, found != nil, title)
	}
}

func TestRepository_Reports(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo,
		person("Alice", 100, "Alice was a queen."),
		person("Bob", 100, "Bob was a king."),
		person("Carol", 100, ""),
	)
	classify(t, repo,
		entities.KeywordRule{Keyword: "queen", Profession: "royalty"},
		entities.KeywordRule{Keyword: "king", Profession: "royalty"},
	)

	members, err := repo.ProfessionMembers(ctx, "royalty")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, members)

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Alice", summaries[0].Title)

	pending, err := repo.PendingImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, pending)

	require.NoError(t, repo.SetImageOutcome(ctx, "Alice", entities.ImageSaved("out/images/Alice.jpg")))
	require.NoError(t, repo.SetImageOutcome(ctx, "Bob", entities.ImageFailed(entities.FailureNoInfobox, "")))

	pending, err = repo.PendingImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Carol"}, pending)

	summary, err := repo.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.People)
	assert.Equal(t, 2, summary.Associations)
	assert.Equal(t, 1, summary.Professions)
	assert.Equal(t, 1, summary.ImagesPending)
	assert.Equal(t, 1, summary.ImagesSaved)
	assert.Equal(t, 1, summary.ImageFailures[entities.FailureNoInfobox])

	missing, err := repo.FindPerson(ctx, "Nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_ListPeople(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo,
		person("Carol", 100, "Carol was a poet and queen."),
		person("Alice", 100, "Alice was a queen."),
		person("Bob", 100, "Bob was a baker."),
	)
	classify(t, repo,
		entities.KeywordRule{Keyword: "queen", Profession: "royalty"},
		entities.KeywordRule{Keyword: "poet", Profession: "writer"},
	)

	all, err := repo.ListPeople(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alice", all[0].Title)
	assert.Equal(t, []string{"royalty"}, all[0].Professions)
	assert.Empty(t, all[1].Professions)
	assert.Equal(t, []string{"royalty", "writer"}, all[2].Professions)
	assert.Equal(t, entities.KnownYear(1980), all[2].BirthYear)

	royals, err := repo.ListPeople(ctx, "royalty")
	require.NoError(t, err)
	require.Len(t, royals, 2)
	assert.Equal(t, "Carol", royals[1].Title)
	assert.Equal(t, []string{"royalty", "writer"}, royals[1].Professions, "other professions are kept")

	none, err := repo.ListPeople(ctx, "athlete")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_SetImageOutcome_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.SetImageOutcome(context.Background(), "Nobody", entities.ImageSaved("x.jpg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "person not found")
}

func TestRepository_StaleAssociationsAreNotCounted(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo, person("Alice", 5, "Alice was a queen."))
	classify(t, repo, entities.KeywordRule{Keyword: "queen", Profession: "royalty"})

	err := repo.WithTx(ctx, func(tx ports.PersonTx) error {
		_, err := tx.DeleteByProfession(ctx, "royalty", 10)
		return err
	})
	require.NoError(t, err)

	counts, err := repo.ProfessionCounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestRepository_Runs(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	timeNow = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	t.Cleanup(func() { timeNow = time.Now })

	require.NoError(t, repo.LogRun(ctx, entities.RunIngest, map[string]any{"inserted": 3}))
	require.NoError(t, repo.LogRun(ctx, entities.RunClassify, nil))
	require.NoError(t, repo.LogRun(ctx, entities.RunPrune, map[string]any{"before": 10, "after": 7}))

	runs, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, entities.RunPrune, runs[0].Action)
	assert.Equal(t, float64(7), runs[0].Details["after"])
	assert.Equal(t, entities.RunClassify, runs[1].Action)
	assert.Nil(t, runs[1].Details)
	assert.NotEmpty(t, runs[0].ID)
}
