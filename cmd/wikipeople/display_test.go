package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/wikipeople/internal/application/handlers"
	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/services"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		arg     string
		want    entities.BirthYear
		wantErr bool
	}{
		{arg: "1815", want: entities.KnownYear(1815)},
		{arg: "-106", want: entities.KnownYear(-106)},
		{arg: "3000", want: entities.UnknownYear(entities.BirthMissingLiving)},
		{arg: "3002", want: entities.UnknownYear(entities.BirthUnknown)},
		{arg: "1815AD", wantErr: true},
		{arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseYear(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayProfessionCounts(t *testing.T) {
	var buf bytes.Buffer
	displayProfessionCounts(&buf, []entities.ProfessionCount{
		{Profession: "writer", People: 12},
		{Profession: "royalty", People: 3},
	})

	out := buf.String()
	assert.Contains(t, out, "Profession")
	assert.Contains(t, out, "writer")
	assert.Contains(t, out, "12")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("writer")), bytes.Index(buf.Bytes(), []byte("royalty")))
}

func TestDisplayRunResult(t *testing.T) {
	var buf bytes.Buffer
	displayRunResult(&buf, &handlers.RunResult{
		Years: []handlers.YearResult{
			{
				Year:   entities.KnownYear(-44),
				Scan:   &services.ScanResult{Members: 10},
				Ingest: &services.IngestResult{Inserted: 4, SkippedLowRef: 6},
			},
			{
				Year:   entities.KnownYear(1815),
				Scan:   &services.ScanResult{Skipped: true},
				Ingest: &services.IngestResult{AlreadyHad: 2},
			},
		},
		Filter: &services.FilterReport{Before: 6, After: 5, RemovedByProfession: 1},
	})

	out := buf.String()
	assert.Contains(t, out, "44 BC")
	assert.Contains(t, out, "cached")
	assert.Contains(t, out, "People: 6 -> 5")
	assert.NotContains(t, out, "Portraits")
}

func TestDisplayPerson(t *testing.T) {
	var buf bytes.Buffer
	displayPerson(&buf, &entities.PersonDetails{
		Person: entities.Person{
			Title:          "Ada Lovelace",
			BirthYear:      entities.KnownYear(1815),
			ReferenceCount: 200,
			Summary:        "Ada was a mathematician.",
			Image:          entities.ImageFailed(entities.FailureBadSuffix, "svg"),
		},
		Professions: []string{"scientist", "writer"},
	})

	out := buf.String()
	assert.Contains(t, out, "Born: 1815")
	assert.Contains(t, out, "Professions: scientist, writer")
	assert.Contains(t, out, "Portrait: bad suffix: svg")
	assert.Contains(t, out, "Ada was a mathematician.")
}

func TestDisplaySummary_SortsFailureReasons(t *testing.T) {
	var buf bytes.Buffer
	displaySummary(&buf, &entities.DatasetSummary{
		People: 3,
		ImageFailures: map[entities.FailureReason]int{
			entities.FailureNoInfobox: 2,
			entities.FailureBadSuffix: 1,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Failed: no infobox")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("bad suffix")), bytes.Index(buf.Bytes(), []byte("no infobox")))
}

func TestDisplayHistory(t *testing.T) {
	var buf bytes.Buffer
	displayHistory(&buf, []entities.RunEntry{
		{
			Action:    entities.RunIngest,
			Details:   map[string]any{"source": "year 1815", "inserted": float64(4)},
			CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local),
		},
	})

	out := buf.String()
	assert.Contains(t, out, "2024-03-01 12:00:00")
	assert.Contains(t, out, "inserted=4 source=year 1815")
}

func TestFormatDetails_Empty(t *testing.T) {
	assert.Equal(t, "", formatDetails(nil))
}

func TestInitLogging(t *testing.T) {
	logger := logrus.New()

	initLogging(logger, true, false)
	assert.Equal(t, "debug", logger.GetLevel().String())

	initLogging(logger, true, true)
	assert.Equal(t, "error", logger.GetLevel().String())

	initLogging(logger, false, false)
	assert.Equal(t, "info", logger.GetLevel().String())
}
