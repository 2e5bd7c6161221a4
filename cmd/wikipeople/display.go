package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ersonp/wikipeople/internal/application/handlers"
	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/services"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

func displayRunResult(w io.Writer, result *handlers.RunResult) {
	table := newTable(w, "Year", "Candidates", "Inserted", "Low refs", "Already had", "Malformed")
	for _, y := range result.Years {
		members := strconv.Itoa(y.Scan.Members)
		if y.Scan.Skipped {
			members = "cached"
		}
		table.Append([]string{
			y.Year.String(),
			members,
			strconv.Itoa(y.Ingest.Inserted),
			strconv.Itoa(y.Ingest.SkippedLowRef),
			strconv.Itoa(y.Ingest.AlreadyHad),
			strconv.Itoa(y.Ingest.Malformed),
		})
	}
	table.Render()

	if f := result.Filter; f != nil {
		fmt.Fprintf(w, "\nPeople: %d -> %d (%d by profession, %d by sole profession)\n",
			f.Before, f.After, f.RemovedByProfession, f.RemovedBySole)
	}
	if img := result.Images; img != nil {
		fmt.Fprintf(w, "Portraits: %d downloaded, %d already on disk, %d failed\n",
			img.Downloaded, img.Cached, img.Failed)
	}
}

func displayIngestResult(w io.Writer, source string, result *services.IngestResult) {
	fmt.Fprintf(w, "%s: %d inserted, %d below reference threshold, %d already stored",
		source, result.Inserted, result.SkippedLowRef, result.AlreadyHad)
	if result.Malformed > 0 {
		fmt.Fprintf(w, ", %d malformed lines", result.Malformed)
	}
	fmt.Fprintf(w, "\n%d people stored\n", result.Total)
}

func displayProfessionCounts(w io.Writer, counts []entities.ProfessionCount) {
	table := newTable(w, "Profession", "People")
	for _, c := range counts {
		table.Append([]string{c.Profession, strconv.Itoa(c.People)})
	}
	table.Render()
}

func displayPerson(w io.Writer, p *entities.PersonDetails) {
	fmt.Fprintf(w, "Title: %s\n", p.Title)
	fmt.Fprintf(w, "  Born: %s\n", p.BirthYear)
	fmt.Fprintf(w, "  References: %d\n", p.ReferenceCount)
	if len(p.Professions) > 0 {
		fmt.Fprintf(w, "  Professions: %s\n", strings.Join(p.Professions, ", "))
	}
	fmt.Fprintf(w, "  Portrait: %s\n", p.Image)
	if p.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", p.Summary)
	}
}

func displaySummary(w io.Writer, s *entities.DatasetSummary) {
	table := newTable(w, "", "Count")
	table.Append([]string{"People", strconv.Itoa(s.People)})
	table.Append([]string{"Professions", strconv.Itoa(s.Professions)})
	table.Append([]string{"Associations", strconv.Itoa(s.Associations)})
	table.Append([]string{"Portraits saved", strconv.Itoa(s.ImagesSaved)})
	table.Append([]string{"Portraits pending", strconv.Itoa(s.ImagesPending)})
	for _, reason := range slices.Sorted(maps.Keys(s.ImageFailures)) {
		table.Append([]string{"Failed: " + string(reason), strconv.Itoa(s.ImageFailures[reason])})
	}
	table.Render()
}

func displayHistory(w io.Writer, runs []entities.RunEntry) {
	table := newTable(w, "When", "Action", "Details")
	for _, r := range runs {
		table.Append([]string{
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Action,
			formatDetails(r.Details),
		})
	}
	table.Render()
}

func displaySimilar(w io.Writer, hits []entities.SimilarPerson) {
	table := newTable(w, "Title", "Born", "Score")
	for _, h := range hits {
		table.Append([]string{h.Title, h.BirthYear.String(), fmt.Sprintf("%.3f", h.Score)})
	}
	table.Render()
}

// formatDetails renders run details as sorted key=value pairs.
func formatDetails(details map[string]any) string {
	parts := make([]string, 0, len(details))
	for _, k := range slices.Sorted(maps.Keys(details)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, details[k]))
	}
	return strings.Join(parts, " ")
}
