package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}

type exportFlags struct {
	format     string
	output     string
	profession string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored people to file",
		Long:  "Exports people with their professions and portrait outcome to JSON, CSV, or markdown format.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&flags.profession, "profession", "p", "", "Only export members of this profession")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	return withDeps(cmd.Context(), func(deps *Deps) error {
		people, err := deps.Reports.People(cmd.Context(), flags.profession)
		if err != nil {
			return fmt.Errorf("listing people: %w", err)
		}
		if len(people) == 0 {
			return fmt.Errorf("no people found to export")
		}

		return exportPeople(cmd.OutOrStdout(), flags, people)
	})
}

func exportPeople(stdout io.Writer, flags exportFlags, people []entities.PersonDetails) (err error) {
	w := stdout
	if flags.output != "" {
		var f *os.File
		f, err = os.OpenFile(flags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := formatPeople(w, flags.format, people); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if flags.output != "" {
		fmt.Fprintf(stdout, "Exported %d people to %s\n", len(people), flags.output)
	}

	return nil
}

func formatPeople(w io.Writer, format string, people []entities.PersonDetails) error {
	switch format {
	case "json":
		return formatJSON(w, people)
	case "csv":
		return formatCSV(w, people)
	case "markdown":
		return formatMarkdown(w, people)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatJSON(w io.Writer, people []entities.PersonDetails) error {
	if people == nil {
		people = []entities.PersonDetails{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(people)
}

func formatCSV(w io.Writer, people []entities.PersonDetails) error {
	writer := csv.NewWriter(w)

	header := []string{"title", "birth_year", "reference_count", "professions", "image", "summary"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range people {
		row := []string{
			p.Title,
			strconv.Itoa(p.BirthYear.Code()),
			strconv.Itoa(p.ReferenceCount),
			strings.Join(p.Professions, ";"),
			p.Image.String(),
			p.Summary,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, people []entities.PersonDetails) error {
	if _, err := fmt.Fprintf(w, "# Notable People\n\nTotal: %d people\n\n", len(people)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Title | Born | References | Professions | Portrait |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|-------|------|------------|-------------|----------|\n"); err != nil {
		return err
	}

	for _, p := range people {
		portrait := p.Image.String()
		if len(portrait) > 40 {
			portrait = "..." + portrait[len(portrait)-37:]
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %d | %s | %s |\n",
			escapeMarkdown(p.Title),
			p.BirthYear,
			p.ReferenceCount,
			escapeMarkdown(strings.Join(p.Professions, ", ")),
			escapeMarkdown(portrait),
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
