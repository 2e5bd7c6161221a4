package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// KeywordParser parses keyword rulesets from CSV with a keyword,profession header.
type KeywordParser struct{}

// KeywordFile loads a keyword ruleset from a CSV file. It implements ports.RuleLoader.
type KeywordFile struct {
	Path string
}

// LoadRules parses the file, returning malformed rows as *FormatError values.
func (f KeywordFile) LoadRules() ([]entities.KeywordRule, []error, error) {
	var p KeywordParser
	rules, problems, err := p.ParseFile(f.Path)
	if err != nil {
		return nil, nil, err
	}

	malformed := make([]error, 0, len(problems))
	for _, fe := range problems {
		malformed = append(malformed, fe)
	}
	return rules, malformed, nil
}

// ParseFile opens path and parses it.
func (p *KeywordParser) ParseFile(path string) ([]entities.KeywordRule, []*FormatError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening keyword ruleset: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads rules from r. Rows missing a keyword or a profession are returned
// as format errors and left out of the rules. Values are used verbatim.
func (p *KeywordParser) Parse(r io.Reader) ([]entities.KeywordRule, []*FormatError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *KeywordParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}

	for _, col := range []string{"keyword", "profession"} {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords collects rules. A row the CSV reader rejects, such as one with a
// stray quote, becomes a format error like any other bad row; only read
// failures of the underlying input are fatal.
func (p *KeywordParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]entities.KeywordRule, []*FormatError, error) {
	var rules []entities.KeywordRule
	var problems []*FormatError

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			problems = append(problems, &FormatError{
				Line:   pe.StartLine,
				Reason: pe.Err.Error(),
			})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading keyword ruleset: %w", err)
		}
		lineNum, _ := reader.FieldPos(0)

		rule := entities.KeywordRule{
			Keyword:    getColumn(record, colIndex, "keyword"),
			Profession: getColumn(record, colIndex, "profession"),
		}
		if rule.Keyword == "" || rule.Profession == "" {
			problems = append(problems, &FormatError{
				Line:   lineNum,
				Text:   strings.Join(record, ","),
				Reason: "keyword and profession are both required",
			})
			continue
		}
		rules = append(rules, rule)
	}

	return rules, problems, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
