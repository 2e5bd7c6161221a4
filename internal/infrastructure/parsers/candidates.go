package parsers

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// reCandidateLine matches "<ref_count> <year> |<title>".
var reCandidateLine = regexp.MustCompile(`^(\d+) (-?\d+) \|(.+)$`)

// maxLineBytes bounds a single candidate line.
const maxLineBytes = 1 << 20

// FormatCandidate renders c as one candidate line, newline included.
func FormatCandidate(c entities.Candidate) string {
	return fmt.Sprintf("%d %d |%s\n", c.ReferenceCount, c.BirthYear.Code(), c.Title)
}

// ParseCandidate parses a single candidate line without its newline.
func ParseCandidate(line string) (entities.Candidate, error) {
	m := reCandidateLine.FindStringSubmatch(line)
	if m == nil {
		return entities.Candidate{}, &FormatError{Text: line, Reason: "not in the candidate format"}
	}

	refs, err := strconv.Atoi(m[1])
	if err != nil {
		return entities.Candidate{}, &FormatError{Text: line, Reason: "reference count out of range"}
	}
	code, err := strconv.Atoi(m[2])
	if err != nil {
		return entities.Candidate{}, &FormatError{Text: line, Reason: "year out of range"}
	}

	return entities.Candidate{
		Title:          m[3],
		ReferenceCount: refs,
		BirthYear:      entities.BirthYearFromCode(code),
	}, nil
}

// ReadCandidates yields the candidates in r lazily. A malformed line yields a
// *FormatError carrying its line number and the sequence continues. A read
// failure yields a plain error and ends the sequence.
func ReadCandidates(r io.Reader) iter.Seq2[entities.Candidate, error] {
	return func(yield func(entities.Candidate, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := strings.TrimRight(scanner.Text(), "\r")
			if line == "" {
				continue
			}

			c, err := ParseCandidate(line)
			if err != nil {
				if fe, ok := err.(*FormatError); ok {
					fe.Line = lineNum
				}
				if !yield(entities.Candidate{}, err) {
					return
				}
				continue
			}
			if !yield(c, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(entities.Candidate{}, fmt.Errorf("reading candidates: %w", err))
		}
	}
}
