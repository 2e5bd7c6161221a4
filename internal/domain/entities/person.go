// Package entities contains core domain data structures.
package entities

// Person is a retained encyclopedia subject. Title is the unique key.
type Person struct {
	Title          string       `json:"title"`
	BirthYear      BirthYear    `json:"birth_year"`
	ReferenceCount int          `json:"reference_count"` // Citation volume at ingestion time, never re-measured
	Summary        string       `json:"summary"`
	Image          ImageOutcome `json:"image"`
}

// PersonDetails is a person together with its current profession associations.
type PersonDetails struct {
	Person
	Professions []string `json:"professions"`
}

// PersonSummary is the slice of a person needed for semantic indexing.
type PersonSummary struct {
	Title     string
	BirthYear BirthYear
	Summary   string
}

// SimilarPerson is a semantic search hit.
type SimilarPerson struct {
	Title     string    `json:"title"`
	BirthYear BirthYear `json:"birth_year"`
	Score     float32   `json:"score"`
}
