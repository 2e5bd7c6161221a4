package entities

// Candidate is a person found in a birth category before retention filtering.
type Candidate struct {
	Title          string
	ReferenceCount int
	BirthYear      BirthYear
}

// KeywordRule maps a summary keyword onto a profession label.
type KeywordRule struct {
	Keyword    string
	Profession string
}
