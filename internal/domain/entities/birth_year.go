package entities

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// UnknownBirth identifies one of the encyclopedia's "birth year not known" buckets.
type UnknownBirth int

// Unknown birth year kinds. KnownBirth marks a regular year.
const (
	KnownBirth UnknownBirth = iota
	BirthMissingLiving
	BirthMissing
	BirthUnknown
)

// Legacy integer codes for the unknown buckets, kept so that stored rows and
// candidate files written by earlier tooling stay readable.
const (
	codeMissingLiving = 3000
	codeMissing       = 3001
	codeUnknown       = 3002
)

// BirthYear is either a known calendar year (negative for BC) or an unknown bucket.
type BirthYear struct {
	year    int
	unknown UnknownBirth
}

// KnownYear returns a BirthYear for a calendar year. Negative years are BC.
func KnownYear(year int) BirthYear {
	return BirthYear{year: year}
}

// UnknownYear returns a BirthYear for one of the unknown buckets.
func UnknownYear(kind UnknownBirth) BirthYear {
	return BirthYear{unknown: kind}
}

// UnknownYears lists every unknown bucket, in code order.
func UnknownYears() []BirthYear {
	return []BirthYear{
		UnknownYear(BirthMissingLiving),
		UnknownYear(BirthMissing),
		UnknownYear(BirthUnknown),
	}
}

// BirthYearFromCode decodes a stored integer, mapping 3000-3002 to the unknown buckets.
func BirthYearFromCode(code int) BirthYear {
	switch code {
	case codeMissingLiving:
		return UnknownYear(BirthMissingLiving)
	case codeMissing:
		return UnknownYear(BirthMissing)
	case codeUnknown:
		return UnknownYear(BirthUnknown)
	default:
		return KnownYear(code)
	}
}

// Code returns the integer stored in the database and candidate files.
func (b BirthYear) Code() int {
	switch b.unknown {
	case BirthMissingLiving:
		return codeMissingLiving
	case BirthMissing:
		return codeMissing
	case BirthUnknown:
		return codeUnknown
	default:
		return b.year
	}
}

// IsKnown reports whether b is a calendar year.
func (b BirthYear) IsKnown() bool {
	return b.unknown == KnownBirth
}

// Year returns the calendar year and whether it is known.
func (b BirthYear) Year() (int, bool) {
	return b.year, b.IsKnown()
}

// Kind returns the unknown bucket, or KnownBirth.
func (b BirthYear) Kind() UnknownBirth {
	return b.unknown
}

// CategoryName maps the year onto the encyclopedia's birth category.
// The irregular cases (AD prefix below 11, BC suffix, the 0s decade) mirror the
// category names as they exist on the site.
func (b BirthYear) CategoryName() string {
	switch b.unknown {
	case BirthMissingLiving:
		return "Category:Year_of_birth_missing_(living_people)"
	case BirthMissing:
		return "Category:Year_of_birth_missing"
	case BirthUnknown:
		return "Category:Year_of_birth_unknown"
	}

	switch y := b.year; {
	case y > 0 && y < 11:
		return fmt.Sprintf("Category:AD_%d_births", y)
	case y >= 11:
		return fmt.Sprintf("Category:%d_births", y)
	case y < 0:
		return fmt.Sprintf("Category:%d_BC_births", -y)
	default:
		return "Category:0s_births"
	}
}

// FileName is the base name of the year's candidate file.
func (b BirthYear) FileName() string {
	code := b.Code()
	if code < 0 {
		return fmt.Sprintf("bc_%d_births", -code)
	}
	return fmt.Sprintf("%d_births", code)
}

// String renders the year for display.
func (b BirthYear) String() string {
	switch b.unknown {
	case BirthMissingLiving:
		return "missing (living)"
	case BirthMissing:
		return "missing"
	case BirthUnknown:
		return "unknown"
	}
	if b.year < 0 {
		return strconv.Itoa(-b.year) + " BC"
	}
	return strconv.Itoa(b.year)
}

// MarshalJSON encodes the storage code so exports stay comparable with the database.
func (b BirthYear) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Code())
}

// UnmarshalJSON decodes a storage code.
func (b *BirthYear) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	*b = BirthYearFromCode(code)
	return nil
}

// YearToCategoryName maps a year code (including 3000-3002) to its birth category.
func YearToCategoryName(code int) string {
	return BirthYearFromCode(code).CategoryName()
}
