package sqlite

import (
	"database/sql"
	"strings"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// The image_fname column holds NULL (never attempted), a file path, or one of the
// failure strings below. The strings match datasets produced by earlier tooling,
// which also stored the raw image URL when a download failed.
const (
	colNoInfobox        = "no infobox"
	colNoImageAvailable = "no image available"
	colBadEnd           = "bad end"
	colBadURL           = "bad url"
	colBadSuffix        = "bad suffix"
	colFetchError       = "fetch error"
	colSaveError        = "save error"
)

// encodeImage returns nil for NotAttempted and the column text otherwise.
func encodeImage(o entities.ImageOutcome) any {
	switch o.Status {
	case entities.ImageSuccess:
		return o.Path
	case entities.ImageFailure:
		return encodeFailure(o)
	default:
		return nil
	}
}

func encodeFailure(o entities.ImageOutcome) string {
	switch o.Reason {
	case entities.FailureNoInfobox:
		return colNoInfobox
	case entities.FailureNoImageAvailable:
		return colNoImageAvailable
	case entities.FailureBadEnd:
		return withDetail(colBadEnd, o.Detail)
	case entities.FailureBadURL:
		return colBadURL
	case entities.FailureBadSuffix:
		return withDetail(colBadSuffix, o.Detail)
	case entities.FailureSave:
		return withDetail(colSaveError, o.Detail)
	default:
		if isURL(o.Detail) {
			return o.Detail
		}
		return withDetail(colFetchError, o.Detail)
	}
}

func decodeImage(v sql.NullString) entities.ImageOutcome {
	if !v.Valid {
		return entities.NotAttempted()
	}

	s := v.String
	switch {
	case s == colNoInfobox:
		return entities.ImageFailed(entities.FailureNoInfobox, "")
	case s == colNoImageAvailable:
		return entities.ImageFailed(entities.FailureNoImageAvailable, "")
	case s == colBadURL:
		return entities.ImageFailed(entities.FailureBadURL, "")
	case hasTag(s, colBadEnd):
		return entities.ImageFailed(entities.FailureBadEnd, detailOf(s, colBadEnd))
	case hasTag(s, colBadSuffix):
		return entities.ImageFailed(entities.FailureBadSuffix, detailOf(s, colBadSuffix))
	case hasTag(s, colSaveError):
		return entities.ImageFailed(entities.FailureSave, detailOf(s, colSaveError))
	case hasTag(s, colFetchError):
		return entities.ImageFailed(entities.FailureFetch, detailOf(s, colFetchError))
	case isURL(s):
		return entities.ImageFailed(entities.FailureFetch, s)
	default:
		return entities.ImageSaved(s)
	}
}

func withDetail(tag, detail string) string {
	if detail == "" {
		return tag
	}
	return tag + ": " + detail
}

func hasTag(s, tag string) bool {
	return s == tag || strings.HasPrefix(s, tag+": ")
}

func detailOf(s, tag string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, tag), ": ")
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "https:") || strings.HasPrefix(s, "http:")
}
