package sqlite

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

func TestImageColumn_RoundTrip(t *testing.T) {
	outcomes := []entities.ImageOutcome{
		entities.NotAttempted(),
		entities.ImageSaved("output/images/Alice.jpg"),
		entities.ImageFailed(entities.FailureNoInfobox, ""),
		entities.ImageFailed(entities.FailureNoImageAvailable, ""),
		entities.ImageFailed(entities.FailureBadEnd, `<img src="//upload`),
		entities.ImageFailed(entities.FailureBadURL, ""),
		entities.ImageFailed(entities.FailureBadSuffix, "svg"),
		entities.ImageFailed(entities.FailureFetch, "https://upload.wikimedia.org/wikipedia/commons/a/a.jpg"),
		entities.ImageFailed(entities.FailureFetch, "connection reset"),
		entities.ImageFailed(entities.FailureSave, "writing image: file name too long"),
	}

	for _, o := range outcomes {
		t.Run(o.String(), func(t *testing.T) {
			var col sql.NullString
			if v := encodeImage(o); v != nil {
				col = sql.NullString{String: v.(string), Valid: true}
			}
			assert.Equal(t, o, decodeImage(col))
		})
	}
}

func TestImageColumn_LegacyValues(t *testing.T) {
	tests := []struct {
		stored   string
		expected entities.ImageOutcome
	}{
		{"no infobox", entities.ImageFailed(entities.FailureNoInfobox, "")},
		{"no image available", entities.ImageFailed(entities.FailureNoImageAvailable, "")},
		{"bad url", entities.ImageFailed(entities.FailureBadURL, "")},
		{"bad suffix: gif", entities.ImageFailed(entities.FailureBadSuffix, "gif")},
		{"bad end:  src=\"//upload.wikimedia.org/x", entities.ImageFailed(entities.FailureBadEnd, " src=\"//upload.wikimedia.org/x")},
		{"https://upload.wikimedia.org/a.png", entities.ImageFailed(entities.FailureFetch, "https://upload.wikimedia.org/a.png")},
		{"output/images/Bob.png", entities.ImageSaved("output/images/Bob.png")},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeImage(sql.NullString{String: tt.stored, Valid: true}))
		})
	}
}

func TestImageColumn_EncodesLegacyStrings(t *testing.T) {
	assert.Nil(t, encodeImage(entities.NotAttempted()))
	assert.Equal(t, "no infobox", encodeImage(entities.ImageFailed(entities.FailureNoInfobox, "")))
	assert.Equal(t, "bad suffix: gif", encodeImage(entities.ImageFailed(entities.FailureBadSuffix, "gif")))
	assert.Equal(t, "https://x/y.jpg", encodeImage(entities.ImageFailed(entities.FailureFetch, "https://x/y.jpg")))
}
