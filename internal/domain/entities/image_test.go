package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageOutcome_Attempted(t *testing.T) {
	assert.False(t, NotAttempted().Attempted())
	assert.True(t, ImageSaved("images/Alice.jpg").Attempted())
	assert.True(t, ImageFailed(FailureNoInfobox, "").Attempted())
}

func TestImageOutcome_String(t *testing.T) {
	tests := []struct {
		name     string
		outcome  ImageOutcome
		expected string
	}{
		{name: "not attempted", outcome: NotAttempted(), expected: "not attempted"},
		{name: "saved", outcome: ImageSaved("images/Alice.jpg"), expected: "images/Alice.jpg"},
		{name: "failure without detail", outcome: ImageFailed(FailureBadURL, ""), expected: "bad url"},
		{name: "failure with detail", outcome: ImageFailed(FailureBadSuffix, "svg"), expected: "bad suffix: svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.outcome.String())
		})
	}
}

func TestIsSupportedImageSuffix(t *testing.T) {
	for _, s := range []string{"jpg", "JPG", "png", "PNG", "jpeg", "JPEG"} {
		assert.True(t, IsSupportedImageSuffix(s), s)
	}
	for _, s := range []string{"Jpg", "svg", "gif", "webp", ""} {
		assert.False(t, IsSupportedImageSuffix(s), s)
	}
}
