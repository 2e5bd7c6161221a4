package entities

import (
	"fmt"
	"slices"
)

// ImageStatus is the variant tag of an ImageOutcome.
type ImageStatus int

// Image outcome variants.
const (
	ImageNotAttempted ImageStatus = iota
	ImageSuccess
	ImageFailure
)

// FailureReason says why a portrait could not be obtained.
type FailureReason string

// Failure reasons recorded for people whose portrait lookup failed.
const (
	FailureNoInfobox        FailureReason = "no infobox"
	FailureNoImageAvailable FailureReason = "no image available"
	FailureBadEnd           FailureReason = "bad end"
	FailureBadURL           FailureReason = "bad url"
	FailureBadSuffix        FailureReason = "bad suffix"
	FailureFetch            FailureReason = "fetch error"
	FailureSave             FailureReason = "save error"
)

// ImageOutcome records the result of the one-shot portrait lookup for a person.
type ImageOutcome struct {
	Status ImageStatus   `json:"status"`
	Path   string        `json:"path,omitempty"`
	Reason FailureReason `json:"reason,omitempty"`
	Detail string        `json:"detail,omitempty"`
}

// NotAttempted is the outcome of a person whose portrait was never looked up.
func NotAttempted() ImageOutcome {
	return ImageOutcome{Status: ImageNotAttempted}
}

// ImageSaved records a portrait stored at path.
func ImageSaved(path string) ImageOutcome {
	return ImageOutcome{Status: ImageSuccess, Path: path}
}

// ImageFailed records a failed lookup. Detail is free-form context such as the
// offending suffix or URL.
func ImageFailed(reason FailureReason, detail string) ImageOutcome {
	return ImageOutcome{Status: ImageFailure, Reason: reason, Detail: detail}
}

// Attempted reports whether a lookup has already happened.
func (o ImageOutcome) Attempted() bool {
	return o.Status != ImageNotAttempted
}

func (o ImageOutcome) String() string {
	switch o.Status {
	case ImageSuccess:
		return o.Path
	case ImageFailure:
		if o.Detail != "" {
			return fmt.Sprintf("%s: %s", o.Reason, o.Detail)
		}
		return string(o.Reason)
	default:
		return "not attempted"
	}
}

// SupportedImageSuffixes are the portrait file suffixes we download, in lookup order.
var SupportedImageSuffixes = []string{"jpg", "JPG", "png", "PNG", "jpeg", "JPEG"}

// IsSupportedImageSuffix reports whether suffix is one of SupportedImageSuffixes.
// The match is exact; "Jpg" is not supported.
func IsSupportedImageSuffix(suffix string) bool {
	return slices.Contains(SupportedImageSuffixes, suffix)
}
