package main

import (
	"github.com/ersonp/wikipeople/internal/application/handlers"
	"github.com/ersonp/wikipeople/internal/domain/services"
)

// Default limits for CLI commands.
const (
	DefaultSimilarLimit = services.DefaultSimilarLimit
	DefaultHistoryLimit = handlers.DefaultHistoryLimit
)

const yearCodeHelp = "Years are calendar years (negative for BC); 3000, 3001 and 3002 select " +
	"the missing (living), missing and unknown birth year buckets."
