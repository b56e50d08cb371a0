package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Institutional roll number format: batch prefix, branch code, serial
	RollNumberPattern = `^22[A-Z]{3}\d{4}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	RollNumber *regexp.Regexp
}{
	RollNumber: regexp.MustCompile(RollNumberPattern),
}

// IsValidRollNumber reports whether the roll number matches the
// institutional format.
func IsValidRollNumber(rollNumber string) bool {
	return CompiledPatterns.RollNumber.MatchString(rollNumber)
}
