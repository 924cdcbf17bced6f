package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"ordercore/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	numberPrefix     = "ORD"
	numberDateLayout = "20060102"
	numberSuffixLen  = 8
)

var numberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-Z]{8}$`)

// Number is the human-readable order identifier, ORD-<yyyymmdd>-<8 upper-case chars>.
type Number struct {
	value string
}

// NumberGenerator produces a candidate number for the given instant.
// Candidates may collide; callers check uniqueness before persisting.
type NumberGenerator func(now time.Time) Number

// GenerateNumber builds a candidate from the UTC date and a random suffix taken from a
// version 4 UUID.
func GenerateNumber(now time.Time) Number {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Number{value: formatNumber(now, strings.ToUpper(hex[:numberSuffixLen]))}
}

// NewNumber builds a number from an explicit suffix.
func NewNumber(now time.Time, suffix string) (Number, error) {
	return ParseNumber(formatNumber(now, suffix))
}

// ParseNumber validates the textual form.
func ParseNumber(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"order number",
			fmt.Errorf("%q does not match %s-YYYYMMDD-XXXXXXXX", s, numberPrefix),
		)
	}
	return Number{value: s}, nil
}

func (n Number) String() string {
	return n.value
}

func (n Number) IsEmpty() bool {
	return n.value == ""
}

func formatNumber(now time.Time, suffix string) string {
	return fmt.Sprintf("%s-%s-%s", numberPrefix, now.UTC().Format(numberDateLayout), suffix)
}
