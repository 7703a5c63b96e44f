package weight

import (
	"fmt"
	"math"
	"regexp"

	"github.com/cognicore/wordmask/pkg/wordmask/internalerr"
)

// Override asks that all occurrences of tokens matching Pattern
// collectively receive Weight before normalization.
type Override struct {
	Pattern string  `yaml:"pattern"`
	Weight  float64 `yaml:"weight"`
}

// Rule is a compiled override. Matching is anchored at the token start.
type Rule struct {
	Override
	re *regexp.Regexp
}

// Matches reports whether the rule applies to token
func (r Rule) Matches(token string) bool {
	return r.re.MatchString(token)
}

// Compile validates and compiles overrides, preserving their order.
func Compile(overrides []Override) ([]Rule, error) {
	rules := make([]Rule, 0, len(overrides))
	for i, o := range overrides {
		if math.IsNaN(o.Weight) || math.IsInf(o.Weight, 0) || o.Weight < 0 {
			return nil, fmt.Errorf("%w: override %d (%q): weight must be a finite non-negative number, got %v",
				internalerr.ErrInvalidConfig, i, o.Pattern, o.Weight)
		}
		re, err := regexp.Compile(`^(?:` + o.Pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("%w: override %d: %v", internalerr.ErrInvalidConfig, i, err)
		}
		rules = append(rules, Rule{Override: o, re: re})
	}
	return rules, nil
}
