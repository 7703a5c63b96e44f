package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordmask/pkg/wordmask/internalerr"
	"github.com/cognicore/wordmask/pkg/wordmask/weight"
)

// DefaultWordsToHide is the number of occurrences redacted when unset
const DefaultWordsToHide = 10

// Settings is the run configuration
type Settings struct {
	WordsToHide int               `yaml:"words_to_hide"`
	Seed        *uint64           `yaml:"seed,omitempty"`
	Mask        string            `yaml:"mask"`
	HTML        bool              `yaml:"html"`
	Overrides   []weight.Override `yaml:"overrides"`
}

// Defaults returns settings used when no file or flag says otherwise
func Defaults() Settings {
	return Settings{
		WordsToHide: DefaultWordsToHide,
		Mask:        "*",
	}
}

// LoadSettings reads a YAML settings file on top of Defaults
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read config: %v", internalerr.ErrInvalidConfig, err)
	}

	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: parse config %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	return &s, nil
}

// Validate checks scalar settings. Override patterns are checked when compiled.
func (s Settings) Validate() error {
	if s.WordsToHide < 0 {
		return fmt.Errorf("%w: words to hide must be non-negative, got %d", internalerr.ErrInput, s.WordsToHide)
	}
	if utf8.RuneCountInString(s.Mask) != 1 {
		return fmt.Errorf("%w: mask must be a single character, got %q", internalerr.ErrInvalidConfig, s.Mask)
	}
	if r := s.MaskRune(); !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return fmt.Errorf("%w: mask must be a visible character, got %q", internalerr.ErrInvalidConfig, s.Mask)
	}
	return nil
}

// MaskRune returns the first rune of Mask
func (s Settings) MaskRune() rune {
	r, _ := utf8.DecodeRuneInString(s.Mask)
	return r
}

// ParseOverride parses "PATTERN=WEIGHT". The split is on the last '=' so
// the pattern itself may contain '='. An empty pattern matches every token,
// as it does in a config file.
func ParseOverride(arg string) (weight.Override, error) {
	i := strings.LastIndex(arg, "=")
	if i < 0 {
		return weight.Override{}, fmt.Errorf("%w: override %q: want PATTERN=WEIGHT", internalerr.ErrInvalidConfig, arg)
	}

	w, err := strconv.ParseFloat(strings.TrimSpace(arg[i+1:]), 64)
	if err != nil {
		return weight.Override{}, fmt.Errorf("%w: override %q: bad weight: %v", internalerr.ErrInvalidConfig, arg, err)
	}

	return weight.Override{Pattern: arg[:i], Weight: w}, nil
}

// ParseOverrides parses each argument in order
func ParseOverrides(args []string) ([]weight.Override, error) {
	out := make([]weight.Override, 0, len(args))
	for _, a := range args {
		o, err := ParseOverride(a)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
