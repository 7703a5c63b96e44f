package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/wordmask/pkg/wordmask/internalerr"
	"github.com/cognicore/wordmask/pkg/wordmask/weight"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordmask.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeConfig(t, `
words_to_hide: 25
seed: 42
mask: "#"
html: true
overrides:
  - pattern: "^the$"
    weight: 0
  - pattern: "[a-c]"
    weight: 0.5
`)

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 25, s.WordsToHide)
	require.NotNil(t, s.Seed)
	assert.Equal(t, uint64(42), *s.Seed)
	assert.Equal(t, '#', s.MaskRune())
	assert.True(t, s.HTML)
	assert.Equal(t, []weight.Override{
		{Pattern: "^the$", Weight: 0},
		{Pattern: "[a-c]", Weight: 0.5},
	}, s.Overrides)
}

func TestLoadSettingsKeepsDefaults(t *testing.T) {
	s, err := LoadSettings(writeConfig(t, "html: true\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultWordsToHide, s.WordsToHide)
	assert.Equal(t, "*", s.Mask)
	assert.Nil(t, s.Seed)
}

func TestLoadSettingsErrors(t *testing.T) {
	_, err := LoadSettings("/nonexistent/wordmask.yaml")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	_, err = LoadSettings(writeConfig(t, "overrides: [this is: not: valid"))
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
	}{
		{"defaults", func(*Settings) {}, nil},
		{"zero words", func(s *Settings) { s.WordsToHide = 0 }, nil},
		{"negative words", func(s *Settings) { s.WordsToHide = -1 }, internalerr.ErrInput},
		{"empty mask", func(s *Settings) { s.Mask = "" }, internalerr.ErrInvalidConfig},
		{"long mask", func(s *Settings) { s.Mask = "**" }, internalerr.ErrInvalidConfig},
		{"space mask", func(s *Settings) { s.Mask = " " }, internalerr.ErrInvalidConfig},
		{"unicode mask", func(s *Settings) { s.Mask = "█" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseOverride(t *testing.T) {
	o, err := ParseOverride("^a$=0.9")
	require.NoError(t, err)
	assert.Equal(t, weight.Override{Pattern: "^a$", Weight: 0.9}, o)

	o, err = ParseOverride("a=b=2")
	require.NoError(t, err)
	assert.Equal(t, "a=b", o.Pattern)
	assert.Equal(t, 2.0, o.Weight)

	o, err = ParseOverride("=0.5")
	require.NoError(t, err)
	assert.Equal(t, weight.Override{Pattern: "", Weight: 0.5}, o)

	for _, bad := range []string{"noweight", "a=", "a=heavy"} {
		_, err := ParseOverride(bad)
		assert.ErrorIs(t, err, internalerr.ErrInvalidConfig, bad)
	}
}

func TestParseOverridesKeepsOrder(t *testing.T) {
	got, err := ParseOverrides([]string{"x=1", "y=2", "x=3"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "x", got[2].Pattern)
	assert.Equal(t, 3.0, got[2].Weight)
}
