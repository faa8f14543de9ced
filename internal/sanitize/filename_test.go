package sanitize_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/create-filecoin-app/internal/sanitize"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name untouched", "myApp", "myApp"},
		{"dashes and underscores kept", "my-app_v2", "my-app_v2"},
		{"slash removed", "my/app", "myapp"},
		{"backslash removed", `my\app`, "myapp"},
		{"reserved punctuation removed", `a?b<c>d:e*f|g"h`, "abcdefgh"},
		{"control characters removed", "my\x00app\x1f", "myapp"},
		{"dot only names are reserved", "..", ""},
		{"windows device name", "CON", ""},
		{"windows device with extension", "lpt1.txt", ""},
		{"device prefix is fine", "console", "console"},
		{"trailing dots and spaces", "app. . ", "app"},
		{"inner spaces kept", "my app", "my app"},
		{"path traversal", "../../etc", "....etc"},
		{"empty input", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitize.Filename(tc.input))
		})
	}
}

func TestFilename_NormalizesUnicode(t *testing.T) {
	decomposed := "cafe\u0301"
	assert.Equal(t, "caf\u00e9", sanitize.Filename(decomposed))
}

func TestFilename_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 200) // 400 bytes

	got := sanitize.Filename(long)

	assert.LessOrEqual(t, len(got), sanitize.MaxFilenameBytes)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 127, utf8.RuneCountInString(got))
}

func TestFilename_Idempotent(t *testing.T) {
	inputs := []string{"my/app", "a:b", "x. ", "name"}
	for _, in := range inputs {
		once := sanitize.Filename(in)
		assert.Equal(t, once, sanitize.Filename(once), "input %q", in)
	}
}
