package tui

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
)

func TestNewOutput_SelectsFormat(t *testing.T) {
	var buf bytes.Buffer

	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, FormatJSON))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, FormatText))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, ""))
}

func TestTTYOutput_Messages(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Success("Successfully created my-app!")
	out.Warning("Interrupt requested.")
	out.Info("Creating project directory: my-app")

	assert.Equal(t,
		"Successfully created my-app!\nInterrupt requested.\nCreating project directory: my-app\n",
		buf.String())
}

func TestTTYOutput_ErrorWithAction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Error(fmt.Errorf("Failed to install packages: %w", apperrors.ErrInstall))

	got := buf.String()
	assert.Contains(t, got, "Failed to install packages")
	assert.Contains(t, got, "Run the package manager install manually")
}

func TestTTYOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	require.NoError(t, out.JSON(map[string]string{"project": "my-app"}))
	assert.Equal(t, "{\n  \"project\": \"my-app\"\n}\n", buf.String())
}

func TestJSONOutput_Lines(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Success("done")
	out.Warning("careful")
	out.Info("note")
	out.Error(apperrors.ErrProjectExists)

	var lines []map[string]string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var m map[string]string
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 4)

	assert.Equal(t, map[string]string{"type": "success", "message": "done"}, lines[0])
	assert.Equal(t, "warning", lines[1]["type"])
	assert.Equal(t, "info", lines[2]["type"])
	assert.Equal(t, apperrors.ErrProjectExists.Error(), lines[3]["error"])
	assert.NotEmpty(t, lines[3]["action"])
}

func TestJSONOutput_ErrorWithoutAction(t *testing.T) {
	var buf bytes.Buffer
	NewJSONOutput(&buf).Error(fmt.Errorf("plain failure"))

	assert.JSONEq(t, `{"error":"plain failure"}`, buf.String())
}
