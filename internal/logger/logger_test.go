package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects the log into a buffer for the duration of the test.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerboseLines(t *testing.T) {
	buf := capture(t, true)

	Debug("moved %s", "phys")
	Info("%d gap(s)", 2)
	Section("Integrity audit")

	assert.Equal(t, "[DEBUG] moved phys\n[INFO] 2 gap(s)\n\n=== Integrity audit ===\n", buf.String())
}

func TestQuietMode(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestWarn_AlwaysWritten(t *testing.T) {
	for _, v := range []bool{false, true} {
		buf := capture(t, v)

		Warn("last opened %s is gone", "local-1")

		assert.Equal(t, "[WARN] last opened local-1 is gone\n", buf.String())
	}
}

func TestTimed(t *testing.T) {
	buf := capture(t, true)

	done := Timed("backup import")
	done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "[DEBUG] backup import: started", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "[DEBUG] backup import: finished in "))
}
