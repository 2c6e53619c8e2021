package term

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/locremix/internal/config"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorAlways)
	assert.True(t, Enabled())
	assert.Contains(t, Green.Sprint("ok"), "\x1b[")

	Configure(config.ColorNever)
	assert.False(t, Enabled())
	assert.Equal(t, "ok", Green.Sprint("ok"))

	t.Setenv("NO_COLOR", "1")
	Configure(config.ColorAuto)
	assert.False(t, Enabled())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(nil))

	f, err := os.CreateTemp(t.TempDir(), "plain")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, IsTerminal(f))
}
