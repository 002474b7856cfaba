package terminal

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptIfMissing(t *testing.T) {
	t.Run("existing value is kept without reading", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader("should not be read\n"))
		got := promptIfMissing(reader, "Mumbai", "Location: ")
		assert.Equal(t, "Mumbai", got)
	})

	t.Run("missing value is read and trimmed", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader("  Pune \n"))
		got := promptIfMissing(reader, "", "Location: ")
		assert.Equal(t, "Pune", got)
	})

	t.Run("empty answer leaves the field unset", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader("\n"))
		got := promptIfMissing(reader, "", "Date/Time: ")
		assert.Equal(t, "", got)
	})
}

func TestRootCmdFlags(t *testing.T) {
	cmd := NewRootCmd()

	for _, flag := range []string{"location", "datetime", "preferences", "keep-open", "browser", "start-url"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag --%s", flag)
	}

	keepOpen, err := cmd.Flags().GetBool("keep-open")
	assert.NoError(t, err)
	assert.True(t, keepOpen)
}
