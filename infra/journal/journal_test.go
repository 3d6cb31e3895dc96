package journal

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedsynth/entities"
)

func TestJournalAppendsLines(t *testing.T) {
	path := PathIn(t.TempDir())
	j, err := Open(entities.Run{ID: "run-1"}, path)
	require.NoError(t, err)

	require.NoError(t, j.Log(entities.Interaction{
		Step:        "types",
		Model:       "gpt-4o-mini",
		Temperature: 0.1,
		Prompt:      "For the SSH protocol ...",
		RawResponse: `{"protocol_type_list":["SSH_MSG_KEXINIT"]}`,
		Parsed:      []string{"SSH_MSG_KEXINIT"},
	}))
	require.NoError(t, j.Log(entities.Interaction{Step: "sequences", Target: "custom"}))
	require.NoError(t, j.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := map[string]any{}
		require.NoError(t, sonic.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, 2)

	assert.Equal(t, "run-1", lines[0]["run_id"])
	assert.Equal(t, "types", lines[0]["step"])
	assert.Equal(t, path, lines[0]["target"])
	assert.Equal(t, []any{"SSH_MSG_KEXINIT"}, lines[0]["parsed_response"])
	assert.Equal(t, "custom", lines[1]["target"])
	assert.NotContains(t, lines[1], "parsed_response")
}

func TestJournalLogAfterClose(t *testing.T) {
	j, err := Open(entities.Run{ID: "run-2"}, filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Error(t, j.Log(entities.Interaction{Step: "repair"}))
}
