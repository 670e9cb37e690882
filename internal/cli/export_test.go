package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/recite/internal/domain"
)

func TestWriteExport(t *testing.T) {
	t.Parallel()

	exportedAt := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	records := []domain.WordRecord{
		renderRecord("ephemeral", 2, 3, exportedAt.AddDate(0, 0, 2)),
		renderRecord("mirth", 0, 0, exportedAt.AddDate(0, 0, 1)),
	}
	records[0].Info.Meanings = []string{"lasting a short time"}
	records[1].Info.Phonetic = ""
	records[1].Info.Examples = nil

	out := &bytes.Buffer{}
	require.NoError(t, WriteExport(out, records, exportedAt))
	text := out.String()

	assert.True(t, strings.HasPrefix(text, "Vocabulary Memory List\n"))
	assert.Contains(t, text, "Export time: 2025-07-01 09:00:00")
	assert.Contains(t, text, strings.Repeat("=", 60))

	assert.Contains(t, text, "Word: ephemeral")
	assert.Contains(t, text, "Definitions:\n  1. lasting a short time")
	assert.Contains(t, text, "Reviews: 2")
	assert.Contains(t, text, "Mastery: ★★★★☆")

	// One separator block per word.
	assert.Equal(t, 2, strings.Count(text, strings.Repeat("-", 40)))

	// Optional sections stay out when the record has nothing for them.
	mirthBlock := text[strings.Index(text, "Word: mirth"):]
	assert.NotContains(t, mirthBlock, "Phonetic:")
	assert.NotContains(t, mirthBlock, "Examples:")
}

func TestWriteExportEmpty(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, WriteExport(out, nil, time.Now()))
	assert.Contains(t, out.String(), "Vocabulary Memory List")
}
