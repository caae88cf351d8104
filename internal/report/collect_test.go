package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/docverify/internal/models"
)

func TestSnippet(t *testing.T) {
	s := Snippet{File: "guide/users.md", Content: "[[users]]\nname = \"alice\"", Line: 12}

	assert.Len(t, s.Hash(), 32)
	assert.Equal(t, s.Hash(), s.Hash())
	assert.NotEqual(t, s.Hash(), Snippet{File: s.File, Content: s.Content, Line: 13}.Hash())

	assert.Equal(t, "users_"+s.Hash()+".toml", s.FileName(models.VerifyAsUsersConfig))
	assert.Equal(t, "config_"+s.Hash()+".toml", s.FileName(models.VerifyAsMainConfig))
	assert.Equal(t, "# file: guide/users.md\n# line_number: 12\n\n[[users]]\nname = \"alice\"\n", s.Render())
}

func TestCollect(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md":       usersInvalid,
		"guide/b.md": mainValid + libOnly + badQuery,
	})
	out := filepath.Join(t.TempDir(), "snippets")
	require.NoError(t, os.MkdirAll(out, 0755))
	stale := filepath.Join(out, "config_stale.toml")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	written, err := newTestRunner(root, nil, nil).Collect(context.Background(), out)
	require.NoError(t, err)
	require.Len(t, written, 2)

	assert.NoFileExists(t, stale)

	users := Snippet{File: "a.md", Content: "[[users]]\nname = \"alice\"\ninvalid = true", Line: 3}
	assert.Equal(t, filepath.Join(out, users.FileName(models.VerifyAsUsersConfig)), written[0])
	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, users.Render(), string(data))

	main := Snippet{File: "guide/b.md", Content: "[general]\nport = 6432", Line: 3}
	assert.Equal(t, filepath.Join(out, main.FileName(models.VerifyAsMainConfig)), written[1])

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "lib and query blocks are not written")
}

func TestCollect_EmptyOutDir(t *testing.T) {
	_, err := newTestRunner(t.TempDir(), nil, nil).Collect(context.Background(), " ")
	assert.Error(t, err)
}
