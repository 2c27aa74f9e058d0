package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDBPath_Normalizes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty uses current directory", "", filepath.Join(DataDir, DBFile)},
		{"explicit db file", "/tmp/x/pipeline.db", "/tmp/x/pipeline.db"},
		{"project directory", "/srv/project", "/srv/project/.dealboard/deals.db"},
		{"data directory", "/srv/project/.dealboard", "/srv/project/.dealboard/deals.db"},
		{"trailing slash", "/srv/project/", "/srv/project/.dealboard/deals.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, filepath.FromSlash(tt.want), ResolveDBPath(filepath.FromSlash(tt.input)))
		})
	}
}

func TestResolveDBPath_ExistingFileWithoutExtension(t *testing.T) {
	file := filepath.Join(t.TempDir(), "deals")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	require.Equal(t, file, ResolveDBPath(file))
}

func TestResolveDBPath_FollowsRedirect(t *testing.T) {
	root := t.TempDir()
	main := filepath.Join(root, "main", DataDir)
	worktree := filepath.Join(root, "feature", DataDir)
	require.NoError(t, os.MkdirAll(main, 0o750))
	require.NoError(t, os.MkdirAll(worktree, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(worktree, "redirect"), []byte("../../main/.dealboard\n"), 0o600))

	require.Equal(t, filepath.Join(main, DBFile), ResolveDBPath(filepath.Join(root, "feature")))
}

func TestResolveDBPath_EmptyRedirectIgnored(t *testing.T) {
	project := t.TempDir()
	dataDir := filepath.Join(project, DataDir)
	require.NoError(t, os.MkdirAll(dataDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "redirect"), []byte("  \n"), 0o600))

	require.Equal(t, filepath.Join(dataDir, DBFile), ResolveDBPath(project))
}
