package archdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prpkit/prpflow/internal/stack"
)

func writeArchDoc(t *testing.T, root, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, dir, "CLAUDE.md"), []byte(content), 0644))
}

func TestBuildPackJoinsDocsInDetectionOrder(t *testing.T) {
	root := t.TempDir()
	writeArchDoc(t, root, "backend_fastapi_sqlalchemy", "backend conventions")
	writeArchDoc(t, root, "frontend_nextjs", "frontend conventions")

	stacks := stack.Detect([]string{"frontend_nextjs", "backend_fastapi_sqlalchemy"})
	pack, err := NewBuilder(root, 8000).BuildPack(stacks)
	require.NoError(t, err)

	backendIdx := strings.Index(pack, "Architecture: fastapi_sqlalchemy")
	frontendIdx := strings.Index(pack, "Architecture: nextjs")
	require.NotEqual(t, -1, backendIdx)
	require.NotEqual(t, -1, frontendIdx)
	assert.Less(t, backendIdx, frontendIdx)
	assert.Contains(t, pack, "backend conventions")
	assert.Contains(t, pack, "frontend conventions")
}

func TestBuildPackSkipsMissingDocs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "backend_fastapi_sqlalchemy"), 0755))

	stacks := stack.Detect([]string{"backend_fastapi_sqlalchemy"})
	pack, err := NewBuilder(root, 8000).BuildPack(stacks)
	require.NoError(t, err)
	assert.Empty(t, pack)
}

func TestBuildPackTruncatesToBudget(t *testing.T) {
	root := t.TempDir()
	writeArchDoc(t, root, "backend_fastapi_sqlalchemy", strings.Repeat("conventions text ", 2000))

	stacks := stack.Detect([]string{"backend_fastapi_sqlalchemy"})
	pack, err := NewBuilder(root, 1000).BuildPack(stacks)
	require.NoError(t, err)
	require.NotEmpty(t, pack)
	assert.Contains(t, pack, "[truncated]")
	assert.LessOrEqual(t, EstimateTokens(pack), 1100)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 2, EstimateTokens("abcdefgh"))
}

func TestTokenBudget(t *testing.T) {
	b := NewTokenBudget(100, 20)
	assert.Equal(t, 80, b.Available())
	assert.True(t, b.Use(50))
	assert.Equal(t, 30, b.Available())
	assert.False(t, b.Use(40))
	assert.True(t, b.CanFit(30))
}

func TestTruncateToTokens(t *testing.T) {
	text := strings.Repeat("line of text\n", 100)
	out := TruncateToTokens(text, 50)
	assert.Less(t, len(out), len(text))
	assert.Contains(t, out, "[truncated]")

	assert.Equal(t, "", TruncateToTokens("anything", 0))
	assert.Equal(t, "short", TruncateToTokens("short", 50))
}
