package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRegistryOrder(t *testing.T) {
	// Input deliberately shuffled relative to registry order
	entries := []string{"frontend_nextjs", "backend_fastapi_sqlalchemy", "mobile_flutter"}

	got := Detect(entries)
	require.Len(t, got, 3)
	assert.Equal(t, "fastapi_sqlalchemy", got[0].ID)
	assert.Equal(t, "nextjs", got[1].ID)
	assert.Equal(t, "flutter", got[2].ID)
	assert.Equal(t, KindBackend, got[0].Kind)
	assert.Equal(t, KindFrontend, got[1].Kind)
	assert.Equal(t, KindMobile, got[2].Kind)
}

func TestDetectWithinKindDeclarationOrder(t *testing.T) {
	entries := []string{"backend_fastify_api", "backend_fastapi_beanieodm", "backend_fastapi_sqlalchemy"}

	got := Detect(entries)
	require.Len(t, got, 3)
	assert.Equal(t, "fastapi_sqlalchemy", got[0].ID)
	assert.Equal(t, "fastapi_beanieodm", got[1].ID)
	assert.Equal(t, "fastify_api", got[2].ID)
}

func TestDetectDeterministic(t *testing.T) {
	entries := []string{"mobile_flutter", "backend_fastify_api_ts", "frontend_nextjs", "docs", "README.md"}

	first := Detect(entries)
	second := Detect(entries)
	assert.Equal(t, first, second)
}

func TestDetectNoMatches(t *testing.T) {
	got := Detect([]string{"src", "docs", "node_modules"})
	assert.Empty(t, got)

	got = Detect(nil)
	assert.Empty(t, got)
}

func TestDetectIgnoresUnknownAndTrailingSlash(t *testing.T) {
	got := Detect([]string{"backend_fastapi_sqlalchemy/", "backend_django", "frontend_vue"})
	require.Len(t, got, 1)
	assert.Equal(t, "fastapi_sqlalchemy", got[0].ID)
	assert.Equal(t, "backend_fastapi_sqlalchemy", got[0].RootPath)
}

func TestDetectArchDocPath(t *testing.T) {
	got := Detect([]string{"frontend_nextjs"})
	require.Len(t, got, 1)
	assert.Equal(t, "frontend_nextjs/CLAUDE.md", got[0].ArchDocPath)
}

func TestRegistrySetArchDocName(t *testing.T) {
	reg := DefaultRegistry()
	reg.SetArchDocName("ARCHITECTURE.md")

	got := reg.Detect([]string{"frontend_nextjs"})
	require.Len(t, got, 1)
	assert.Equal(t, "frontend_nextjs/ARCHITECTURE.md", got[0].ArchDocPath)

	// Empty override keeps the current name
	reg.SetArchDocName("")
	got = reg.Detect([]string{"frontend_nextjs"})
	assert.Equal(t, "frontend_nextjs/ARCHITECTURE.md", got[0].ArchDocPath)
}

func TestDeriveID(t *testing.T) {
	tests := []struct {
		dir  string
		kind Kind
		want string
	}{
		{"backend_fastapi_sqlalchemy", KindBackend, "fastapi_sqlalchemy"},
		{"backend_fastify_api_ts", KindBackend, "fastify_api_ts"},
		{"frontend_nextjs", KindFrontend, "nextjs"},
		{"mobile_flutter/", KindMobile, "flutter"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveID(tt.dir, tt.kind), "dir %q", tt.dir)
	}
}

func TestRegistryExtend(t *testing.T) {
	reg := DefaultRegistry()
	reg.Extend([]Pattern{
		{Dir: "backend_go_chi", Kind: KindBackend},
		{Dir: "frontend_sveltekit", Kind: KindFrontend},
	})

	got := reg.Detect([]string{"frontend_sveltekit", "backend_go_chi", "backend_fastapi_sqlalchemy"})
	require.Len(t, got, 3)
	// Built-in backend first, then the extension, then frontend
	assert.Equal(t, "fastapi_sqlalchemy", got[0].ID)
	assert.Equal(t, "go_chi", got[1].ID)
	assert.Equal(t, "sveltekit", got[2].ID)
}

func TestKindsAndHasKind(t *testing.T) {
	stacks := Detect([]string{"backend_fastapi_sqlalchemy", "backend_fastify_api", "frontend_nextjs"})

	assert.Equal(t, []Kind{KindBackend, KindFrontend}, Kinds(stacks))
	assert.True(t, HasKind(stacks, KindBackend))
	assert.True(t, HasKind(stacks, KindFrontend))
	assert.False(t, HasKind(stacks, KindMobile))
}
