package stack

import (
	"path"
	"strings"
)

// Kind categorizes a technology stack by the layer it implements
type Kind string

const (
	KindBackend  Kind = "backend"
	KindFrontend Kind = "frontend"
	KindMobile   Kind = "mobile"
)

// Descriptor identifies one detected technology stack
type Descriptor struct {
	Kind        Kind   `json:"kind"`
	ID          string `json:"stack_id"`
	RootPath    string `json:"root_path"`
	ArchDocPath string `json:"arch_doc_path"`
}

// Pattern is a known template directory name and the kind it signals
type Pattern struct {
	Dir  string `toml:"dir" json:"dir"`
	Kind Kind   `toml:"kind" json:"kind"`
}

// DefaultArchDocName is the per-stack architecture document filename
const DefaultArchDocName = "CLAUDE.md"

// Registry is an ordered list of patterns. Detection output preserves
// registry order, so the order here is part of the contract.
type Registry struct {
	patterns    []Pattern
	archDocName string
}

// builtinPatterns lists the known template directories, backend first,
// then frontend, then mobile. Detection results follow this order.
var builtinPatterns = []Pattern{
	{Dir: "backend_fastapi_sqlalchemy", Kind: KindBackend},
	{Dir: "backend_fastapi_sqlalchemy_async", Kind: KindBackend},
	{Dir: "backend_fastapi_beanieodm", Kind: KindBackend},
	{Dir: "backend_fastify_api", Kind: KindBackend},
	{Dir: "backend_fastify_api_ts", Kind: KindBackend},
	{Dir: "frontend_nextjs", Kind: KindFrontend},
	{Dir: "mobile_flutter", Kind: KindMobile},
}

// kindOrder fixes the relative ordering of kinds in detection output
var kindOrder = []Kind{KindBackend, KindFrontend, KindMobile}

// DefaultRegistry returns a registry with the built-in patterns
func DefaultRegistry() *Registry {
	return &Registry{
		patterns:    append([]Pattern(nil), builtinPatterns...),
		archDocName: DefaultArchDocName,
	}
}

// NewRegistry builds a registry from an explicit pattern list.
// Used by tests and by config-driven registry substitution.
func NewRegistry(patterns []Pattern) *Registry {
	return &Registry{
		patterns:    append([]Pattern(nil), patterns...),
		archDocName: DefaultArchDocName,
	}
}

// SetArchDocName overrides the architecture document filename looked
// up inside each detected stack. Empty names are ignored.
func (r *Registry) SetArchDocName(name string) {
	if name != "" {
		r.archDocName = name
	}
}

// Extend appends extra patterns after the built-ins. Within each kind,
// extras keep their declaration order behind the existing entries.
func (r *Registry) Extend(extras []Pattern) {
	r.patterns = append(r.patterns, extras...)
}

// Patterns returns the registry contents in detection order
func (r *Registry) Patterns() []Pattern {
	ordered := make([]Pattern, 0, len(r.patterns))
	for _, kind := range kindOrder {
		for _, p := range r.patterns {
			if p.Kind == kind {
				ordered = append(ordered, p)
			}
		}
	}
	return ordered
}

// Detect returns descriptors for every registry pattern present in the
// given set of top-level directory names. Output order is registry order
// regardless of input iteration order; no filesystem access happens here.
func (r *Registry) Detect(rootDirEntries []string) []Descriptor {
	present := make(map[string]bool, len(rootDirEntries))
	for _, e := range rootDirEntries {
		present[strings.TrimSuffix(e, "/")] = true
	}

	var found []Descriptor
	seen := make(map[string]bool)
	for _, p := range r.Patterns() {
		if !present[p.Dir] || seen[p.Dir] {
			continue
		}
		seen[p.Dir] = true
		found = append(found, Descriptor{
			Kind:        p.Kind,
			ID:          DeriveID(p.Dir, p.Kind),
			RootPath:    p.Dir,
			ArchDocPath: path.Join(p.Dir, r.archDocName),
		})
	}
	return found
}

// Detect runs detection against the default registry
func Detect(rootDirEntries []string) []Descriptor {
	return DefaultRegistry().Detect(rootDirEntries)
}

// DeriveID strips the kind prefix and any trailing slash from a
// template directory name, yielding the stack identifier.
func DeriveID(dir string, kind Kind) string {
	id := strings.TrimSuffix(dir, "/")
	id = strings.TrimPrefix(id, string(kind)+"_")
	return id
}

// Kinds returns the distinct kinds present, in detection order
func Kinds(stacks []Descriptor) []Kind {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, s := range stacks {
		if !seen[s.Kind] {
			seen[s.Kind] = true
			kinds = append(kinds, s.Kind)
		}
	}
	return kinds
}

// HasKind reports whether any descriptor has the given kind
func HasKind(stacks []Descriptor, kind Kind) bool {
	for _, s := range stacks {
		if s.Kind == kind {
			return true
		}
	}
	return false
}
