package layout

import (
	"path"
	"regexp"
	"strings"

	"github.com/prpkit/prpflow/internal/stack"
)

// DocKind names a document in the feature folder
type DocKind string

const (
	DocContratoAPI DocKind = "contrato_api"
	DocBackend     DocKind = "backend"
	DocFrontend    DocKind = "frontend"
	DocMobile      DocKind = "mobile"
)

// FeaturesDir is the root folder for generated feature artifacts
const FeaturesDir = "features"

// ImagesDir is the visual-reference subfolder inside a feature folder
const ImagesDir = "telas"

// imageSubdirNames is the fixed set created whenever a frontend or
// mobile stack is present
var imageSubdirNames = []string{"desktop", "mobile", "components", "flows"}

// Layout is the computed on-disk shape for one feature's artifacts.
// Paths use forward slashes and are relative to the project root.
type Layout struct {
	FeatureSlug   string             `json:"feature_slug"`
	DocumentPaths map[DocKind]string `json:"document_paths"`
	ImageSubdirs  map[string]string  `json:"image_subdirs"`
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a feature name to a filesystem-safe identifier:
// lowercase, runs of non-alphanumeric characters collapsed to single
// hyphens, leading and trailing hyphens trimmed. Identical input
// always yields the identical slug; distinct names may collide, and
// deduplication is the caller's concern.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// docKindForStackKind maps a stack kind to its document kind
func docKindForStackKind(kind stack.Kind) DocKind {
	switch kind {
	case stack.KindBackend:
		return DocBackend
	case stack.KindFrontend:
		return DocFrontend
	case stack.KindMobile:
		return DocMobile
	}
	return DocKind(kind)
}

// Build computes the artifact layout for a feature from the detected
// stacks. Empty stacks is valid here and yields an empty layout; the
// plan assembler rejects the same input, deliberately.
func Build(featureName string, stacks []stack.Descriptor) Layout {
	slug := Slugify(featureName)
	l := Layout{
		FeatureSlug:   slug,
		DocumentPaths: make(map[DocKind]string),
		ImageSubdirs:  make(map[string]string),
	}

	if len(stacks) == 0 {
		return l
	}

	featureDir := path.Join(FeaturesDir, slug)

	// The API contract is the one document produced unconditionally:
	// it is the interface boundary between every other document.
	l.DocumentPaths[DocContratoAPI] = path.Join(featureDir, string(DocContratoAPI)+".md")

	for _, kind := range stack.Kinds(stacks) {
		doc := docKindForStackKind(kind)
		l.DocumentPaths[doc] = path.Join(featureDir, string(doc)+".md")
	}

	if stack.HasKind(stacks, stack.KindFrontend) || stack.HasKind(stacks, stack.KindMobile) {
		for _, sub := range imageSubdirNames {
			l.ImageSubdirs[sub] = path.Join(featureDir, ImagesDir, sub)
		}
	}

	return l
}

// FeatureDir returns the feature folder path, or empty when the
// layout is degenerate
func (l Layout) FeatureDir() string {
	if len(l.DocumentPaths) == 0 {
		return ""
	}
	return path.Join(FeaturesDir, l.FeatureSlug)
}

// ImageSubdirNames returns the fixed subdirectory name set
func ImageSubdirNames() []string {
	return append([]string(nil), imageSubdirNames...)
}
