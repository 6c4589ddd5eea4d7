package scaffold

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/prpkit/prpflow/internal/layout"
	"github.com/prpkit/prpflow/internal/plan"
	"github.com/prpkit/prpflow/internal/stack"
)

// docData is the payload for the document skeleton templates
type docData struct {
	FeatureText string
	Slug        string
	Category    string
	Tier        string
	Stacks      []stack.Descriptor
}

var contratoTemplate = template.Must(template.New("contrato_api").Parse(`# API Contract: {{.Slug}}

> Feature: {{.FeatureText}}
> Category: {{.Category}} | Complexity: {{.Tier}}

This document is the interface boundary between every stack. Define
each endpoint before any engineering role starts.

## Endpoints

| Method | Path | Request | Response | Errors |
|--------|------|---------|----------|--------|
|        |      |         |          |        |

## Entities

## Notes
`))

var stackDocTemplate = template.Must(template.New("stack_doc").Parse(`# {{.Title}} Plan: {{.Slug}}

> Feature: {{.FeatureText}}

Stacks covered by this document:
{{- range .Stacks}}
- {{.ID}} ({{.RootPath}})
{{- end}}

## Implementation Notes

Follow the conventions in each stack's architecture document. Consume
the API exactly as contrato_api.md defines it.

## Checklist

- [ ] Implementation complete
- [ ] Tests written and green
`))

// stackDocData extends docData with a per-kind title
type stackDocData struct {
	docData
	Title  string
	Stacks []stack.Descriptor
}

var kindTitles = map[layout.DocKind]string{
	layout.DocBackend:  "Backend",
	layout.DocFrontend: "Frontend",
	layout.DocMobile:   "Mobile",
}

// renderDocument renders the skeleton for one document kind
func renderDocument(kind layout.DocKind, data docData) (string, error) {
	var b strings.Builder

	if kind == layout.DocContratoAPI {
		if err := contratoTemplate.Execute(&b, data); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", kind, err)
		}
		return b.String(), nil
	}

	var kindStacks []stack.Descriptor
	for _, s := range data.Stacks {
		if string(s.Kind) == string(kind) {
			kindStacks = append(kindStacks, s)
		}
	}

	err := stackDocTemplate.Execute(&b, stackDocData{
		docData: data,
		Title:   kindTitles[kind],
		Stacks:  kindStacks,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", kind, err)
	}
	return b.String(), nil
}

// renderPlan renders the assembled plan as Markdown
func renderPlan(p *plan.Plan) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Task Plan\n\n> Feature: %s\n", p.Feature.RawText))
	b.WriteString(fmt.Sprintf("> Category: %s | Complexity: %s (score %d)\n\n",
		p.Feature.Category, p.Feature.ComplexityTier, p.Feature.ComplexityScore))

	for i, ph := range p.Phases {
		b.WriteString(fmt.Sprintf("## Phase %d: %s (%s)\n\n", i+1, ph.Name, ph.Mode))

		for _, a := range ph.Assignments {
			b.WriteString(fmt.Sprintf("### %s\n\n", a.Role))
			for _, task := range a.Tasks {
				b.WriteString(fmt.Sprintf("- %s\n", task))
			}
			b.WriteString("\n")
		}

		if len(ph.Gates) > 0 {
			b.WriteString("**Quality gates:**\n\n")
			for _, g := range ph.Gates {
				b.WriteString(fmt.Sprintf("- %s: %s\n", g.Name, g.Description))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
