package classify

import "strings"

// Category is the feature type assigned by classification
type Category string

const (
	CategoryAuthentication Category = "authentication"
	CategoryDataManagement Category = "data_management"
	CategoryFrontendOnly   Category = "frontend_only"
	CategoryBackendOnly    Category = "backend_only"
	CategoryFullstack      Category = "fullstack"
)

// Tier buckets the complexity score
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Feature is a classified feature request
type Feature struct {
	RawText         string   `json:"raw_text"`
	Category        Category `json:"category"`
	ComplexityScore int      `json:"complexity_score"`
	ComplexityTier  Tier     `json:"complexity_tier"`
}

// categoryRule pairs keywords with the category they select.
// Rules are evaluated in order and the first match wins, so a
// description containing several keywords resolves to the earliest rule.
type categoryRule struct {
	keywords []string
	category Category
}

var categoryRules = []categoryRule{
	{keywords: []string{"auth"}, category: CategoryAuthentication},
	{keywords: []string{"crud", "manage"}, category: CategoryDataManagement},
	{keywords: []string{"ui", "component"}, category: CategoryFrontendOnly},
	{keywords: []string{"api"}, category: CategoryBackendOnly},
}

// complexityIndicators are counted independently of category keywords;
// overlap with them (e.g. "auth") is intentional.
var complexityIndicators = []string{
	"integration",
	"real-time",
	"payment",
	"auth",
	"complex business logic",
	"multiple entities",
	"third-party apis",
	"file upload",
}

// Classify assigns a category and complexity tier to a feature
// description. It is a pure function: identical input always yields
// identical output, and any string is accepted, including empty.
func Classify(description string) Feature {
	lower := strings.ToLower(description)

	category := CategoryFullstack
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			category = rule.category
			break
		}
	}

	score := 0
	for _, indicator := range complexityIndicators {
		if strings.Contains(lower, indicator) {
			score++
		}
	}

	return Feature{
		RawText:         description,
		Category:        category,
		ComplexityScore: score,
		ComplexityTier:  tierForScore(score),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// tierForScore maps a complexity score onto its tier:
// 0 low, 1-2 medium, 3+ high.
func tierForScore(score int) Tier {
	switch {
	case score >= 3:
		return TierHigh
	case score >= 1:
		return TierMedium
	default:
		return TierLow
	}
}
