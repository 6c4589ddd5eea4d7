package archdoc

import (
	"strings"
	"unicode/utf8"
)

// EstimateTokens provides a rough estimate of token count for text
// using the approximation of ~4 characters per token for English
func EstimateTokens(text string) int {
	charCount := utf8.RuneCountInString(text)
	return (charCount + 3) / 4
}

// TruncateToTokens truncates text to approximately maxTokens
func TruncateToTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}

	maxChars := maxTokens * 4

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	truncated := string(runes[:maxChars-20])
	// Find last newline for clean break
	lastNewline := strings.LastIndex(truncated, "\n")
	if lastNewline > len(truncated)/2 {
		truncated = truncated[:lastNewline]
	}

	return truncated + "\n\n... [truncated]"
}

// TokenBudget helps manage token allocation across multiple documents
type TokenBudget struct {
	Total    int
	Used     int
	Reserved int // Reserved for static parts of the prompt
}

// NewTokenBudget creates a budget with total tokens and reserved amount
func NewTokenBudget(total, reserved int) *TokenBudget {
	return &TokenBudget{
		Total:    total,
		Reserved: reserved,
	}
}

// Available returns remaining available tokens
func (b *TokenBudget) Available() int {
	return b.Total - b.Used - b.Reserved
}

// CanFit returns true if the given tokens fit in the budget
func (b *TokenBudget) CanFit(tokens int) bool {
	return b.Available() >= tokens
}

// Use marks tokens as used, returns true if successful
func (b *TokenBudget) Use(tokens int) bool {
	if !b.CanFit(tokens) {
		return false
	}
	b.Used += tokens
	return true
}

// TryFitContent attempts to fit content within budget, truncating if needed
func (b *TokenBudget) TryFitContent(content string, minTokens int) (string, bool) {
	tokens := EstimateTokens(content)

	if b.CanFit(tokens) {
		b.Used += tokens
		return content, true
	}

	available := b.Available()
	if available < minTokens {
		return "", false
	}

	truncated := TruncateToTokens(content, available)
	b.Used += EstimateTokens(truncated)
	return truncated, true
}
