// Package integrity evaluates artifact content against a checklist of
// required markers. Presence is plain substring containment; the content is
// never parsed.
package integrity

import (
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

// DefaultChecklist lists the markers a healthy GlobalHeader must contain.
var DefaultChecklist = types.Checklist{
	{Marker: "'use client'", Label: "Client-side directive"},
	{Marker: "export function GlobalHeader", Label: "Component export"},
	{Marker: "import { useState }", Label: "React imports"},
	{Marker: "from 'lucide-react'", Label: "Icon imports"},
	{Marker: "const NAVIGATION_ITEMS", Label: "Navigation constants"},
	{Marker: "bg-white/80 backdrop-blur-lg", Label: "Glassmorphism style"},
}

// StyleChecklist lists informational style markers reported by Stats. A
// missing style marker does not make an artifact unhealthy.
var StyleChecklist = types.Checklist{
	{Marker: "'use client'", Label: "Client-side"},
	{Marker: "glassmorphism", Label: "Modern design"},
	{Marker: "responsive", Label: "Responsive"},
	{Marker: "transition", Label: "Animations"},
	{Marker: "hover:", Label: "Interactions"},
}

// StructuralTokens are counted in Stats, in this order.
var StructuralTokens = []string{
	"import ",
	"const ",
	"function ",
	"useState",
	"className",
	"<Link",
	"Icon",
}

// Verify evaluates every checklist entry against content. It never stops at
// the first missing marker; Passed is the AND of all outcomes.
func Verify(content string, checklist types.Checklist) types.VerificationResult {
	result := types.VerificationResult{
		Outcomes: make([]types.CheckOutcome, 0, len(checklist)),
		Passed:   true,
		Stats:    ComputeStats(content),
	}
	for _, item := range checklist {
		present := strings.Contains(content, item.Marker)
		result.Outcomes = append(result.Outcomes, types.CheckOutcome{
			Label:   item.Label,
			Marker:  item.Marker,
			Present: present,
		})
		if !present {
			result.Passed = false
		}
	}
	return result
}

// ComputeStats returns descriptive statistics for content.
func ComputeStats(content string) types.Stats {
	stats := types.Stats{
		Lines:  CountLines(content),
		Bytes:  len(content),
		Chars:  utf8.RuneCountInString(content),
		Tokens: make([]types.TokenCount, 0, len(StructuralTokens)),
	}
	for _, tok := range StructuralTokens {
		stats.Tokens = append(stats.Tokens, types.TokenCount{
			Token: tok,
			Count: strings.Count(content, tok),
		})
	}
	return stats
}

// CountLines counts lines the way Python's str.splitlines does. Breaks are
// \n, \r, \r\n, \v, \f, \x1c, \x1d, \x1e, \x85, U+2028, and U+2029. A
// trailing break does not start a new line, and empty content has zero lines.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := 0
	endsWithBreak := false
	for i, r := range content {
		if !isLineBreak(r) {
			endsWithBreak = false
			continue
		}
		// \r\n is one break; the \n closes it.
		if r == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			continue
		}
		n++
		endsWithBreak = true
	}
	if !endsWithBreak {
		n++
	}
	return n
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
