// Package textnorm holds the rule-based normalization used for list fields,
// person names and topic labels. Matching is deterministic; there is no fuzzy matching.
package textnorm

import (
	"fmt"
	"strings"
)

// SplitList turns a raw list field into trimmed, non-empty tokens.
// A string is comma-split; a list contributes each element whole.
// Anything else, including nil, yields an empty slice.
func SplitList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case nil:
	case string:
		for _, tok := range strings.Split(t, ",") {
			out = appendToken(out, tok)
		}
	case []string:
		for _, s := range t {
			out = appendToken(out, s)
		}
	case []any:
		for _, item := range t {
			switch s := item.(type) {
			case string:
				out = appendToken(out, s)
			case nil:
			default:
				out = appendToken(out, fmt.Sprint(s))
			}
		}
	}
	return out
}

func appendToken(out []string, tok string) []string {
	if tok = strings.TrimSpace(tok); tok != "" {
		out = append(out, tok)
	}
	return out
}

// CleanName trims s and collapses internal whitespace runs to one space.
// A bracketed suffix is kept; this is the display form.
func CleanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NameKey returns the identity key of a person name: the cleaned name without one
// trailing "[...]" or "(...)" suffix, case-folded. When stripping would leave nothing the
// whole cleaned name is folded instead.
func NameKey(s string) string {
	clean := CleanName(s)
	if base := stripBracketSuffix(clean); base != "" {
		return strings.ToLower(base)
	}
	return strings.ToLower(clean)
}

// TopicKey returns the identity key of a topic label
func TopicKey(s string) string {
	return strings.ToLower(CleanName(s))
}

func stripBracketSuffix(s string) string {
	if s == "" {
		return s
	}
	var open byte
	switch s[len(s)-1] {
	case ']':
		open = '['
	case ')':
		open = '('
	default:
		return s
	}
	i := strings.LastIndexByte(s, open)
	if i < 0 {
		return s
	}
	return strings.TrimSpace(s[:i])
}

// Dedupe keeps the first occurrence of every key, preserving order and first-seen casing.
// Items whose key is empty are dropped.
func Dedupe(items []string, keyFn func(string) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		k := keyFn(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}
