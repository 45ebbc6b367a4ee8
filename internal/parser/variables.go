package parser

import (
	"regexp"
	"strings"
)

var (
	// Variable placeholder pattern: {{varName}}
	// The name stops at the first '}' so "{{A and {{B}}" is a single match.
	varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)
)

// Substitute replaces {{NAME}} placeholders with values from variables.
// Unknown names and empty values leave the placeholder untouched, and
// substituted values are never scanned again.
func Substitute(text string, variables map[string]string) string {
	if text == "" || len(variables) == 0 {
		return text
	}

	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		// Extract variable name (remove {{ and }})
		name := strings.TrimSpace(match[2 : len(match)-2])

		if value, ok := variables[name]; ok && value != "" {
			return value
		}
		return match
	})
}

// SubstituteInMap applies Substitute to every value and returns a new map.
// Keys are copied as-is and the input is left untouched.
func SubstituteInMap(values map[string]string, variables map[string]string) map[string]string {
	result := make(map[string]string, len(values))
	for key, value := range values {
		result[key] = Substitute(value, variables)
	}
	return result
}

// FindVariableNames extracts all unique variable names from a string
// Returns variable names without the {{ }} brackets
func FindVariableNames(text string) []string {
	matches := varPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var names []string
	for _, match := range matches {
		if len(match) > 1 {
			name := strings.TrimSpace(match[1])
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// ContainsVariable reports whether text holds at least one placeholder
func ContainsVariable(text string) bool {
	return varPattern.MatchString(text)
}

// UnresolvedVariables lists placeholder names in text that variables cannot fill
func UnresolvedVariables(text string, variables map[string]string) []string {
	var unresolved []string
	for _, name := range FindVariableNames(text) {
		if value, ok := variables[name]; !ok || value == "" {
			unresolved = append(unresolved, name)
		}
	}
	return unresolved
}
