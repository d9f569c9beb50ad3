package deckforge

import (
	"fmt"
	"regexp"
)

// templateVarPattern matches {{ variable.path }} tokens, with optional
// surrounding whitespace inside the braces.
var templateVarPattern = regexp.MustCompile(`\{\{\s*([\w.]+)\s*\}\}`)

// Substitute replaces {{ path }} tokens in text with values resolved
// from the content record. Tokens whose path does not resolve are left
// in place verbatim, so partially filled records still render usable
// text. A token that resolves to a non-scalar value is an error: the
// caller cannot meaningfully inline an object or list, and the slide
// being rendered should be skipped rather than emitted corrupted.
func Substitute(text string, record map[string]any) (string, error) {
	var substErr error
	out := templateVarPattern.ReplaceAllStringFunc(text, func(token string) string {
		path := templateVarPattern.FindStringSubmatch(token)[1]
		v, ok := Resolve(record, path)
		if !ok {
			return token
		}
		s, ok := scalarString(v)
		if !ok {
			if substErr == nil {
				substErr = fmt.Errorf("template variable %q resolves to a non-scalar value", path)
			}
			return token
		}
		return s
	})
	if substErr != nil {
		return "", substErr
	}
	return out, nil
}

// HasTemplateVars reports whether text contains any {{ }} tokens.
func HasTemplateVars(text string) bool {
	return templateVarPattern.MatchString(text)
}
