package scaffold

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Built-in placeholder tokens.
const (
	TokenProjectName       = "__PROJECT_NAME__"
	TokenProjectIdentifier = "__PROJECT_IDENTIFIER__"
	TokenProjectTitle      = "__PROJECT_TITLE__"
	TokenSecretKey         = "__SECRET_KEY__"
)

// SecretKeyPlaceholder is substituted for TokenSecretKey. The user replaces
// it before deploying; no secret is generated here.
const SecretKeyPlaceholder = "change-me-before-deploying"

// RenderContext maps placeholder tokens to their substitution values.
// It is read-only once built.
type RenderContext struct {
	values   map[string]string
	tokens   []string // longest first
	replacer *strings.Replacer
}

// NewRenderContext builds the context for name. extra holds additional static
// tokens (from the template manifest); they may not redefine built-in tokens
// and their values may not contain any token.
func NewRenderContext(name ProjectName, extra map[string]string) (*RenderContext, error) {
	values := map[string]string{
		TokenProjectName:       name.String(),
		TokenProjectIdentifier: name.Identifier(),
		TokenProjectTitle:      name.Title(),
		TokenSecretKey:         SecretKeyPlaceholder,
	}
	for token, value := range extra {
		if _, builtin := values[token]; builtin {
			return nil, fmt.Errorf("placeholder %s is built in and cannot be redefined", token)
		}
		values[token] = value
	}

	tokens := make([]string, 0, len(values))
	for token := range values {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	for _, token := range tokens {
		for _, other := range tokens {
			if strings.Contains(values[token], other) {
				return nil, fmt.Errorf("value of placeholder %s contains placeholder %s", token, other)
			}
		}
	}

	oldnew := make([]string, 0, len(tokens)*2)
	for _, token := range tokens {
		oldnew = append(oldnew, token, values[token])
	}

	return &RenderContext{
		values:   values,
		tokens:   tokens,
		replacer: strings.NewReplacer(oldnew...),
	}, nil
}

// Value returns the substitution for token.
func (c *RenderContext) Value(token string) (string, bool) {
	v, ok := c.values[token]
	return v, ok
}

// Tokens returns the known tokens, longest first.
func (c *RenderContext) Tokens() []string {
	return append([]string(nil), c.tokens...)
}

// Render substitutes every occurrence of every token in data.
func (c *RenderContext) Render(data []byte) []byte {
	return []byte(c.replacer.Replace(string(data)))
}

// RenderString is Render for strings.
func (c *RenderContext) RenderString(s string) string {
	return c.replacer.Replace(s)
}

// Unrendered returns the tokens still present in data.
func (c *RenderContext) Unrendered(data []byte) []string {
	var found []string
	s := string(data)
	for _, token := range c.tokens {
		if strings.Contains(s, token) {
			found = append(found, token)
		}
	}
	return found
}

var tokenPattern = regexp.MustCompile(`__[A-Z][A-Z0-9_]*__`)

// UnknownTokens returns the distinct placeholder-shaped markers in rendered
// data, in order of first appearance.
func UnknownTokens(data []byte) []string {
	var found []string
	seen := make(map[string]bool)
	for _, m := range tokenPattern.FindAll(data, -1) {
		token := string(m)
		if !seen[token] {
			seen[token] = true
			found = append(found, token)
		}
	}
	return found
}
