package scaffold

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxNameLength = 100

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Identifiers that would break the generated settings or shadow the framework.
var reservedIdentifiers = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
	"django": true, "olyv": true,
}

// ProjectName is a validated project name.
type ProjectName string

// ParseProjectName validates s and returns it as a ProjectName.
func ParseProjectName(s string) (ProjectName, error) {
	if s == "" {
		return "", fmt.Errorf("project name must not be empty")
	}
	if len(s) > maxNameLength {
		return "", fmt.Errorf("project name %q is longer than %d characters", s, maxNameLength)
	}
	if !namePattern.MatchString(s) {
		return "", fmt.Errorf("project name %q must start with a letter and contain only letters, digits, '-' or '_'", s)
	}
	n := ProjectName(s)
	if reservedIdentifiers[n.Identifier()] {
		return "", fmt.Errorf("project name %q is reserved", s)
	}
	return n, nil
}

func (n ProjectName) String() string { return string(n) }

// Identifier returns the name as a lowercase identifier ("My-Blog" → "my_blog").
func (n ProjectName) Identifier() string {
	return strings.ToLower(strings.ReplaceAll(string(n), "-", "_"))
}

// Title returns a display title ("my-blog" → "My Blog").
func (n ProjectName) Title() string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(string(n))
	return cases.Title(language.English).String(strings.Join(strings.Fields(words), " "))
}
