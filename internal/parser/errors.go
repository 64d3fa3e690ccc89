package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParseError reports a syntax error with a best-effort source location.
// Line is 1-based, Column is a 0-based byte column.
type ParseError struct {
	Path    string
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column+1, e.Message)
}

func syntaxError(path string, root *sitter.Node) *ParseError {
	missing := findFirst(root, (*sitter.Node).IsMissing)
	at := missing
	if at == nil {
		at = findFirst(root, (*sitter.Node).IsError)
	}
	if at == nil {
		at = root
	}
	message := "syntax error"
	if missing != nil {
		message = fmt.Sprintf("syntax error: expected %s", formatExpectedKind(missing.Kind()))
	}
	pos := at.StartPosition()
	return &ParseError{
		Path:    path,
		Message: message,
		Line:    int(pos.Row) + 1,
		Column:  int(pos.Column),
	}
}

// findFirst returns the first node in pre-order for which match holds,
// descending only into subtrees that contain an error.
func findFirst(n *sitter.Node, match func(*sitter.Node) bool) *sitter.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if found := findFirst(n.Child(i), match); found != nil {
			return found
		}
	}
	return nil
}

// formatExpectedKind renders a grammar symbol ("type_annotation") as words
// and a literal token (";") quoted.
func formatExpectedKind(kind string) string {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return "token"
	}
	for _, r := range kind {
		if r != '_' && !unicode.IsLetter(r) {
			return strconv.Quote(kind)
		}
	}
	return strings.ReplaceAll(kind, "_", " ")
}
