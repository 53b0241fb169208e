// Package newick rewrites tip labels of Newick trees. Everything except
// tip labels (topology, branch lengths, support values, comments) is kept
// byte for byte.
package newick

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnbalanced   = errors.New("unbalanced parentheses")
	ErrUnterminated = errors.New("tree is not terminated by ';'")
	ErrQuote        = errors.New("unterminated quoted label")
	ErrComment      = errors.New("unterminated comment")
)

// RenameTips applies fn to every tip label of every tree in s. Quoted
// labels are passed to fn without quotes and quoted again if the result
// needs it.
func RenameTips(s string, fn func(string) string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(s))

	depth := 0
	trees := 0
	expectNode := true
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return "", ErrComment
			}
			sb.WriteString(s[i : i+end+1])
			i += end + 1
		case c == '(':
			depth++
			expectNode = true
			sb.WriteByte(c)
			i++
		case c == ')':
			depth--
			if depth < 0 {
				return "", fmt.Errorf("%w at byte %d", ErrUnbalanced, i)
			}
			expectNode = false
			sb.WriteByte(c)
			i++
		case c == ',':
			expectNode = true
			sb.WriteByte(c)
			i++
		case c == ';':
			if depth != 0 {
				return "", fmt.Errorf("%w at byte %d", ErrUnbalanced, i)
			}
			trees++
			expectNode = true
			sb.WriteByte(c)
			i++
		case isSpace(c):
			sb.WriteByte(c)
			i++
		case expectNode && c == '\'':
			label, n, err := readQuoted(s[i:])
			if err != nil {
				return "", err
			}
			sb.WriteString(quote(fn(label)))
			i += n
			expectNode = false
		case expectNode && c != ':':
			n := labelLen(s[i:])
			sb.WriteString(fn(s[i : i+n]))
			i += n
			expectNode = false
		default:
			// branch lengths, internal labels
			expectNode = false
			n := labelLen(s[i:])
			if n == 0 {
				n = 1
			}
			sb.WriteString(s[i : i+n])
			i += n
		}
	}

	if depth != 0 {
		return "", ErrUnbalanced
	}
	if trees == 0 || !strings.HasSuffix(strings.TrimSpace(s), ";") {
		return "", ErrUnterminated
	}
	return sb.String(), nil
}

// SpeciesTip keeps the part of a label before the first '-', so
// 'Psost1-12345' becomes 'Psost1'.
func SpeciesTip(label string) string {
	if i := strings.IndexByte(label, '-'); i >= 0 {
		return label[:i]
	}
	return label
}

func labelLen(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', ')', ',', ':', ';', '[', '\'':
			return i
		}
		if isSpace(s[i]) {
			return i
		}
	}
	return len(s)
}

// readQuoted reads a single-quoted label, two quotes inside stand for one.
func readQuoted(s string) (string, int, error) {
	var sb strings.Builder
	for i := 1; i < len(s); i++ {
		if s[i] != '\'' {
			sb.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			sb.WriteByte('\'')
			i++
			continue
		}
		return sb.String(), i + 1, nil
	}
	return "", 0, ErrQuote
}

func quote(label string) string {
	if !strings.ContainsAny(label, "()[]':;, \t\n") {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
