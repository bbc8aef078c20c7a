package access

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ghetzel/go-stockutil/stringutil"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dot notation
//
// Parse compiles a dot-notation expression into a Path, and Get/Has apply one
// directly. The notation mirrors how the access would be written in Go:
//
//	user.address.city      property steps
//	items.0 / items[0]     index steps
//	meta["content-type"]   index with a quoted key
//	Name() / Greet("bob")  call steps with literal arguments
//
// Example subject:
//
//	m := map[string]any{
//	    "user": map[string]any{
//	        "name":    "Alice",
//	        "address": map[string]any{"city": "London"},
//	        "tags":    []string{"admin", "ops"},
//	    },
//	}
//
//	Get(m, "user.address.city")   → "London"
//	Get(m, "user.tags[1]")        → "ops"
//	Get(m, "user.age", 30)        → 30
//	Has(m, "user.name")           → true
// ─────────────────────────────────────────────────────────────────────────────

// Parse compiles expr into a path. The empty expression yields an empty path.
//
// Bare numeric segments and unquoted numeric bracket keys become int index
// steps. Call arguments may be quoted strings, numbers, true, false or nil.
func Parse(expr string) (*Path, error) {
	s := &scanner{src: expr}
	p := New()
	afterDot := false
	for !s.done() {
		c := s.peek()
		switch {
		case c == '.':
			if s.pos == 0 || afterDot {
				return nil, s.fail("empty segment")
			}
			s.pos++
			afterDot = true
			if s.done() {
				return nil, s.fail("trailing dot")
			}
			continue
		case c == '[':
			if afterDot {
				return nil, s.fail("bracket after dot")
			}
			key, err := s.bracket()
			if err != nil {
				return nil, err
			}
			p.Index(key)
		case isNameByte(c):
			if s.pos > 0 && !afterDot {
				return nil, s.fail("missing dot")
			}
			name := s.name()
			if !s.done() && s.peek() == '(' {
				args, err := s.args()
				if err != nil {
					return nil, err
				}
				p.Call(name, args...)
			} else if n, err := strconv.Atoi(name); err == nil {
				p.Index(n)
			} else {
				p.Property(name)
			}
		default:
			return nil, s.fail(fmt.Sprintf("unexpected %q", c))
		}
		afterDot = false
	}
	return p, nil
}

// MustParse is like [Parse] but panics if expr is malformed.
func MustParse(expr string) *Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Get applies the dot-notation expr to subject. Returns def[0] (or nil) when
// the path resolves to nothing or expr is malformed.
//
//	Get(m, "user.address.city")        // "London"
//	Get(m, "user.missing", "default")  // "default"
func Get(subject any, expr string, def ...any) any {
	p, err := Parse(expr)
	if err == nil {
		if v := p.Apply(subject); v != nil {
			return v
		}
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Has reports whether expr resolves to a non-nil value in subject.
func Has(subject any, expr string) bool {
	return Get(subject, expr) != nil
}

// HasAll reports whether every expression resolves in subject.
func HasAll(subject any, exprs ...string) bool {
	for _, expr := range exprs {
		if !Has(subject, expr) {
			return false
		}
	}
	return true
}

// HasAny reports whether any of the expressions resolves in subject.
func HasAny(subject any, exprs ...string) bool {
	for _, expr := range exprs {
		if Has(subject, expr) {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Scanner
// ─────────────────────────────────────────────────────────────────────────────

type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool { return s.pos >= len(s.src) }
func (s *scanner) peek() byte { return s.src[s.pos] }

func (s *scanner) fail(msg string) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrInvalidPath, s.src, s.pos, msg)
}

func isNameByte(c byte) bool {
	switch c {
	case '.', '[', ']', '(', ')', '"', '`', ',', ' ', '\t', '\n':
		return false
	}
	return true
}

func (s *scanner) name() string {
	start := s.pos
	for !s.done() && isNameByte(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// quoted reads a "..." or `...` literal starting at the current position.
func (s *scanner) quoted() (string, error) {
	q := s.peek()
	start := s.pos
	s.pos++
	for !s.done() {
		c := s.peek()
		s.pos++
		if c == '\\' && q == '"' {
			s.pos++
			continue
		}
		if c == q {
			str, err := strconv.Unquote(s.src[start:s.pos])
			if err != nil {
				return "", s.fail("bad string literal")
			}
			return str, nil
		}
	}
	return "", s.fail("unterminated string")
}

// bracket reads `[key]`.
func (s *scanner) bracket() (any, error) {
	s.pos++
	if s.done() {
		return nil, s.fail("unterminated bracket")
	}
	var key any
	if c := s.peek(); c == '"' || c == '`' {
		str, err := s.quoted()
		if err != nil {
			return nil, err
		}
		key = str
	} else {
		end := strings.IndexByte(s.src[s.pos:], ']')
		if end < 0 {
			return nil, s.fail("unterminated bracket")
		}
		raw := strings.TrimSpace(s.src[s.pos : s.pos+end])
		if raw == "" {
			return nil, s.fail("empty bracket")
		}
		s.pos += end
		if n, err := strconv.Atoi(raw); err == nil {
			key = n
		} else {
			key = raw
		}
	}
	if s.done() || s.peek() != ']' {
		return nil, s.fail("expected ]")
	}
	s.pos++
	return key, nil
}

// args reads `(a, b, ...)`.
func (s *scanner) args() ([]any, error) {
	s.pos++
	var out []any
	for {
		s.skipSpace()
		if s.done() {
			return nil, s.fail("unterminated call")
		}
		if s.peek() == ')' && len(out) == 0 {
			s.pos++
			return out, nil
		}
		v, err := s.literal()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		s.skipSpace()
		if s.done() {
			return nil, s.fail("unterminated call")
		}
		switch s.peek() {
		case ',':
			s.pos++
		case ')':
			s.pos++
			return out, nil
		default:
			return nil, s.fail("expected , or )")
		}
	}
}

func (s *scanner) literal() (any, error) {
	if c := s.peek(); c == '"' || c == '`' {
		return s.quoted()
	}
	start := s.pos
	for !s.done() && s.peek() != ',' && s.peek() != ')' {
		s.pos++
	}
	raw := strings.TrimSpace(s.src[start:s.pos])
	switch raw {
	case "":
		return nil, s.fail("empty argument")
	case "nil", "null":
		return nil, nil
	}
	if strings.ContainsAny(raw, " \t") {
		return nil, s.fail("expected , or )")
	}
	return stringutil.Autotype(raw), nil
}

func (s *scanner) skipSpace() {
	for !s.done() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
}
