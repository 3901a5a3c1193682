package page

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadSelector is returned for selectors outside the supported grammar:
// comma-separated groups of compound selectors (tag, #id, .class) joined by
// the descendant combinator.
var ErrBadSelector = errors.New("page: unsupported selector")

// Selector is a parsed selector group.
type Selector struct {
	alternatives [][]compound // each alternative is a descendant chain, outermost first
}

type compound struct {
	tag     string
	id      string
	classes []string
}

// ParseSelector parses s.
func ParseSelector(s string) (Selector, error) {
	var sel Selector
	for _, group := range strings.Split(s, ",") {
		fields := strings.Fields(group)
		if len(fields) == 0 {
			return Selector{}, fmt.Errorf("%w: %q", ErrBadSelector, s)
		}
		chain := make([]compound, 0, len(fields))
		for _, f := range fields {
			c, err := parseCompound(f)
			if err != nil {
				return Selector{}, fmt.Errorf("%w: %q", err, s)
			}
			chain = append(chain, c)
		}
		sel.alternatives = append(sel.alternatives, chain)
	}
	return sel, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	for i < len(s) && s[i] != '.' && s[i] != '#' {
		i++
	}
	c.tag = s[:i]
	if c.tag == "*" {
		c.tag = ""
	}
	for i < len(s) {
		kind := s[i]
		j := i + 1
		for j < len(s) && s[j] != '.' && s[j] != '#' {
			j++
		}
		name := s[i+1 : j]
		if name == "" {
			return compound{}, ErrBadSelector
		}
		if kind == '#' {
			c.id = name
		} else {
			c.classes = append(c.classes, name)
		}
		i = j
	}
	if !validName(c.tag) || !validName(c.id) {
		return compound{}, ErrBadSelector
	}
	for _, cl := range c.classes {
		if !validName(cl) {
			return compound{}, ErrBadSelector
		}
	}
	return c, nil
}

func validName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func (c compound) matches(el *Element) bool {
	if c.tag != "" && !strings.EqualFold(c.tag, el.Tag) {
		return false
	}
	if c.id != "" && c.id != el.ID {
		return false
	}
	for _, cl := range c.classes {
		if !el.HasClass(cl) {
			return false
		}
	}
	return true
}

// Matches reports whether el satisfies any alternative of the selector.
func (s Selector) Matches(el *Element) bool {
	for _, chain := range s.alternatives {
		if matchChain(chain, el) {
			return true
		}
	}
	return false
}

// matchChain matches the last compound against el and the rest, right to
// left, against its ancestors.
func matchChain(chain []compound, el *Element) bool {
	last := len(chain) - 1
	if !chain[last].matches(el) {
		return false
	}
	i := last - 1
	for anc := el.parent; anc != nil && i >= 0; anc = anc.parent {
		if chain[i].matches(anc) {
			i--
		}
	}
	return i < 0
}
