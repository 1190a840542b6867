package vdom

import "strings"

// Selector is a parsed node selector.
type Selector struct {
	Tag     string
	ID      string
	HasID   bool
	Classes []string // nil when the selector has no class fragment
}

// ParseSelector splits sel into tag, id and classes.
//
// The id fragment starts at the first '#'. The class fragment starts at the
// first '.' at or after that '#' (or anywhere, when there is no '#'). The tag
// is whatever precedes the earlier of the two. A '.' that precedes the '#'
// therefore stays part of the tag: "a.b#c" has tag "a.b" and id "c".
func ParseSelector(sel string) Selector {
	hashIdx := strings.IndexByte(sel, '#')
	from := hashIdx
	if from < 0 {
		from = 0
	}
	dotIdx := -1
	if i := strings.IndexByte(sel[from:], '.'); i >= 0 {
		dotIdx = from + i
	}

	hash, dot := len(sel), len(sel)
	if hashIdx > 0 {
		hash = hashIdx
	}
	if dotIdx > 0 {
		dot = dotIdx
	}

	var s Selector
	if hashIdx != -1 || dotIdx != -1 {
		s.Tag = sel[:min(hash, dot)]
	} else {
		s.Tag = sel
	}
	if hash < dot {
		s.ID = sel[hash+1 : dot]
		s.HasID = true
	}
	if dotIdx > 0 {
		s.Classes = strings.Split(sel[dot+1:], ".")
	}
	return s
}

// ClassAttr returns the value of the class attribute derived from the
// selector: the class fragments joined by spaces.
func (s Selector) ClassAttr() string {
	return strings.Join(s.Classes, " ")
}

// String reassembles the selector.
func (s Selector) String() string {
	var b strings.Builder
	b.WriteString(s.Tag)
	if s.HasID {
		b.WriteByte('#')
		b.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	return b.String()
}
