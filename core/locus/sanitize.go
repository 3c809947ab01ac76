package locus

import "strings"

// Sanitizer maps locus names onto filesystem-safe file stems and remembers
// the reverse mapping. Assembler-derived locus names can contain '/', which
// cannot appear in a filename; the substitution happens exactly once, here,
// so downstream components can recover the original name.
type Sanitizer struct {
	orig map[string]string
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{orig: make(map[string]string)}
}

// Sanitize returns name with every '/' replaced by '-' and records the
// mapping back to the original.
func (s *Sanitizer) Sanitize(name string) string {
	clean := strings.ReplaceAll(name, "/", "-")
	s.orig[clean] = name
	return clean
}

// Original returns the locus name that produced the sanitized form.
func (s *Sanitizer) Original(clean string) (string, bool) {
	name, ok := s.orig[clean]
	return name, ok
}
