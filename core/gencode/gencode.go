// Package gencode exposes the NCBI genetic code translation tables, keyed by
// their standard integer ids, far enough to answer the one question the
// codon cleaner asks: is this codon a stop under the chosen code?
package gencode

import (
	"fmt"
	"sort"
)

var bases = []byte("tcag")

// Code is one translation table.
type Code struct {
	ID    int
	Name  string
	stops map[string]bool
}

// New returns the translation table with the given NCBI id. Id 0 is accepted
// as shorthand for the standard code (table 1).
func New(id int) (*Code, error) {
	if id == 0 {
		id = 1
	}
	t, ok := tables[id]
	if !ok {
		return nil, fmt.Errorf("gencode: unknown translation table %d", id)
	}
	c := &Code{ID: id, Name: t.name, stops: make(map[string]bool, 4)}
	for i := 0; i < 64; i++ {
		if t.aa[i] == '*' {
			c.stops[codonAt(i)] = true
		}
	}
	return c, nil
}

// codonAt decodes table index i (bases ordered t,c,a,g; first base slowest)
// into its lowercase codon string.
func codonAt(i int) string {
	return string([]byte{bases[i>>4], bases[(i>>2)&3], bases[i&3]})
}

// IsStop reports whether the lowercase codon is a stop codon of this code.
func (c *Code) IsStop(codon string) bool { return c.stops[codon] }

// StopCodons returns the sorted stop codon set.
func (c *Code) StopCodons() []string {
	out := make([]string, 0, len(c.stops))
	for s := range c.stops {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Translate returns the one-letter amino acid for a lowercase codon, or '*'
// for stops. The second return is false for codons outside {a,c,g,t}^3.
func Translate(id int, codon string) (byte, bool) {
	if id == 0 {
		id = 1
	}
	t, ok := tables[id]
	if !ok || len(codon) != 3 {
		return 0, false
	}
	idx := 0
	for i := 0; i < 3; i++ {
		b := baseIndex(codon[i])
		if b < 0 {
			return 0, false
		}
		idx = idx<<2 | b
	}
	return t.aa[idx], true
}

func baseIndex(b byte) int {
	switch b {
	case 't':
		return 0
	case 'c':
		return 1
	case 'a':
		return 2
	case 'g':
		return 3
	}
	return -1
}
