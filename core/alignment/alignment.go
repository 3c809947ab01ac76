// Package alignment holds an in-memory multiple sequence alignment and its
// FASTA/NEXUS serializations. An Alignment is an ordered list of named,
// equal-length nucleotide sequences; all state lives in the value itself so
// repeated reads and filters never interact.
package alignment

import (
	"errors"
	"fmt"
)

// Format identifies the on-disk serialization of an alignment.
type Format int

const (
	FormatFasta Format = iota
	FormatNexus
)

func (f Format) String() string {
	if f == FormatNexus {
		return "nexus"
	}
	return "fasta"
}

// Record is one named sequence of an alignment.
type Record struct {
	Name string
	Seq  []byte
}

// Alignment is an ordered set of equal-length sequences. Names are unique.
type Alignment struct {
	Path    string // source file, if read from disk
	Format  Format
	Records []Record
}

// ErrMalformed reports an alignment whose character length is not a positive
// multiple of three, i.e. not in-frame codon data.
var ErrMalformed = errors.New("alignment length is not a positive multiple of 3")

// MalformedError wraps ErrMalformed with the offending alignment.
type MalformedError struct {
	Path  string
	NChar int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("alignment %s: length %d is not exactly divisible by 3", e.Path, e.NChar)
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }

// New builds an alignment from records, enforcing unique names and equal
// sequence lengths.
func New(records []Record) (*Alignment, error) {
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if seen[r.Name] {
			return nil, fmt.Errorf("duplicate sequence name %q", r.Name)
		}
		seen[r.Name] = true
		if len(r.Seq) != len(records[0].Seq) {
			return nil, fmt.Errorf("sequence %q has length %d, others have length %d",
				r.Name, len(records[i].Seq), len(records[0].Seq))
		}
	}
	return &Alignment{Records: records}, nil
}

// NSeq returns the number of sequences.
func (a *Alignment) NSeq() int { return len(a.Records) }

// NChar returns the alignment length in characters.
func (a *Alignment) NChar() int {
	if len(a.Records) == 0 {
		return 0
	}
	return len(a.Records[0].Seq)
}

// NCodons returns the number of codon sites (NChar / 3).
func (a *Alignment) NCodons() int { return a.NChar() / 3 }

// CheckCodon verifies the in-frame precondition: a positive character length
// divisible by 3. It returns a *MalformedError otherwise.
func (a *Alignment) CheckCodon() error {
	n := a.NChar()
	if n == 0 || n%3 != 0 {
		return &MalformedError{Path: a.Path, NChar: n}
	}
	return nil
}
