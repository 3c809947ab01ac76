// Package codon removes codon sites from an in-frame nucleotide alignment.
//
// A codon site is the set of homologous in-frame triplets at one offset
// across all sequences. Sites containing gaps, ambiguities, or stop codons
// of the chosen genetic code are dropped and the surviving sites are
// reassembled, in order, into a new alignment. The whole computation is a
// pure function of its inputs: nothing persists between calls.
package codon

import (
	"fmt"

	"locuspipe-core/alignment"
	"locuspipe-core/gencode"
)

// Checks selects which codon-site defects cause removal. The zero value
// means "remove everything suspicious": if none of the three is set, all
// three are enabled.
type Checks struct {
	Ambiguous bool
	Gaps      bool
	Stops     bool
}

func (c Checks) none() bool { return !c.Ambiguous && !c.Gaps && !c.Stops }

// Effective resolves the default policy: with no check selected, all three
// are enabled.
func (c Checks) Effective() Checks {
	if c.none() {
		return Checks{Ambiguous: true, Gaps: true, Stops: true}
	}
	return c
}

// Options configure one filtering pass.
type Options struct {
	Checks
	// Constant removes a site only when every sequence shows the same
	// defect there, rather than any single sequence.
	Constant bool
	// Code is the NCBI translation table id; 0 means the standard code.
	Code int
}

// Counts reports the fate of every codon site of one pass. Each site lands
// in exactly one bucket: retained, or removed under the first check that
// fired (checks run in the fixed order ambiguous, gap, stop).
type Counts struct {
	Retained  int
	Ambiguous int
	Gaps      int
	Stops     int
}

// Total returns the number of sites accounted for.
func (c Counts) Total() int { return c.Retained + c.Ambiguous + c.Gaps + c.Stops }

// InternalConsistencyError reports a site that was counted twice or not at
// all. It indicates a defect in the filter itself, never bad input, and
// callers must treat it as fatal.
type InternalConsistencyError struct {
	Counted, Sites int
}

func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("codon filter: %d sites counted, alignment has %d", e.Counted, e.Sites)
}

// Filter classifies every codon site of a and rebuilds the alignment from
// the retained sites. The input is left untouched.
//
// The returned alignment keeps a's path, format, names and sequence order;
// its length is 3× the retained site count. When no site survives the
// returned alignment is nil (with valid counts): a legitimate outcome, not
// an error. A non-codon input (length zero or not divisible by 3) yields a
// *alignment.MalformedError before any site is examined.
func Filter(a *alignment.Alignment, opt Options) (*alignment.Alignment, Counts, error) {
	var counts Counts
	if err := a.CheckCodon(); err != nil {
		return nil, counts, err
	}
	code, err := gencode.New(opt.Code)
	if err != nil {
		return nil, counts, err
	}
	checks := opt.Checks.Effective()

	nSites := a.NCodons()
	keep := make([]bool, nSites)
	for s := 0; s < nSites; s++ {
		off := 3 * s
		if opt.Constant {
			keep[s] = !removeConstant(a, off, checks, code, &counts)
		} else {
			keep[s] = !removeAny(a, off, checks, code, &counts)
		}
		if keep[s] {
			counts.Retained++
		}
	}

	if counts.Total() != nSites {
		return nil, counts, &InternalConsistencyError{Counted: counts.Total(), Sites: nSites}
	}
	if counts.Retained == 0 {
		return nil, counts, nil
	}

	out := &alignment.Alignment{
		Path:    a.Path,
		Format:  a.Format,
		Records: make([]alignment.Record, a.NSeq()),
	}
	for i, r := range a.Records {
		seq := make([]byte, 0, 3*counts.Retained)
		for s := 0; s < nSites; s++ {
			if keep[s] {
				seq = append(seq, r.Seq[3*s:3*s+3]...)
			}
		}
		out.Records[i] = alignment.Record{Name: r.Name, Seq: seq}
	}
	return out, counts, nil
}

// removeAny applies the any-sequence policy to the site at offset off:
// walking sequences in order, the first enabled check that fires removes the
// whole site and claims the attribution.
func removeAny(a *alignment.Alignment, off int, checks Checks, code *gencode.Code, counts *Counts) bool {
	for _, r := range a.Records {
		c := r.Seq[off : off+3]
		if checks.Ambiguous && isAmbiguous(c) {
			counts.Ambiguous++
			return true
		}
		if checks.Gaps && isGapped(c) {
			counts.Gaps++
			return true
		}
		if checks.Stops && code.IsStop(string(c)) {
			counts.Stops++
			return true
		}
	}
	return false
}

// removeConstant applies the constant policy: each enabled check is tested
// against every sequence's codon, and the first check satisfied by all of
// them removes the site.
func removeConstant(a *alignment.Alignment, off int, checks Checks, code *gencode.Code, counts *Counts) bool {
	all := func(pred func([]byte) bool) bool {
		for _, r := range a.Records {
			if !pred(r.Seq[off : off+3]) {
				return false
			}
		}
		return true
	}
	if checks.Ambiguous && all(isAmbiguous) {
		counts.Ambiguous++
		return true
	}
	if checks.Gaps && all(isGapped) {
		counts.Gaps++
		return true
	}
	if checks.Stops && all(func(c []byte) bool { return code.IsStop(string(c)) }) {
		counts.Stops++
		return true
	}
	return false
}
