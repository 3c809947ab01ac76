package locus

import (
	"fmt"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"locuspipe-core/alignment"
)

// Index groups the records of many per-taxon FASTA files by their locus tag
// (the part of the record label after the first '|').
type Index struct {
	byLocus map[string][]*linear.Seq
}

// BuildIndex streams every record of the given FASTA files (gzip accepted)
// into a locus index. A listed file that does not exist is a
// *MissingFileError. Records whose label carries no '|' separator are
// skipped and reported in the returned warnings.
func BuildIndex(paths []string) (*Index, []string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, nil, &MissingFileError{Path: p}
		}
	}

	ix := &Index{byLocus: make(map[string][]*linear.Seq)}
	var warnings []string
	for _, p := range paths {
		rc, err := alignment.OpenReader(p)
		if err != nil {
			return nil, nil, err
		}
		sc := seqio.NewScanner(fasta.NewReader(rc, linear.NewSeq("", nil, alphabet.DNAgapped)))
		for sc.Next() {
			s := sc.Seq().(*linear.Seq)
			_, locus, ok := strings.Cut(s.ID, "|")
			if !ok {
				warnings = append(warnings, fmt.Sprintf("%s: record %q has no |locus tag, skipped", p, s.ID))
				continue
			}
			ix.byLocus[locus] = append(ix.byLocus[locus], s)
		}
		err = sc.Error()
		if cerr := rc.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, warnings, fmt.Errorf("%s: %w", p, err)
		}
	}
	return ix, warnings, nil
}

// Records returns all records carrying the given locus tag, in input order.
func (ix *Index) Records(locus string) []*linear.Seq {
	return ix.byLocus[locus]
}

// NumLoci returns the number of distinct locus tags seen.
func (ix *Index) NumLoci() int { return len(ix.byLocus) }
