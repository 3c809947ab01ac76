package alignment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// cleanedSuffix is appended to the basename of a filtered alignment.
const cleanedSuffix = "_cleaned"

// CleanedPath derives the output path for the filtered form of this
// alignment: <base>_cleaned.fasta for FASTA inputs, <base>_cleaned.nex for
// NEXUS inputs.
func (a *Alignment) CleanedPath() string {
	ext := filepath.Ext(a.Path)
	base := strings.TrimSuffix(a.Path, ext)
	switch a.Format {
	case FormatNexus:
		return base + cleanedSuffix + ".nex"
	default:
		return base + cleanedSuffix + ".fasta"
	}
}

// Write persists the alignment to path in its Format.
func (a *Alignment) Write(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	var werr error
	if a.Format == FormatNexus {
		werr = a.WriteNexus(fh)
	} else {
		werr = a.WriteFasta(fh)
	}
	if cerr := fh.Close(); werr == nil {
		werr = cerr
	}
	return werr
}

// WriteFasta writes the alignment as wrapped FASTA.
func (a *Alignment) WriteFasta(w io.Writer) error {
	fw := fasta.NewWriter(w, 60)
	for _, r := range a.Records {
		s := linear.NewSeq(r.Name, alphabet.BytesToLetters(r.Seq), alphabet.DNAgapped)
		if _, err := fw.Write(s); err != nil {
			return err
		}
	}
	return nil
}

// WriteNexus writes the alignment as a NEXUS data block with one row per
// sequence, names padded into a column. Names containing whitespace are
// single-quoted.
func (a *Alignment) WriteNexus(w io.Writer) error {
	width := 0
	for _, r := range a.Records {
		if n := len(nexusName(r.Name)); n > width {
			width = n
		}
	}
	if _, err := fmt.Fprintf(w, "#NEXUS\n\nbegin data;\n"+
		"  dimensions ntax=%d nchar=%d;\n"+
		"  format datatype=dna gap=- missing=?;\n"+
		"  matrix\n", a.NSeq(), a.NChar()); err != nil {
		return err
	}
	for _, r := range a.Records {
		if _, err := fmt.Fprintf(w, "    %-*s  %s\n", width, nexusName(r.Name), r.Seq); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "  ;\nend;\n")
	return err
}

func nexusName(name string) string {
	if strings.ContainsAny(name, " \t") {
		return "'" + name + "'"
	}
	return name
}
