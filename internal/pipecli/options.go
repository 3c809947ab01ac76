// internal/pipecli/options.go
package pipecli

import (
	"errors"
	"flag"
	"fmt"

	"locuspipe/internal/cliutil"
	"locuspipe/internal/version"
)

// Options holds the locuspipe driver flags and positional list files.
type Options struct {
	DataList  string
	LocusList string

	OutDir    string
	WriteLoci bool
	Table     int

	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: align and clean transcriptome loci for phylogenetic analysis

For every requested locus the driver groups the per-taxon records
(optionally, with -w), aligns them with TranslatorX (incl. Gblocks), and
removes any codon site still containing a gap, ambiguity, or stop codon.
What remains are solid blocks of in-frame codon-aligned data. Loci already
attempted are skipped; aligner failures are logged and the batch continues.

Version: %s

Usage: %s [flags] <data-file-list> <locus-list>
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.OutDir, "d", "locus_alignments", "output directory name (shorthand) [locus_alignments]")
	fs.StringVar(&opt.OutDir, "output-dir", "locus_alignments", "output directory name [locus_alignments]")
	fs.BoolVar(&opt.WriteLoci, "w", false, "write the locus data files first (shorthand) [false]")
	fs.BoolVar(&opt.WriteLoci, "write-loci", false, "write the locus data files first [false]")
	fs.IntVar(&opt.Table, "t", 1, "NCBI genetic code translation table (shorthand) [1]")
	fs.IntVar(&opt.Table, "table", 1, "NCBI genetic code translation table [1]")
	fs.BoolVar(&opt.Quiet, "q", false, "quiet - do not write progress (shorthand) [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "quiet - do not write progress [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	if len(posArgs) != 2 {
		return opt, errors.New("a data-file list and a locus list are required")
	}
	opt.DataList = posArgs[0]
	opt.LocusList = posArgs[1]
	if opt.Table < 1 {
		return opt, errors.New("--table must be ≥ 1")
	}
	return opt, nil
}
