// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"locuspipe/internal/cliutil"
	"locuspipe/internal/version"
)

// Options holds the codonclean flags and the positional alignment path.
type Options struct {
	Alignment string

	Table     int
	Ambiguous bool
	Gaps      bool
	Stops     bool
	Constant  bool

	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: remove gapped, ambiguous, or stop codon sites from an in-frame alignment

A codon site is the in-frame nucleotide triplet homologous across all
sequences. By default a site is removed when any sequence shows a gap, an
ambiguity, or a stop codon of the selected genetic code; with --constant a
site goes only when every sequence shows the defect. If none of
--ambiguous/--gaps/--stops is given, all three are removed.

Version: %s

Usage: %s [flags] <alignment>
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.IntVar(&opt.Table, "t", 1, "NCBI genetic code translation table (shorthand) [1]")
	fs.IntVar(&opt.Table, "table", 1, "NCBI genetic code translation table [1]")
	fs.BoolVar(&opt.Ambiguous, "a", false, "remove codon sites containing ambiguities (shorthand) [false]")
	fs.BoolVar(&opt.Ambiguous, "ambiguous", false, "remove codon sites containing ambiguities [false]")
	fs.BoolVar(&opt.Gaps, "g", false, "remove gapped codon sites (shorthand) [false]")
	fs.BoolVar(&opt.Gaps, "gaps", false, "remove gapped codon sites [false]")
	fs.BoolVar(&opt.Stops, "s", false, "remove codon sites containing stop codons (shorthand) [false]")
	fs.BoolVar(&opt.Stops, "stops", false, "remove codon sites containing stop codons [false]")
	fs.BoolVar(&opt.Constant, "c", false, "only remove a site when all sequences have the target (shorthand) [false]")
	fs.BoolVar(&opt.Constant, "constant", false, "only remove a site when all sequences have the target [false]")
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

	// Validation
	switch len(posArgs) {
	case 0:
		return opt, errors.New("an alignment file is required")
	case 1:
		opt.Alignment = posArgs[0]
	default:
		return opt, fmt.Errorf("exactly one alignment expected, got %d arguments", len(posArgs))
	}
	if opt.Table < 1 {
		return opt, errors.New("--table must be ≥ 1")
	}
	return opt, nil
}
