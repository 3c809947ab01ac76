// internal/groupcli/options.go
package groupcli

import (
	"errors"
	"flag"
	"fmt"

	"locuspipe/internal/cliutil"
	"locuspipe/internal/version"
)

// Options holds the locusgroup flags and positional list files.
type Options struct {
	DataList  string // file listing per-taxon FASTA paths, one per line
	LocusList string // file listing locus tags, one per line

	OutDir string
	CSVLog bool
	JSON   bool

	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: sort per-taxon transcriptome records into per-locus FASTA files

Records are labeled <identifier>|<locus>; every record whose locus tag
matches a requested locus is collected across all data files into
<outdir>/<locus>.fasta ('/' in locus names becomes '-').

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
	fs.BoolVar(&opt.CSVLog, "l", false, "write a csv formatted log file (shorthand) [false]")
	fs.BoolVar(&opt.CSVLog, "write-csv", false, "write a csv formatted log file [false]")
	fs.BoolVar(&opt.JSON, "json", false, "emit per-locus stats as JSON lines on stdout [false]")
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
	if opt.OutDir == "" {
		return opt, errors.New("--output-dir must not be empty")
	}
	return opt, nil
}
