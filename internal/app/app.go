// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"locuspipe-core/alignment"
	"locuspipe-core/codon"
	"locuspipe/internal/appcore"
	"locuspipe/internal/cli"
	"locuspipe/internal/pretty"
)

// RunContext is the codonclean entry point.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("codonclean")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if done, code := appcore.Startup(fs, err, len(argv), opts.Version, stdout, stderr); done {
		return code
	}
	if ctx.Err() != nil {
		return 130
	}

	pr := pretty.Printer{W: stdout, Quiet: opts.Quiet}
	fopt := codon.Options{
		Checks: codon.Checks{
			Ambiguous: opts.Ambiguous,
			Gaps:      opts.Gaps,
			Stops:     opts.Stops,
		},
		Constant: opts.Constant,
		Code:     opts.Table,
	}
	if err := CleanFile(opts.Alignment, fopt, pr); err != nil {
		if errors.Is(err, alignment.ErrMalformed) {
			fmt.Fprintln(stderr, err)
			fmt.Fprintln(stderr, "The assumption is made that the alignment is in-frame codons")
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	pr.Progressf("\nDone\n")
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// CleanFile reads the alignment at path, filters its codon sites, and writes
// the surviving sites to the derived _cleaned path. It is shared by the
// standalone cleaner and the pipeline driver. When every site is removed no
// file is written.
func CleanFile(path string, opt codon.Options, pr pretty.Printer) error {
	a, err := alignment.Read(path)
	if err != nil {
		return err
	}
	pr.Progressf("\tAlignment has %d characters and %d codon sites...\n", a.NChar(), a.NCodons())

	eff := opt.Checks.Effective()
	if opt.Constant {
		pr.Progressf("\tOnly removing codon sites if all sequences contain target...\n")
	} else {
		pr.Progressf("\tRemoving codon sites if any sequence has target...\n")
	}
	pr.Progressf("\tRemoving gaps: %v, ambiguous: %v, stop codons: %v\n",
		eff.Gaps, eff.Ambiguous, eff.Stops)

	out, counts, err := codon.Filter(a, opt)
	if err != nil {
		return err
	}

	if eff.Ambiguous {
		pr.Progressf("\tRemoved %-3d sites containing ambiguities...\n", counts.Ambiguous)
	}
	if eff.Gaps {
		pr.Progressf("\tRemoved %-3d sites containing gaps...\n", counts.Gaps)
	}
	if eff.Stops {
		pr.Progressf("\tRemoved %-3d sites containing stop codons...\n", counts.Stops)
	}

	if out == nil {
		// Valid terminal outcome, not an error.
		pr.Progressf("\tAll codon sites removed; no remaining sites - no output.\n")
		return nil
	}
	dst := out.CleanedPath()
	if err := out.Write(dst); err != nil {
		return err
	}
	pr.Progressf("\tWritten cleaned alignment (%d codon sites) to: %s\n", counts.Retained, dst)
	return nil
}
