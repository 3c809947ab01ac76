// internal/pipeapp/app.go
package pipeapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"locuspipe-core/alignment"
	"locuspipe-core/codon"
	"locuspipe-core/locus"
	"locuspipe/internal/app"
	"locuspipe/internal/appcore"
	"locuspipe/internal/groupapp"
	"locuspipe/internal/groupcli"
	"locuspipe/internal/pipecli"
	"locuspipe/internal/pretty"
	"locuspipe/internal/toolx"
)

// RunContext is the locuspipe driver entry point.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunContextWithRunner(ctx, argv, stdout, stderr, toolx.TranslatorX{})
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContextWithRunner lets tests substitute the external aligner.
func RunContextWithRunner(ctx context.Context, argv []string, stdout, stderr io.Writer, runner toolx.Runner) int {
	fs := pipecli.NewFlagSet("locuspipe")
	fs.SetOutput(io.Discard)

	opts, err := pipecli.ParseArgs(fs, argv)
	if done, code := appcore.Startup(fs, err, len(argv), opts.Version, stdout, stderr); done {
		return code
	}

	pr := pretty.Printer{W: stdout, Quiet: opts.Quiet}

	// Step 1: write the per-locus data files, or expect them to be present.
	if opts.WriteLoci {
		_, err := groupapp.Group(groupcli.Options{
			DataList:  opts.DataList,
			LocusList: opts.LocusList,
			OutDir:    opts.OutDir,
			CSVLog:    true,
			Quiet:     opts.Quiet,
		}, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	} else {
		pr.Progressf("Not writing locus data files, expecting them in directory %q\n", opts.OutDir)
	}

	loci, err := locus.ReadList(opts.LocusList)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// Steps 2+3 per locus: align with TranslatorX, then strip any codon
	// site still carrying a gap, ambiguity, or stop.
	san := locus.NewSanitizer()
	dir := opts.OutDir
	for _, l := range loci {
		if ctx.Err() != nil {
			return 130
		}
		name := san.Sanitize(l)

		if _, err := os.Stat(filepath.Join(dir, toolx.DoneMarker(name))); err == nil {
			pr.Progressf("\tSkipping %s - already done\n", name)
			continue
		}

		fi, err := os.Stat(filepath.Join(dir, name+".fasta"))
		if err != nil {
			fmt.Fprintf(stderr, "cannot find locus data file: %s.fasta\n", name)
			return 1
		}
		if fi.Size() == 0 {
			fmt.Fprintf(stderr, "locus file %s.fasta has 0 bytes content\n", name)
			return 1
		}

		pr.Progressf("\tAligning %s with TranslatorX\n", name)
		res, rerr := runner.Align(ctx, dir, name, opts.Table)
		if rerr != nil {
			if ctx.Err() != nil {
				return 130
			}
			pr.Warnf("\tError running TranslatorX for %s: %v. Continuing...\n", name, rerr)
			_ = toolx.CleanArtifacts(dir, toolx.Artifacts(name))
			continue
		}

		if res.ExitCode != 0 {
			if toolx.BenignFailure(res.Stderr) {
				pr.Progressf("\tGblocks alignment:  0 positions\n")
			} else {
				pr.Warnf("\tError running TranslatorX for %s (exit %d) - see %s. Continuing...\n",
					name, res.ExitCode, toolx.FailureLogName)
				if err := toolx.AppendFailureLog(dir, res); err != nil {
					fmt.Fprintln(stderr, err)
					return 1
				}
			}
			_ = toolx.CleanArtifacts(dir, toolx.FailureArtifacts(name))
		} else if code := cleanLocus(dir, name, opts.Table, pr, stderr); code != 0 {
			return code
		}

		_ = toolx.CleanArtifacts(dir, toolx.Artifacts(name))
	}

	pr.Progressf("\nDone\n")
	return 0
}

// cleanLocus runs the codon-site filter over one aligned locus. A malformed
// alignment only skips the locus; an internal consistency fault halts the
// batch since it marks a filter defect.
func cleanLocus(dir, name string, table int, pr pretty.Printer, stderr io.Writer) int {
	target := filepath.Join(dir, toolx.OutputFile(name))
	if _, err := os.Stat(target); err != nil {
		pr.Warnf("\tCannot find %s. Continuing...\n", target)
		return 0
	}
	err := app.CleanFile(target, codon.Options{Code: table}, pretty.Printer{W: pr.W, Quiet: true})
	if err == nil {
		return 0
	}
	if errors.Is(err, alignment.ErrMalformed) {
		pr.Warnf("\t%v - skipping locus %s\n", err, name)
		return 0
	}
	var ice *codon.InternalConsistencyError
	if errors.As(err, &ice) {
		fmt.Fprintf(stderr, "fatal: %v\n", ice)
		return 1
	}
	fmt.Fprintln(stderr, err)
	return 1
}
