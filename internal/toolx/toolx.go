// Package toolx wraps the external TranslatorX codon-aware aligner/trimmer:
// invocation, recognition of its one benign failure mode, and cleanup of the
// artifact files it scatters next to each locus.
package toolx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Result captures one aligner invocation.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner aligns one per-locus FASTA file inside dir. Implementations must
// return the tool's exit code with captured output; err is reserved for
// failures to run the tool at all.
type Runner interface {
	Align(ctx context.Context, dir, locus string, code int) (Result, error)
}

// TranslatorX shells out to the real translatorx binary.
type TranslatorX struct {
	// Path overrides the binary looked up on PATH.
	Path string
}

func (t TranslatorX) Align(ctx context.Context, dir, locus string, code int) (Result, error) {
	bin := t.Path
	if bin == "" {
		bin = "translatorx"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-i", locus+".fasta",
		"-o", locus+"_transX",
		"-p", "F",
		"-c", fmt.Sprint(code),
		"-g", "-b5=n",
	)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		err = nil
	}
	return res, err
}

// benignStderr is the message TranslatorX emits when Gblocks trims the whole
// alignment away; the locus simply has no usable sites.
var benignStderr = []byte("Gblocks alignment:  0 positions")

// BenignFailure reports whether a non-zero exit only means an empty trimmed
// alignment.
func BenignFailure(stderr []byte) bool { return bytes.Contains(stderr, benignStderr) }

// FailureLogName collects stdout/stderr of genuine aligner failures, one
// appended block per failed locus.
const FailureLogName = "transX_stdout.text"

// AppendFailureLog appends the captured output of a failed run to the
// persistent failure log in dir.
func AppendFailureLog(dir string, res Result) error {
	fh, err := os.OpenFile(filepath.Join(dir, FailureLogName),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, werr := fh.Write(append(append([]byte{}, res.Stdout...), res.Stderr...))
	if cerr := fh.Close(); werr == nil {
		werr = cerr
	}
	return werr
}

// DoneMarker is the file whose presence marks a locus as already attempted;
// it is deliberately not in the artifact list.
func DoneMarker(locus string) string { return locus + "_transX.mafft.log" }

// OutputFile is the trimmed in-frame nucleotide alignment handed on to the
// codon cleaner.
func OutputFile(locus string) string { return locus + "_transX.nt_cleanali.fasta" }

// artifactSuffixes are the superfluous TranslatorX products removed after
// every locus, whatever the outcome.
var artifactSuffixes = []string{
	"_transX.aa_ali.fasta",
	"_transX.aa_ali.fasta-gb.txts",
	"_transX.aa_based_codon_coloured-gb.html",
	"_transX.aa_based_codon_coloured.html",
	"_transX.aa_cleanali.fasta",
	"_transX.aaseqs",
	"_transX.aaseqs.fasta",
	"_transX.html",
	"_transX.nt12_ali.fasta",
	"_transX.nt12_cleanali.fasta",
	"_transX.nt1_ali.fasta",
	"_transX.nt1_cleanali.fasta",
	"_transX.nt2_ali.fasta",
	"_transX.nt2_cleanali.fasta",
	"_transX.nt3_ali.fasta",
	"_transX.nt3_cleanali.fasta",
}

// failureSuffixes are only produced when the run fails; they are removed in
// the failure path so a retried locus starts clean.
var failureSuffixes = []string{
	"_transX.aa_ali.fasta-gb.htm",
	"_transX.nt_ali.fasta",
	"_transX.nt_cleanali.fasta",
}

// Artifacts lists the superfluous files for one locus.
func Artifacts(locus string) []string {
	out := make([]string, len(artifactSuffixes))
	for i, s := range artifactSuffixes {
		out[i] = locus + s
	}
	return out
}

// FailureArtifacts lists the extra files removed after a failed run.
func FailureArtifacts(locus string) []string {
	out := make([]string, len(failureSuffixes))
	for i, s := range failureSuffixes {
		out[i] = locus + s
	}
	return out
}

// CleanArtifacts removes the given artifact files from dir, ignoring ones
// that were never produced.
func CleanArtifacts(dir string, names []string) error {
	var first error
	for _, n := range names {
		if err := os.Remove(filepath.Join(dir, n)); err != nil && !os.IsNotExist(err) && first == nil {
			first = err
		}
	}
	return first
}
