// internal/integration/pipeline_test.go
package integration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"locuspipe/internal/pipeapp"
	"locuspipe/internal/toolx"
)

// fakeAligner stands in for TranslatorX. It records invocations, fabricates
// the trimmed output plus a few artifact files, and returns a canned result.
type fakeAligner struct {
	exit    int
	stderr  string
	aligned string // contents of the nt_cleanali output; "" writes none
	calls   []string
}

func (f *fakeAligner) Align(_ context.Context, dir, locus string, code int) (toolx.Result, error) {
	f.calls = append(f.calls, locus)
	if f.aligned != "" {
		if err := os.WriteFile(filepath.Join(dir, toolx.OutputFile(locus)), []byte(f.aligned), 0o644); err != nil {
			return toolx.Result{}, err
		}
	}
	for _, a := range toolx.Artifacts(locus)[:3] {
		if err := os.WriteFile(filepath.Join(dir, a), []byte("junk"), 0o644); err != nil {
			return toolx.Result{}, err
		}
	}
	if err := os.WriteFile(filepath.Join(dir, toolx.DoneMarker(locus)), []byte("log"), 0o644); err != nil {
		return toolx.Result{}, err
	}
	return toolx.Result{ExitCode: f.exit, Stderr: []byte(f.stderr)}, nil
}

// pipeFixture writes a taxon data file and the two list files, returning
// their paths plus the output directory (not yet created).
func pipeFixture(t *testing.T, loci ...string) (dataList, locusList, outDir string) {
	t.Helper()
	dir := t.TempDir()

	var records strings.Builder
	for _, l := range loci {
		fmt.Fprintf(&records, ">taxA|%s\natgaaataa\n>taxB|%s\natgaaaaaa\n", l, l)
	}
	data := write(t, filepath.Join(dir, "taxA.fasta"), records.String())

	dataList = write(t, filepath.Join(dir, "data.txt"), data+"\n")
	locusList = write(t, filepath.Join(dir, "loci.txt"), strings.Join(loci, "\n")+"\n")
	outDir = filepath.Join(dir, "locus_alignments")
	return
}

func TestPipelineEndToEnd(t *testing.T) {
	dataList, locusList, outDir := pipeFixture(t, "loc1", "loc2")
	fake := &fakeAligner{aligned: ">taxA|loc1\natgaaataa\n>taxB|loc1\natgaaaaaa\n"}

	var out, errBuf bytes.Buffer
	code := pipeapp.RunContextWithRunner(context.Background(),
		[]string{"-w", dataList, locusList, "-d", outDir},
		&out, &errBuf, fake)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	if len(fake.calls) != 2 {
		t.Fatalf("aligner calls: %v", fake.calls)
	}

	// The stop-codon site is stripped from the aligner output.
	cleaned := filepath.Join(outDir, "loc1_transX.nt_cleanali_cleaned.fasta")
	raw, err := os.ReadFile(cleaned)
	if err != nil {
		t.Fatalf("cleaned alignment missing: %v", err)
	}
	if !strings.Contains(string(raw), "atgaaa") || strings.Contains(string(raw), "taa") {
		t.Fatalf("cleaned contents:\n%s", raw)
	}

	// Superfluous aligner artifacts are removed, the done marker stays.
	for _, a := range toolx.Artifacts("loc1") {
		if _, err := os.Stat(filepath.Join(outDir, a)); !os.IsNotExist(err) {
			t.Fatalf("artifact %s survived", a)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, toolx.DoneMarker("loc1"))); err != nil {
		t.Fatalf("done marker missing: %v", err)
	}
}

func TestPipelineSkipsDoneLoci(t *testing.T) {
	dataList, locusList, outDir := pipeFixture(t, "loc1")
	fake := &fakeAligner{aligned: ">taxA|loc1\natgaaa\n"}

	var out, errBuf bytes.Buffer
	if code := pipeapp.RunContextWithRunner(context.Background(),
		[]string{"-w", dataList, locusList, "-d", outDir}, &out, &errBuf, fake); code != 0 {
		t.Fatalf("first run exit %d, err=%s", code, errBuf.String())
	}

	// Second run over the same directory: the done marker short-circuits.
	out.Reset()
	errBuf.Reset()
	if code := pipeapp.RunContextWithRunner(context.Background(),
		[]string{dataList, locusList, "-d", outDir}, &out, &errBuf, fake); code != 0 {
		t.Fatalf("second run exit %d, err=%s", code, errBuf.String())
	}
	if len(fake.calls) != 1 {
		t.Fatalf("locus was re-aligned: %v", fake.calls)
	}
	if !strings.Contains(out.String(), "Skipping loc1") {
		t.Fatalf("missing skip notice:\n%s", out.String())
	}
}

func TestPipelineBenignAlignerFailure(t *testing.T) {
	dataList, locusList, outDir := pipeFixture(t, "loc1")
	fake := &fakeAligner{exit: 1, stderr: "Gblocks alignment:  0 positions\n"}

	var out, errBuf bytes.Buffer
	code := pipeapp.RunContextWithRunner(context.Background(),
		[]string{"-w", dataList, locusList, "-d", outDir}, &out, &errBuf, fake)
	if code != 0 {
		t.Fatalf("benign failure must not abort: exit %d, err=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "Gblocks alignment:  0 positions") {
		t.Fatalf("benign notice missing:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(outDir, toolx.FailureLogName)); !os.IsNotExist(err) {
		t.Fatalf("benign failures must not hit the failure log")
	}
}

func TestPipelineGenuineAlignerFailure(t *testing.T) {
	dataList, locusList, outDir := pipeFixture(t, "loc1", "loc2")
	fake := &fakeAligner{exit: 2, stderr: "something broke\n"}

	var out, errBuf bytes.Buffer
	code := pipeapp.RunContextWithRunner(context.Background(),
		[]string{"-w", dataList, locusList, "-d", outDir}, &out, &errBuf, fake)
	if code != 0 {
		t.Fatalf("per-locus failures must not abort the batch: exit %d", code)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("batch stopped early: %v", fake.calls)
	}
	raw, err := os.ReadFile(filepath.Join(outDir, toolx.FailureLogName))
	if err != nil {
		t.Fatalf("failure log missing: %v", err)
	}
	if !strings.Contains(string(raw), "something broke") {
		t.Fatalf("failure log contents:\n%s", raw)
	}
}

func TestPipelineMissingOutputContinues(t *testing.T) {
	dataList, locusList, outDir := pipeFixture(t, "loc1", "loc2")
	fake := &fakeAligner{} // exit 0 but writes no nt_cleanali file

	var out, errBuf bytes.Buffer
	code := pipeapp.RunContextWithRunner(context.Background(),
		[]string{"-w", dataList, locusList, "-d", outDir}, &out, &errBuf, fake)
	if code != 0 {
		t.Fatalf("missing output is per-locus only: exit %d", code)
	}
	if !strings.Contains(out.String(), "Cannot find") {
		t.Fatalf("missing-output diagnostic absent:\n%s", out.String())
	}
	if len(fake.calls) != 2 {
		t.Fatalf("batch stopped early: %v", fake.calls)
	}
}

func TestPipelineMissingLocusFileFatal(t *testing.T) {
	dataList, locusList, outDir := pipeFixture(t, "loc1")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// No -w and no loc1.fasta in the output directory.
	fake := &fakeAligner{}

	var out, errBuf bytes.Buffer
	code := pipeapp.RunContextWithRunner(context.Background(),
		[]string{dataList, locusList, "-d", outDir}, &out, &errBuf, fake)
	if code != 1 {
		t.Fatalf("want fatal exit 1, got %d", code)
	}
	if !strings.Contains(errBuf.String(), "loc1.fasta") {
		t.Fatalf("diagnostic must name the file:\n%s", errBuf.String())
	}
}

func TestPipelineCancelled(t *testing.T) {
	dataList, locusList, outDir := pipeFixture(t, "loc1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errBuf bytes.Buffer
	code := pipeapp.RunContextWithRunner(ctx,
		[]string{"-w", dataList, locusList, "-d", outDir}, &out, &errBuf, &fakeAligner{})
	if code != 130 {
		t.Fatalf("want exit 130 on cancel, got %d", code)
	}
}
