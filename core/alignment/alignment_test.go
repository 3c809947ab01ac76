package alignment

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadFastaLowercases(t *testing.T) {
	in := ">Seq1\nAAA-CC\n>Seq2\naaaACC\n"
	a, err := ReadFasta(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []Record{
		{Name: "Seq1", Seq: []byte("aaa-cc")},
		{Name: "Seq2", Seq: []byte("aaaacc")},
	}
	if diff := cmp.Diff(want, a.Records); diff != "" {
		t.Fatalf("records (-want +got):\n%s", diff)
	}
	if a.NChar() != 6 || a.NSeq() != 2 || a.NCodons() != 2 {
		t.Fatalf("dimensions: nchar=%d nseq=%d ncodons=%d", a.NChar(), a.NSeq(), a.NCodons())
	}
}

func TestReadFastaUnequalLengths(t *testing.T) {
	in := ">a\nAAAA\n>b\nAA\n"
	if _, err := ReadFasta(strings.NewReader(in)); err == nil {
		t.Fatalf("want error on ragged matrix")
	}
}

func TestDuplicateNamesRejected(t *testing.T) {
	_, err := New([]Record{
		{Name: "x", Seq: []byte("aaa")},
		{Name: "x", Seq: []byte("ccc")},
	})
	if err == nil {
		t.Fatalf("want duplicate-name error")
	}
}

func TestFastaRoundTrip(t *testing.T) {
	a := &Alignment{Records: []Record{
		{Name: "tax1|loc9", Seq: []byte("atgaaatag")},
		{Name: "tax2|loc9", Seq: []byte("atg---tag")},
	}}
	var buf bytes.Buffer
	if err := a.WriteFasta(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := ReadFasta(&buf)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if diff := cmp.Diff(a.Records, back.Records); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestNexusRoundTrip(t *testing.T) {
	a := &Alignment{Format: FormatNexus, Records: []Record{
		{Name: "alpha", Seq: []byte("atgaaa")},
		{Name: "beta", Seq: []byte("atg-aa")},
	}}
	var buf bytes.Buffer
	if err := a.WriteNexus(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "#NEXUS") {
		t.Fatalf("missing #NEXUS header:\n%s", buf.String())
	}
	back, err := ReadNexus(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if diff := cmp.Diff(a.Records, back.Records); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestReadSniffsFormat(t *testing.T) {
	dir := t.TempDir()

	fa := filepath.Join(dir, "x.fasta")
	if err := os.WriteFile(fa, []byte(">s\natgtaa\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a, err := Read(fa)
	if err != nil {
		t.Fatalf("read fasta: %v", err)
	}
	if a.Format != FormatFasta {
		t.Fatalf("want fasta format, got %v", a.Format)
	}

	nex := filepath.Join(dir, "x.nex")
	data := "#NEXUS\n\nbegin data;\n  dimensions ntax=1 nchar=6;\n  format datatype=dna gap=- missing=?;\n  matrix\n    s  atgtaa\n  ;\nend;\n"
	if err := os.WriteFile(nex, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a, err = Read(nex)
	if err != nil {
		t.Fatalf("read nexus: %v", err)
	}
	if a.Format != FormatNexus || string(a.Records[0].Seq) != "atgtaa" {
		t.Fatalf("nexus parse: %+v", a.Records)
	}
}

func TestReadGzip(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "x.fasta.gz")
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(">s\natgtaa\n"))
	_ = zw.Close()
	if err := os.WriteFile(fn, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a, err := Read(fn)
	if err != nil {
		t.Fatalf("read gz: %v", err)
	}
	if string(a.Records[0].Seq) != "atgtaa" {
		t.Fatalf("gz content: %q", a.Records[0].Seq)
	}
}

func TestCheckCodon(t *testing.T) {
	ok := &Alignment{Records: []Record{{Name: "s", Seq: []byte("atgtaa")}}}
	if err := ok.CheckCodon(); err != nil {
		t.Fatalf("6 chars should pass: %v", err)
	}
	for _, seq := range []string{"", "atga"} {
		bad := &Alignment{Path: "t.fasta", Records: []Record{{Name: "s", Seq: []byte(seq)}}}
		err := bad.CheckCodon()
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("len %d: want ErrMalformed, got %v", len(seq), err)
		}
		var me *MalformedError
		if !errors.As(err, &me) || me.NChar != len(seq) {
			t.Fatalf("len %d: malformed detail missing: %v", len(seq), err)
		}
	}
}

func TestCleanedPath(t *testing.T) {
	cases := []struct {
		path   string
		format Format
		want   string
	}{
		{"dir/loc1_transX.nt_cleanali.fasta", FormatFasta, "dir/loc1_transX.nt_cleanali_cleaned.fasta"},
		{"aln.nex", FormatNexus, "aln_cleaned.nex"},
		{"noext", FormatFasta, "noext_cleaned.fasta"},
	}
	for _, tc := range cases {
		a := &Alignment{Path: tc.path, Format: tc.format}
		if got := a.CleanedPath(); got != tc.want {
			t.Fatalf("CleanedPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestWriteDispatchesOnFormat(t *testing.T) {
	dir := t.TempDir()
	a := &Alignment{Format: FormatNexus, Records: []Record{{Name: "s", Seq: []byte("atgtaa")}}}
	fn := filepath.Join(dir, "out.nex")
	if err := a.Write(fn); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("#NEXUS")) {
		t.Fatalf("nexus dispatch failed:\n%s", data)
	}
}
