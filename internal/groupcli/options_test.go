package groupcli

import (
	"io"
	"testing"
)

func parse(t *testing.T, args ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("test")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, args)
}

func TestPositionalsAndDefaults(t *testing.T) {
	o, err := parse(t, "data.txt", "loci.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.DataList != "data.txt" || o.LocusList != "loci.txt" {
		t.Errorf("positionals: %+v", o)
	}
	if o.OutDir != "locus_alignments" || o.CSVLog || o.JSON {
		t.Errorf("defaults: %+v", o)
	}
}

func TestTrailingFlags(t *testing.T) {
	o, err := parse(t, "data.txt", "loci.txt", "-l", "-d", "out", "--json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !o.CSVLog || !o.JSON || o.OutDir != "out" {
		t.Errorf("flags: %+v", o)
	}
}

func TestMissingPositionals(t *testing.T) {
	if _, err := parse(t, "only_one.txt"); err == nil {
		t.Fatalf("expected error with one positional")
	}
}
