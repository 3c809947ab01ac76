package locus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// CSVLogName is the per-run summary written next to the locus files when
// CSVLog is enabled.
const CSVLogName = "locus_log.csv"

// GroupOptions configure one grouping run.
type GroupOptions struct {
	DataFiles []string // per-taxon FASTA files
	Loci      []string // locus tags to extract
	OutDir    string   // created by Group; must not already exist
	CSVLog    bool     // write OutDir/locus_log.csv
	Quiet     bool     // suppress progress on Log
	Log       io.Writer
}

// Stat summarizes one requested locus.
type Stat struct {
	Locus   string
	File    string // written file, "" when the locus was not found
	Alleles int
	MinLen  int
	MaxLen  int
	Found   bool
}

// Group writes one FASTA file per requested locus into OutDir, collecting
// every record across all data files whose tag matches. A locus absent from
// every data file is reported on Log and skipped; the batch continues. The
// output directory must not already exist.
func Group(opt GroupOptions) ([]Stat, error) {
	log := opt.Log
	if log == nil {
		log = io.Discard
	}
	progressf := func(format string, args ...any) {
		if !opt.Quiet {
			fmt.Fprintf(log, format, args...)
		}
	}

	if _, err := os.Stat(opt.OutDir); err == nil {
		return nil, &OutputDirExistsError{Dir: opt.OutDir}
	}

	ix, warnings, err := BuildIndex(opt.DataFiles)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(log, "warning: %s\n", w)
	}

	if err := os.MkdirAll(opt.OutDir, 0o755); err != nil {
		return nil, err
	}

	progressf("Read %d data files and %d loci\n", len(opt.DataFiles), len(opt.Loci))
	progressf("Writing locus files (number, and min and max lengths of alleles):\n")

	san := NewSanitizer()
	stats := make([]Stat, 0, len(opt.Loci))
	for _, locus := range opt.Loci {
		recs := ix.Records(locus)
		if len(recs) == 0 {
			fmt.Fprintf(log, "warning: unable to find locus %s in any data file\n", locus)
			stats = append(stats, Stat{Locus: locus})
			continue
		}

		st := Stat{Locus: locus, Alleles: len(recs), Found: true}
		st.MinLen, st.MaxLen = len(recs[0].Seq), len(recs[0].Seq)
		for _, r := range recs[1:] {
			n := len(r.Seq)
			if n < st.MinLen {
				st.MinLen = n
			}
			if n > st.MaxLen {
				st.MaxLen = n
			}
		}

		st.File = filepath.Join(opt.OutDir, san.Sanitize(locus)+".fasta")
		if err := writeRecords(st.File, recs); err != nil {
			return nil, err
		}
		progressf("\t%-8s -> %-2d alleles (%-4d - %-4d)\n", locus, st.Alleles, st.MinLen, st.MaxLen)
		stats = append(stats, st)
	}

	if opt.CSVLog {
		if err := writeCSV(filepath.Join(opt.OutDir, CSVLogName), stats); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func writeRecords(path string, recs []*linear.Seq) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	w := fasta.NewWriter(fh, 60)
	for _, r := range recs {
		if _, err := w.Write(r); err != nil {
			_ = fh.Close()
			return err
		}
	}
	return fh.Close()
}

func writeCSV(path string, stats []Stat) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(fh)
	_ = w.Write([]string{"locus", "#alleles", "max len", "min len"})
	for _, st := range stats {
		if !st.Found {
			continue
		}
		_ = w.Write([]string{
			st.Locus,
			strconv.Itoa(st.Alleles),
			strconv.Itoa(st.MaxLen),
			strconv.Itoa(st.MinLen),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
