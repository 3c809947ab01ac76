// Package locus groups sequence records from per-taxon transcriptome FASTA
// files into one FASTA file per locus. Records are labeled
// "<identifier>|<locus>"; the locus tag after the first '|' decides which
// file a record lands in.
package locus

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DuplicateNameError reports a repeated entry in an input list file.
type DuplicateNameError struct {
	Path string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: duplicate entry %q", e.Path, e.Name)
}

// MissingFileError reports a listed data file that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("cannot find data file %s", e.Path)
}

// OutputDirExistsError reports an output directory that is already present;
// grouping refuses to overwrite it.
type OutputDirExistsError struct {
	Dir string
}

func (e *OutputDirExistsError) Error() string {
	return fmt.Sprintf("output directory %q already present", e.Dir)
}

// ReadList reads a one-item-per-line list file. Surrounding whitespace is
// trimmed and blank lines are dropped; a repeated entry is an error.
func ReadList(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var items []string
	seen := make(map[string]bool)
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		item := strings.TrimSpace(sc.Text())
		if item == "" {
			continue
		}
		if seen[item] {
			return nil, &DuplicateNameError{Path: path, Name: item}
		}
		seen[item] = true
		items = append(items, item)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
