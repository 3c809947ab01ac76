package alignment

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// multiReadCloser closes every wrapped Closer when Close is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// OpenReader opens path for reading, transparently decompressing gzip input.
// Gzip is detected by magic number (1F 8B) or a .gz suffix. "-" means stdin.
func OpenReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// Read loads an alignment from path, sniffing FASTA versus NEXUS from the
// first non-blank byte. Sequence data is lowercased on read: classification
// downstream works on the lowercase alphabet, and normalizing here keeps
// mixed-case input from being misread as ambiguous.
func Read(path string) (*Alignment, error) {
	rc, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	var a *Alignment
	switch sniff(data) {
	case FormatNexus:
		a, err = ReadNexus(bytes.NewReader(data))
	default:
		a, err = ReadFasta(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.Path = path
	return a, nil
}

// sniff picks the format from the first non-space byte: NEXUS files start
// with "#NEXUS", everything else is treated as FASTA.
func sniff(data []byte) Format {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '#':
			return FormatNexus
		default:
			return FormatFasta
		}
	}
	return FormatFasta
}

// ReadFasta reads an aligned FASTA matrix. Record labels keep their full
// description line up to the first space.
func ReadFasta(r io.Reader) (*Alignment, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
	var records []Record
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		records = append(records, Record{
			Name: s.ID,
			Seq:  bytes.ToLower([]byte(s.Seq.String())),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	a, err := New(records)
	if err != nil {
		return nil, err
	}
	a.Format = FormatFasta
	return a, nil
}

// ReadNexus reads the MATRIX of a NEXUS data/characters block. Interleaved
// matrices are supported by appending repeated names; everything outside the
// matrix (sets, trees, comments) is ignored. This is deliberately the small
// dialect WriteNexus emits, not a general NEXUS parser.
func ReadNexus(r io.Reader) (*Alignment, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		records []Record
		index   = make(map[string]int)
		inMat   bool
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		low := strings.ToLower(line)
		if !inMat {
			if low == "matrix" {
				inMat = true
			}
			continue
		}
		if low == ";" || strings.HasSuffix(low, "end;") {
			break
		}
		line = strings.TrimSuffix(line, ";")
		f := strings.Fields(line)
		if len(f) < 2 {
			return nil, fmt.Errorf("nexus matrix: cannot parse row %q", line)
		}
		name := strings.Trim(f[0], "'")
		chars := bytes.ToLower([]byte(strings.Join(f[1:], "")))
		if i, ok := index[name]; ok {
			records[i].Seq = append(records[i].Seq, chars...)
		} else {
			index[name] = len(records)
			records = append(records, Record{Name: name, Seq: chars})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !inMat {
		return nil, fmt.Errorf("nexus: no matrix block found")
	}
	a, err := New(records)
	if err != nil {
		return nil, err
	}
	a.Format = FormatNexus
	return a, nil
}
