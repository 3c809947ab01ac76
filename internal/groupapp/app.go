// internal/groupapp/app.go
package groupapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"locuspipe-core/locus"
	"locuspipe/internal/appcore"
	"locuspipe/internal/groupcli"
	"locuspipe/pkg/api"
)

// RunContext is the locusgroup entry point.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := groupcli.NewFlagSet("locusgroup")
	fs.SetOutput(io.Discard)

	opts, err := groupcli.ParseArgs(fs, argv)
	if done, code := appcore.Startup(fs, err, len(argv), opts.Version, stdout, stderr); done {
		return code
	}
	if ctx.Err() != nil {
		return 130
	}

	stats, err := Group(opts, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if opts.JSON {
		enc := json.NewEncoder(stdout)
		for _, st := range stats {
			row := api.LocusStatV1{
				Locus:   st.Locus,
				File:    st.File,
				Alleles: st.Alleles,
				MinLen:  st.MinLen,
				MaxLen:  st.MaxLen,
				Found:   st.Found,
			}
			if err := enc.Encode(row); err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
		}
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// Group resolves the list files and runs the grouping. Progress goes to log;
// batch-level preconditions (duplicate list entries, missing data files, an
// existing output directory) surface as errors.
func Group(opts groupcli.Options, log io.Writer) ([]locus.Stat, error) {
	data, err := locus.ReadList(opts.DataList)
	if err != nil {
		return nil, err
	}
	loci, err := locus.ReadList(opts.LocusList)
	if err != nil {
		return nil, err
	}
	return locus.Group(locus.GroupOptions{
		DataFiles: data,
		Loci:      loci,
		OutDir:    opts.OutDir,
		CSVLog:    opts.CSVLog,
		Quiet:     opts.Quiet,
		Log:       log,
	})
}
