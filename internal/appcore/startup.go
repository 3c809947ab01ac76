// internal/appcore/startup.go
package appcore

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"locuspipe/internal/version"
)

// Startup resolves the parse outcomes every app shares: bare invocation and
// -h print usage and succeed, a parse error prints the error plus usage and
// exits 2, --version prints the version. It reports whether the run is
// already decided and with which exit code.
//
// The caller is expected to have parsed with fs output discarded; Startup
// re-points fs at the right stream before printing usage.
func Startup(fs *flag.FlagSet, parseErr error, argc int, wantVersion bool, stdout, stderr io.Writer) (done bool, code int) {
	switch {
	case argc == 0 || errors.Is(parseErr, flag.ErrHelp):
		fs.SetOutput(stdout)
		fs.Usage()
		return true, 0
	case parseErr != nil:
		fmt.Fprintln(stderr, parseErr)
		fs.SetOutput(stderr)
		fs.Usage()
		return true, 2
	case wantVersion:
		fmt.Fprintf(stdout, "%s version %s\n", fs.Name(), version.Version)
		return true, 0
	}
	return false, 0
}
