// cmd/locusgroup/main.go
package main

import (
	"os"

	"locuspipe/internal/groupapp"
)

func main() {
	os.Exit(groupapp.Run(os.Args[1:], os.Stdout, os.Stderr))
}
