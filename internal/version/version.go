// Package version carries the single version constant stamped into every
// command's --version and usage output.
package version

const Version = "0.3.1"
