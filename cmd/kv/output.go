package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// stdout is where command results are written; tests replace it.
var stdout io.Writer = os.Stdout

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputHuman writes a plain line to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format+"\n", args...)
}

// exitWithError writes an error to stderr and exits.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// exitOnStoreError exits with the code matching err, if err is non-nil.
func exitOnStoreError(err error) {
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
}

// SetResponse is the response for the set command.
type SetResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// DeleteResponse is the response for the delete command.
type DeleteResponse struct {
	Status  string   `json:"status"`
	Removed []string `json:"removed"`
}
