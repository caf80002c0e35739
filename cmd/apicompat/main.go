// Command apicompat compares the public API surface of library descriptions
// and reports incompatible differences.
//
//	apicompat diff contract.yaml implementation.yaml
//	apicompat batch manifest.yaml
//	apicompat rules
//	apicompat snapshot write|verify|show ...
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// Exit codes.
const (
	exitOK           = 0
	exitIncompatible = 1
	exitError        = 2
)

// errIncompatible is returned by commands when incompatibilities remain after
// baseline suppression.
var errIncompatible = errors.New("incompatible differences found")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errIncompatible):
		return exitIncompatible
	default:
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}
}
