// Package main provides the taskdesk CLI.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "taskdesk:", errorText(err))
		os.Exit(exitCode(err))
	}
}
