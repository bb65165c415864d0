package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/taskdeck/cmd"
	"github.com/thenoetrevino/taskdeck/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// Commands print their own failures; cobra's flag and argument errors do not
	var cmdErr *cli.CommandError
	if !errors.As(err, &cmdErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCodeOf(err))
}
