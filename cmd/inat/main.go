// Command inat calls the iNaturalist API from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:], DefaultConfig()); err != nil {
		fatal("%v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
