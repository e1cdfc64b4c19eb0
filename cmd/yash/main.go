// Command yash is an interactive POSIX job-control shell: it reads command
// lines from a terminal, parses each into a pipeline of externally executed
// programs with optional I/O redirections, launches them under job control,
// and lets the user suspend, resume, foreground, background, list, and
// terminate those jobs while retaining ownership of the controlling
// terminal. See internal/jobctl for the core engine this wires together.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spenceryue/yash/internal/banner"
	"github.com/spenceryue/yash/internal/diag"
	"github.com/spenceryue/yash/internal/repl"
	"github.com/spenceryue/yash/internal/terminal"
)

func main() {
	verbose := flag.Bool("v", false, "enable verbose internal diagnostics")
	flag.Parse()

	if flag.Arg(0) == "pikachu" {
		fmt.Println(banner.Pikachu)
		return
	}

	log := diag.NewLogger(*verbose)
	defer log.Sync()

	term, err := terminal.New(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yash: %s\n", err)
		os.Exit(1)
	}
	defer term.Close()

	terminal.InstallHandlers(func() {
		fmt.Print("\n# ")
	})

	r := repl.New(term, os.Stdin, log)
	r.Run()
}
