// planning computes weekly worked hours from planning PDFs and manages the
// stored totals from the command line.
package main

import (
	"os"

	"github.com/a3tai/mcp-planning-hours/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
