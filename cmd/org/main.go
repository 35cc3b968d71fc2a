// Command org is the read-only CLI front end over an org-mode notes
// directory: listing, outlining, searching, and computing agenda views.
package main

import (
	"os"

	"github.com/jra3/orgmind/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
