// Command sitectl inspects, edits, exports and publishes course site drafts
// stored in the file draft backend.
package main

import (
	"os"

	"github.com/coursecms/coursesite/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
