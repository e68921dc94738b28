// devjournal - development journal for git commits
//
// devjournal records a markdown journal entry for each commit and folds in
// the timestamped reflections written since the previous commit.
package main

import (
	"os"

	"github.com/ccollicutt/devjournal/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
