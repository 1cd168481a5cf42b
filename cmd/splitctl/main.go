// Splitctl exercises the splitbridge parsers, name matcher, and split
// calculator from the command line, no Splitwise account required.
package main

import "splitbridge/internal/cli"

func main() {
	cli.Execute()
}
