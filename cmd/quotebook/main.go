// Command quotebook is a terminal shell over a local quote collection.
package main

import "github.com/slenderdeveloperman/QuoteBook/internal/cli"

func main() {
	cli.Execute()
}
