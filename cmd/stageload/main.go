// Package main provides the stageload CLI application.
// stageload loads CSV files into a MySQL staging table.
package main

import (
	"github.com/gnames/stageload/cmd"
)

func main() {
	cmd.Execute()
}
