package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ocanada/internal/config"
	"github.com/vovakirdan/ocanada/internal/dataset"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a data set file for errors",
	Long: `Parse a data set file and report every validation problem with its
code. Without a file the embedded data set is checked. The rules file
selected by --rules is checked as well.

Examples:
  ocanada validate
  ocanada validate ./configs/canada.yaml
  ocanada validate --rules ./configs/rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	name := "embedded data set"
	data := dataset.DefaultYAML()
	if len(args) == 1 {
		name = args[0]
		var err error
		data, err = os.ReadFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	failed := false

	ds, err := dataset.ParseYAML(data)
	if err != nil {
		fmt.Printf("%s: %v\n", name, err)
		os.Exit(1)
	}
	problems := ds.Problems()
	if len(problems) == 0 {
		fmt.Printf("%s: ok (%d parties, %d regions, %d seats, %d elections, %d events, %d policies)\n",
			name, len(ds.Parties), len(ds.Regions), ds.TotalSeats(), len(ds.Schedule), len(ds.Events), len(ds.Policies))
	} else {
		failed = true
		fmt.Printf("%s: %d problems\n", name, len(problems))
		for _, p := range problems {
			fmt.Printf("  %s\n", p.Error())
		}
	}

	if _, err := config.Load(flagRulesPath); err != nil {
		failed = true
		fmt.Printf("rules: %v\n", err)
	} else {
		fmt.Println("rules: ok")
	}

	if failed {
		os.Exit(1)
	}
}
