package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var templates = cli.Command{
	Name:   "templates",
	Usage:  "list the account conventions swept by default",
	Action: templatesAction,
}

func templatesAction(ctx *cli.Context) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, t := range domain.DefaultTemplates() {
		fmt.Fprintf(w, "%s\t%s{0,1}\t%s\n", t.Name, t.Prefix, t.ScriptType)
	}
	return w.Flush()
}
