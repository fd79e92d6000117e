package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/stayflow-labs/dataguard/pkg/check"
	_ "github.com/stayflow-labs/dataguard/pkg/check/rules" // register built-in checks
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the registered checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "NAME", "GROUP", "REF", "DESCRIPTION"})
			for _, def := range check.GetAll() {
				ref := ""
				if def.NeedsReference {
					ref = "yes"
				}
				t.AppendRow(table.Row{def.ID, def.Name, def.Group, ref, def.Description})
			}
			t.Render()
			return nil
		},
	}
}
