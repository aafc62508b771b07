package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/viant/jsxrefresh/inspector/repository"
	"github.com/viant/jsxrefresh/plugin"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file...>",
	Short: "List refresh components and their hook usage",
	Long: `Run the transform without writing output and list the components that
would be registered, with their kind and hook counts.

Examples:
  jsxrefresh inspect src/App.jsx --skip-env-check`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, err := newPlugin(false)
	if err != nil {
		return err
	}
	detector := repository.New()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tCOMPONENT\tKIND\tBUILTIN\tCUSTOM\tID")
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		moduleID := p.Options().ModuleID
		if moduleID == "" || len(args) > 1 {
			moduleID = detector.ModuleID(path)
		}
		result, err := p.Transform(cmd.Context(), &plugin.Request{ModuleID: moduleID, Filename: path, Source: data})
		if err != nil {
			return err
		}
		for _, component := range result.Details {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n", moduleID, component.Name, component.Kind,
				component.BuiltinHooks, component.CustomHooks, component.ID)
		}
	}
	return w.Flush()
}
