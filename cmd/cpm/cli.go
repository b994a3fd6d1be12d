package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/posemachine/internal/envconfig"
)

const version = "v0.1.0-dev"

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cpm",
		Short: "Convolutional Pose Machine inference",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
	}

	cobra.EnableCommandSorting = false

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cpm %s\n", version)
		},
	}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "List environment configuration",
		Args:  cobra.NoArgs,
		RunE:  envHandler,
	}

	rootCmd.AddCommand(
		NewPlanCmd(),
		NewInferCmd(),
		envCmd,
		versionCmd,
	)

	return rootCmd
}

func envHandler(cmd *cobra.Command, args []string) error {
	vars := envconfig.AsMap()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)

	var data [][]string
	for _, name := range names {
		v := vars[name]
		data = append(data, []string{v.Name, fmt.Sprintf("%v", v.Value), v.Description})
	}

	renderTable(cmd.OutOrStdout(), []string{"NAME", "VALUE", "DESCRIPTION"}, data)
	return nil
}

func renderTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
