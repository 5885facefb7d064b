package main

import (
	"github.com/spf13/cobra"

	"github.com/xbattory/xbattory/pkg/report"
)

// NewStatusCommand .
func NewStatusCommand() *cobra.Command {
	o := &readOptions{}

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current battery status",
		Long: `Get the current battery status.

Shows the charge, the charging status and the health of the battery. If the
battery cannot be read, the battery is reported as unavailable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, o, false)
		},
	}

	o.addFlags(cmd)

	return cmd
}

// NewDetailsCommand .
func NewDetailsCommand() *cobra.Command {
	o := &readOptions{}

	cmd := &cobra.Command{
		Use:     "details",
		GroupID: gBasic,
		Short:   "Get every battery field with units",
		Long: `Get every battery field with units.

Prints the identity, energy, voltage and power readings of the battery along
with its status and health.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, o, true)
		},
	}

	o.addFlags(cmd)

	return cmd
}

func runStatus(cmd *cobra.Command, o *readOptions, details bool) error {
	format, err := report.ParseFormat(o.output)
	if err != nil {
		return err
	}

	r, err := fetchReport(o)
	if err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout(), r, format, details)
}
