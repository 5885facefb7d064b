package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xbattory/xbattory/pkg/locator"
	"github.com/xbattory/xbattory/pkg/report"
	"github.com/xbattory/xbattory/pkg/uevent"
)

// NewRawCommand .
func NewRawCommand() *cobra.Command {
	o := &readOptions{}

	cmd := &cobra.Command{
		Use:     "raw",
		GroupID: gAdvanced,
		Short:   "Print the raw key/value record of the battery",
		Long: `Print the raw key/value record of the battery.

Keys are printed as they appear in the status file, without the field defaults
applied.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(o.output)
			if err != nil {
				return err
			}

			var r uevent.Record
			if o.useDaemon {
				checkDaemonVersion()
				r, err = apiClient().GetRecord()
			} else {
				conf, cerr := loadConfig()
				if cerr != nil {
					return cerr
				}
				r, err = newSource(conf, o.path).Record()
			}
			if err != nil {
				return fmt.Errorf("failed to read record: %w", err)
			}

			return writeRecord(cmd.OutOrStdout(), r, format)
		},
	}

	o.addFlags(cmd)

	return cmd
}

func writeRecord(w io.Writer, r uevent.Record, f report.Format) error {
	switch f {
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case report.FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(map[string]string(r)); err != nil {
			return err
		}
		return enc.Close()
	}

	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, r[k]); err != nil {
			return err
		}
	}

	return nil
}

// NewListCommand .
func NewListCommand() *cobra.Command {
	root := ""

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: gAdvanced,
		Short:   "List the batteries found under the power supply directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if root == "" {
				conf, err := loadConfig()
				if err != nil {
					return err
				}
				root = conf.PowerSupplyRoot()
			}

			names, err := locator.List(root)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("%w under %s", locator.ErrNoBattery, root)
			}

			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "power supply directory (defaults to the configured one)")

	return cmd
}
