package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xbattory/xbattory/pkg/client"
	"github.com/xbattory/xbattory/pkg/config"
	"github.com/xbattory/xbattory/pkg/locator"
	"github.com/xbattory/xbattory/pkg/report"
	"github.com/xbattory/xbattory/pkg/source"
	"github.com/xbattory/xbattory/pkg/version"
)

// readOptions are shared by the commands that read the battery.
type readOptions struct {
	path      string
	useDaemon bool
	output    string
}

func (o *readOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.path, "path", "", "read this status file instead of discovering one")
	f.BoolVar(&o.useDaemon, "daemon", false, "ask the xbattory daemon instead of reading the file directly")
	f.StringVarP(&o.output, "output", "o", "text", "output format (text, json, yaml)")
}

func loadConfig() (*config.File, error) {
	return config.NewFile(configPath)
}

// newSource builds a local source. An explicit path disables discovery and
// the system fallback.
func newSource(conf config.Config, path string) *source.Source {
	if path != "" {
		return &source.Source{Provider: locator.Static(path)}
	}
	return source.New(conf)
}

// fetchReport returns the report to show. A failed read is not an error:
// the report is marked unavailable, and only daemon connection problems are
// returned.
func fetchReport(o *readOptions) (*report.Report, error) {
	if o.useDaemon {
		checkDaemonVersion()

		r, err := apiClient().GetReport()
		if err != nil {
			if errors.Is(err, client.ErrDaemonNotRunning) || errors.Is(err, client.ErrPermissionDenied) {
				return nil, err
			}
			logrus.Warnf("daemon could not read the battery: %v", err)
			return report.New(nil, report.DefaultThresholds), nil
		}
		return r, nil
	}

	conf, err := loadConfig()
	if err != nil {
		return nil, err
	}

	s, err := newSource(conf, o.path).Snapshot()
	if err != nil {
		logrus.Warnf("failed to read battery: %v", err)
	}

	return report.New(s, report.ThresholdsFromConfig(conf)), nil
}

func apiClient() *client.Client {
	return client.NewClient(unixSocketPath)
}

func checkDaemonVersion() {
	daemonVersion, err := apiClient().GetVersion()
	if err != nil {
		logrus.Debugf("failed to get daemon version: %v", err)
		return
	}
	if daemonVersion != version.Version {
		logrus.WithFields(logrus.Fields{
			"clientVersion": version.Version,
			"daemonVersion": daemonVersion,
		}).Warn("Version mismatch between client and daemon. Reinstall the daemon with this binary to keep them in sync.")
	}
}
