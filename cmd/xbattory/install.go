package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xbattory/xbattory/pkg/config"
	daemonutils "github.com/xbattory/xbattory/pkg/utils/daemon"
)

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install xbattory daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Install xbattory daemon as a systemd service (system-wide).

This makes xbattory serve battery status and Prometheus metrics in the background
and start on boot. You must run this command as root.

By default, only root is allowed to access the daemon socket. Use
--allow-non-root-access to let other users query it without sudo.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if os.Geteuid() != 0 {
				logrus.Warn("you are not root, installation will probably fail")
			}

			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			conf.SetAllowNonRootAccess(allowNonRootAccess)
			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the xbattory daemon.")
			} else {
				logrus.Info("only root user is allowed to access the xbattory daemon.")
			}

			// The unit starts the daemon right away, so the config goes first.
			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			err = daemonutils.Install(cmd.Context(), configPath, unixSocketPath)
			if err != nil {
				return fmt.Errorf("failed to install daemon: %v. Are you root?", err)
			}

			logrus.Infof("installation succeeded")

			exePath, _ := os.Executable()

			cmd.Printf("`systemd' will use current binary (%s) at startup so please make sure you do not move this binary. Once this binary is moved or deleted, you will need to run ``xbattory install'' again.\n", exePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access xbattory daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall xbattory (system-wide)",
		GroupID: gInstallation,
		Long: `Uninstall xbattory daemon from systemd (system-wide).

This stops xbattory and removes it from systemd. You must run this command as root.

Your config is kept in ` + configPath + `, in case you want to reinstall xbattory later.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := daemonutils.Uninstall(cmd.Context())
			if err != nil {
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to uninstall daemon: %v", err)
			}

			logrus.Infof("uninstallation succeeded")

			return nil
		},
	}
}
