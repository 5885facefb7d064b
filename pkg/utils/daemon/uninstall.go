package daemon

import (
	"context"
	"fmt"
	"os"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/sirupsen/logrus"
)

func Uninstall(ctx context.Context) error {
	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to systemd: %w. Are you root?", err)
	}
	defer conn.Close()

	logrus.Infof("stopping xbattory")

	done := make(chan string, 1)
	if _, err := conn.StopUnitContext(ctx, unitName, "replace", done); err != nil {
		logrus.Warnf("failed to stop %s: %v", unitName, err)
	} else {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if _, err := conn.DisableUnitFilesContext(ctx, []string{unitName}, false); err != nil {
		logrus.Warnf("failed to disable %s: %v", unitName, err)
	}

	logrus.Infof("removing systemd unit")

	// if the file doesn't exist, we don't need to remove it
	_, err = os.Stat(unitPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", unitPath, err)
	}

	err = os.Remove(unitPath)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w. Are you root?", unitPath, err)
	}

	if err := conn.ReloadContext(ctx); err != nil {
		return fmt.Errorf("failed to reload systemd: %w", err)
	}

	return nil
}
