package daemon

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/coreos/go-systemd/v22/unit"
	"github.com/sirupsen/logrus"
)

const unitName = "xbattory.service"

var (
	unitPath = "/etc/systemd/system/" + unitName
)

// Unit returns the systemd unit that runs the daemon from exePath.
func Unit(exePath, configPath, socketPath string) []*unit.UnitOption {
	return []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", "xbattory battery information daemon"),
		unit.NewUnitOption("Unit", "Documentation", "https://github.com/xbattory/xbattory"),
		unit.NewUnitOption("Service", "Type", "simple"),
		unit.NewUnitOption("Service", "ExecStart",
			fmt.Sprintf("%s daemon --config %s --daemon-socket %s", exePath, configPath, socketPath)),
		unit.NewUnitOption("Service", "ExecReload", "/bin/kill -HUP $MAINPID"),
		unit.NewUnitOption("Service", "Restart", "on-failure"),
		unit.NewUnitOption("Install", "WantedBy", "multi-user.target"),
	}
}

// RenderUnit serializes the unit file content.
func RenderUnit(exePath, configPath, socketPath string) ([]byte, error) {
	b, err := io.ReadAll(unit.Serialize(Unit(exePath, configPath, socketPath)))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize unit: %w", err)
	}
	return b, nil
}

func Install(ctx context.Context, configPath, socketPath string) error {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}

	err = os.Chmod(exePath, 0755)
	if err != nil {
		return fmt.Errorf("failed to chmod the current executable to 0755: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)

	content, err := RenderUnit(exePath, configPath, socketPath)
	if err != nil {
		return err
	}

	// warn if the file already exists
	if _, err := os.Stat(unitPath); err == nil {
		logrus.Warnf("%s already exists, overwriting", unitPath)
	}

	logrus.Infof("writing systemd unit to %s", unitPath)

	err = os.WriteFile(unitPath, content, 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", unitPath, err)
	}

	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	if err := conn.ReloadContext(ctx); err != nil {
		return fmt.Errorf("failed to reload systemd: %w", err)
	}

	if _, _, err := conn.EnableUnitFilesContext(ctx, []string{unitPath}, false, true); err != nil {
		return fmt.Errorf("failed to enable %s: %w", unitName, err)
	}

	logrus.Infof("starting xbattory")

	done := make(chan string, 1)
	if _, err := conn.RestartUnitContext(ctx, unitName, "replace", done); err != nil {
		return fmt.Errorf("failed to start %s: %w", unitName, err)
	}

	select {
	case result := <-done:
		if result != "done" {
			return fmt.Errorf("starting %s finished with %q", unitName, result)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}
