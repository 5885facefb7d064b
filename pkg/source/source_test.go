package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"k8s.io/utils/ptr"

	"github.com/xbattory/xbattory/pkg/config"
	"github.com/xbattory/xbattory/pkg/locator"
	"github.com/xbattory/xbattory/pkg/uevent"
)

func writeUevent(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, "uevent")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSnapshotFromSysfs(t *testing.T) {
	root := t.TempDir()
	writeUevent(t, root, "BAT0", "POWER_SUPPLY_NAME=BAT0\nPOWER_SUPPLY_CAPACITY=42\n")

	s := &Source{Provider: locator.Sysfs{Root: root}}

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Name != "BAT0" || snap.Capacity != 42 {
		t.Errorf("Snapshot() = %+v", snap)
	}

	r, err := s.Record()
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if r[uevent.KeyCapacity] != "42" {
		t.Errorf("Record() = %v", r)
	}
}

func TestSnapshotFallback(t *testing.T) {
	called := false
	s := &Source{
		Provider: locator.Sysfs{Root: t.TempDir()},
		Fallback: func() (*uevent.Snapshot, error) {
			called = true
			return &uevent.Snapshot{Name: "BAT0"}, nil
		},
	}

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if !called || snap.Name != "BAT0" {
		t.Errorf("Snapshot() = %+v, fallback called = %v", snap, called)
	}

	s.Fallback = nil
	if _, err := s.Snapshot(); !errors.Is(err, locator.ErrNoBattery) {
		t.Errorf("Snapshot() error = %v, want ErrNoBattery", err)
	}
}

func TestSnapshotDoesNotFallBackOnParseError(t *testing.T) {
	root := t.TempDir()
	writeUevent(t, root, "BAT0", "POWER_SUPPLY_CAPACITY=lots\n")

	s := &Source{
		Provider: locator.Sysfs{Root: root},
		Fallback: func() (*uevent.Snapshot, error) {
			t.Fatal("fallback must not be used when a status file exists")
			return nil, nil
		},
	}

	if _, err := s.Snapshot(); !errors.Is(err, uevent.ErrInvalidNumber) {
		t.Errorf("Snapshot() error = %v, want ErrInvalidNumber", err)
	}
}

func TestNew(t *testing.T) {
	c := config.NewFileFromConfig(&config.RawFileConfig{
		UeventPath:     ptr.To("/nonexistent/uevent"),
		SystemFallback: ptr.To(false),
	}, "")

	s := New(c)
	if s.Fallback != nil {
		t.Errorf("Fallback should be nil when disabled")
	}
	if _, err := s.Snapshot(); !errors.Is(err, uevent.ErrIO) {
		t.Errorf("Snapshot() error = %v, want ErrIO", err)
	}
}
