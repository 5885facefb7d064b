// Package source produces battery snapshots for the CLI and the daemon.
// Every call reads the status file again; nothing is cached.
package source

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/xbattory/xbattory/pkg/config"
	"github.com/xbattory/xbattory/pkg/locator"
	"github.com/xbattory/xbattory/pkg/powerinfo"
	"github.com/xbattory/xbattory/pkg/uevent"
)

// FallbackFunc reads a snapshot when no status file exists.
type FallbackFunc func() (*uevent.Snapshot, error)

type Source struct {
	Provider locator.PathProvider
	// Fallback is used only when Provider reports locator.ErrNoBattery.
	// Nil disables it.
	Fallback FallbackFunc
}

// New builds a Source from the configuration.
func New(c config.Config) *Source {
	s := &Source{
		Provider: locator.FromConfig(c),
	}
	if c.SystemFallback() {
		s.Fallback = powerinfo.ReadSystem
	}
	return s
}

// Record returns the raw fields of the status file.
func (s *Source) Record() (uevent.Record, error) {
	p, err := s.Provider.Path()
	if err != nil {
		return nil, err
	}
	return uevent.ReadRecord(p)
}

// Snapshot reads and builds one snapshot.
func (s *Source) Snapshot() (*uevent.Snapshot, error) {
	p, err := s.Provider.Path()
	if err != nil {
		if errors.Is(err, locator.ErrNoBattery) && s.Fallback != nil {
			logrus.WithError(err).Debug("no status file, using system battery reader")
			return s.Fallback()
		}
		return nil, err
	}

	logrus.WithField("path", p).Trace("reading status file")

	return uevent.Read(p)
}
