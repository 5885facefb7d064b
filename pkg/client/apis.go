package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/xbattory/xbattory/pkg/config"
	"github.com/xbattory/xbattory/pkg/report"
	"github.com/xbattory/xbattory/pkg/uevent"
)

// GetReport returns the daemon's view of the current battery snapshot.
func (c *Client) GetReport() (*report.Report, error) {
	ret, err := c.Get("/snapshot")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery snapshot")
	}

	var r report.Report
	if err := json.Unmarshal([]byte(ret), &r); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery snapshot")
	}

	return &r, nil
}

// GetRecord returns the raw fields of the status file the daemon reads.
func (c *Client) GetRecord() (uevent.Record, error) {
	ret, err := c.Get("/uevent")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get status file fields")
	}

	var r uevent.Record
	if err := json.Unmarshal([]byte(ret), &r); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal status file fields")
	}

	return r, nil
}

func (c *Client) GetHealth() (*report.HealthSummary, error) {
	ret, err := c.Get("/health")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery health")
	}

	var h report.HealthSummary
	if err := json.Unmarshal([]byte(ret), &h); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery health")
	}

	return &h, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}

	return v, nil
}
