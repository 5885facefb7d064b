package client

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 10 * time.Second

// Client talks to the xbattory daemon over its unix socket.
type Client struct {
	socketPath string
	httpClient *http.Client
}

// NewClient creates a Client for the daemon listening on socketPath.
func NewClient(socketPath string) *Client {
	dialer := &net.Dialer{}
	return &Client{
		socketPath: socketPath,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					conn, err := dialer.DialContext(ctx, "unix", socketPath)
					if err != nil {
						if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED) {
							return nil, ErrDaemonNotRunning
						}
						if errors.Is(err, fs.ErrPermission) {
							return nil, ErrPermissionDenied
						}
						logrus.Errorf("failed to connect to unix socket: %v", err)
						return nil, err
					}
					return conn, nil
				},
			},
		},
	}
}

// Send sends a request to the daemon and returns the response body.
func (c *Client) Send(method string, path string, data string) (string, error) {
	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"data":   data,
		"unix":   c.socketPath,
	}).Debug("sending request")

	var body io.Reader
	if data != "" {
		body = strings.NewReader(data)
	}

	// The host is ignored by the unix dialer.
	req, err := http.NewRequest(method, "http://unix"+path, body)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to send request")
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to read response body")
	}
	respBody := string(b)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", pkgerrors.Wrapf(ErrNotFound, "%s", path)
	case resp.StatusCode == http.StatusServiceUnavailable:
		return "", pkgerrors.Wrapf(ErrBatteryUnavailable, "%s", strings.Trim(respBody, "\"\n"))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", pkgerrors.Errorf("got %d: %s", resp.StatusCode, respBody)
	}

	return respBody, nil
}

// Get sends a GET request to the daemon.
func (c *Client) Get(path string) (string, error) {
	return c.Send(http.MethodGet, path, "")
}
