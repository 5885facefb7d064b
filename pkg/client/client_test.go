package client

import (
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

// serve starts an HTTP server on a unix socket and returns its path.
func serve(t *testing.T, handler http.Handler) string {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "d.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatal(err)
	}
	srv := &http.Server{Handler: handler}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })
	return sock
}

func writeJSON(body string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestClientAPIs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", writeJSON(`{"available":true,"model":"M1","capacityPercent":64,"healthPercent":88.5,"verdict":"ok"}`, http.StatusOK))
	mux.HandleFunc("/uevent", writeJSON(`{"POWER_SUPPLY_NAME":"BAT0"}`, http.StatusOK))
	mux.HandleFunc("/health", writeJSON(`{"healthPercent":null,"verdict":"unknown","message":"x"}`, http.StatusOK))
	mux.HandleFunc("/config", writeJSON(`{"battery":"BAT1"}`, http.StatusOK))
	mux.HandleFunc("/version", writeJSON(`"v1.2.3"`, http.StatusOK))

	c := NewClient(serve(t, mux))

	r, err := c.GetReport()
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if r.Model != "M1" || r.Capacity != 64 || r.Health == nil || *r.Health != 88.5 {
		t.Errorf("GetReport() = %+v", r)
	}

	rec, err := c.GetRecord()
	if err != nil || rec["POWER_SUPPLY_NAME"] != "BAT0" {
		t.Errorf("GetRecord() = %v, %v", rec, err)
	}

	h, err := c.GetHealth()
	if err != nil || h.Health != nil || h.Verdict != "unknown" {
		t.Errorf("GetHealth() = %+v, %v", h, err)
	}

	conf, err := c.GetConfig()
	if err != nil || conf.Battery == nil || *conf.Battery != "BAT1" {
		t.Errorf("GetConfig() = %+v, %v", conf, err)
	}

	v, err := c.GetVersion()
	if err != nil || v != "v1.2.3" {
		t.Errorf("GetVersion() = %v, %v", v, err)
	}
}

func TestClientErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", writeJSON(`"no battery found"`, http.StatusServiceUnavailable))
	mux.HandleFunc("/uevent", writeJSON(`"boom"`, http.StatusInternalServerError))
	c := NewClient(serve(t, mux))

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{
			name:    "unavailable",
			call:    func() error { _, err := c.GetReport(); return err },
			wantErr: ErrBatteryUnavailable,
		},
		{
			name:    "not found",
			call:    func() error { _, err := c.GetVersion(); return err },
			wantErr: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := c.GetRecord(); err == nil {
		t.Errorf("GetRecord() error = nil, want error for status 500")
	}
}

func TestClientDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	if _, err := c.GetVersion(); !errors.Is(err, ErrDaemonNotRunning) {
		t.Errorf("GetVersion() error = %v, want %v", err, ErrDaemonNotRunning)
	}
}

func TestClientPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores socket permissions")
	}
	sock := serve(t, http.NewServeMux())
	if err := os.Chmod(sock, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := NewClient(sock).GetVersion(); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("GetVersion() error = %v, want %v", err, ErrPermissionDenied)
	}
}
