package daemon

import (
	"strings"
	"testing"
)

func TestRenderUnit(t *testing.T) {
	b, err := RenderUnit("/usr/local/bin/xbattory", "/etc/xbattory.json", "/var/run/xbattory.sock")
	if err != nil {
		t.Fatalf("RenderUnit() error = %v", err)
	}
	got := string(b)

	for _, want := range []string{
		"[Unit]\n",
		"[Service]\n",
		"[Install]\n",
		"ExecStart=/usr/local/bin/xbattory daemon --config /etc/xbattory.json --daemon-socket /var/run/xbattory.sock\n",
		"WantedBy=multi-user.target\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderUnit() = %q, want it to contain %q", got, want)
		}
	}

	if strings.Index(got, "[Unit]") > strings.Index(got, "[Service]") {
		t.Errorf("RenderUnit() sections out of order:\n%s", got)
	}
}
