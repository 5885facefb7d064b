package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml and yml, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", pkgerrors.Errorf("unknown output format %q, expected one of text, json, yaml", s)
	}
}

// Write encodes r to w. details only affects the text format.
func Write(w io.Writer, r *Report, f Format, details bool) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return pkgerrors.Wrapf(err, "failed to encode report as yaml")
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, r, details)
	default:
		return pkgerrors.Errorf("unknown output format %q", f)
	}
}

func writeText(w io.Writer, r *Report, details bool) error {
	p := &printer{w: w}

	if !r.Available {
		p.printf("%s\n", bold("%s", r.Model))
		p.printf("  %s\n", color.RedString(r.Message))
		return p.err
	}

	model := r.Model
	if model == "" {
		model = UnknownModel
	}
	p.printf("%s\n", bold("%s", model))
	p.printf("  %s | %s\n", statusText(r.Status), bold("%d%%", r.Capacity))
	p.printf("  Health: %s (%s)\n", healthText(r.Health), verdictText(r.Verdict))

	if !details {
		return p.err
	}

	p.printf("\n%s\n", bold("Details:"))
	rows := []struct {
		name  string
		value string
	}{
		{"Name", r.Name},
		{"Model", r.Model},
		{"Manufacturer", r.Manufacturer},
		{"Serial number", r.SerialNumber},
		{"Technology", r.Technology},
		{"Status", r.Status},
		{"Capacity", fmt.Sprintf("%d%%", r.Capacity)},
		{"Capacity level", r.CapacityLevel},
		{"Cycle count", fmt.Sprintf("%d", r.CycleCount)},
		{"Voltage (min. design)", fmt.Sprintf("%.3f V", r.VoltageMinDesign)},
		{"Voltage (now)", fmt.Sprintf("%.3f V", r.VoltageNow)},
		{"Power (now)", fmt.Sprintf("%.3f W", r.PowerNow)},
		{"Energy (full)", fmt.Sprintf("%.3f Wh", r.EnergyFull)},
		{"Energy (full design)", fmt.Sprintf("%.3f Wh", r.EnergyFullDesign)},
		{"Energy (now)", fmt.Sprintf("%.3f Wh", r.EnergyNow)},
		{"Health", healthText(r.Health)},
	}
	for _, row := range rows {
		p.printf("  %-22s %s\n", row.name+":", row.value)
	}

	return p.err
}

// printer keeps the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, a ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, a...)
}

func statusText(status string) string {
	switch status {
	case "Charging":
		return color.GreenString(status)
	case "Discharging":
		return color.YellowString(status)
	default:
		return status
	}
}

func healthText(h *float64) string {
	if h == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *h)
}

func verdictText(v Verdict) string {
	switch v {
	case VerdictOK:
		return color.New(color.Bold, color.FgGreen).Sprint(v.Message())
	case VerdictUnhealthy:
		return color.New(color.Bold, color.FgYellow).Sprint(v.Message())
	case VerdictDead:
		return color.New(color.Bold, color.FgRed).Sprint(v.Message())
	default:
		return v.Message()
	}
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
