package commands

import (
	"context"

	"github.com/goliatone/go-dashboard-shell/components/shell"
)

// Telemetry allows commands to emit structured events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// Options carries the dependencies shared by every command.
type Options struct {
	Telemetry Telemetry
	Validator shell.PayloadValidator
}

func (o Options) normalize() Options {
	o.Telemetry = normalizeTelemetry(o.Telemetry)
	o.Validator = shell.NormalizeValidator(o.Validator)
	return o
}
