package telemetry

import "github.com/VaultPoint/LedgerShield/pkg/domain/telemetry"

// ExporterLocatorOption configures an ExporterLocator.
type ExporterLocatorOption func(*ExporterLocator)

// WithExporter registers an exporter prototype under the given name.
func WithExporter(name string, exporter telemetry.Exporter) ExporterLocatorOption {
	return func(el *ExporterLocator) {
		if el.exporters == nil {
			el.exporters = make(map[string]telemetry.Exporter)
		}
		el.exporters[name] = exporter
	}
}
