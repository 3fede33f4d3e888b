package telemetry

import (
	"fmt"

	"github.com/VaultPoint/LedgerShield/pkg/config"
	"github.com/VaultPoint/LedgerShield/pkg/domain/telemetry"
)

// ExporterLocator resolves configured exporters from a registry of
// prototypes. Registered prototypes are unconfigured; GetExporter validates
// the settings block and returns a ready instance.
type ExporterLocator struct {
	exporters map[string]telemetry.Exporter
}

func NewExporterLocator(opts ...ExporterLocatorOption) *ExporterLocator {
	el := &ExporterLocator{
		exporters: make(map[string]telemetry.Exporter),
	}
	for _, opt := range opts {
		opt(el)
	}
	return el
}

func (l *ExporterLocator) GetExporter(cfg config.ExporterConfig) (telemetry.Exporter, error) {
	base, ok := l.exporters[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("unknown exporter: %s", cfg.Name)
	}
	if err := base.ValidateConfig(cfg.Settings); err != nil {
		return nil, err
	}
	exporter, err := base.WithSettings(cfg.Settings)
	if err != nil {
		return nil, err
	}
	return exporter, nil
}

func (l *ExporterLocator) ValidateExporter(cfg config.ExporterConfig) error {
	base, ok := l.exporters[cfg.Name]
	if !ok {
		return fmt.Errorf("unknown exporter: %s", cfg.Name)
	}
	return base.ValidateConfig(cfg.Settings)
}
