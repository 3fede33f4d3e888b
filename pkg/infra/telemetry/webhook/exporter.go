package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/VaultPoint/LedgerShield/pkg/domain/telemetry"
	"github.com/VaultPoint/LedgerShield/pkg/infra/httpx"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

const (
	ExporterName = "webhook"
)

type Config struct {
	Url   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// Exporter delivers exchange events to an external collector over HTTP.
// Calls go through a circuit breaker so a dead collector cannot pile up
// blocked export workers.
type Exporter struct {
	cfg     Config
	breaker httpx.CircuitBreaker
	client  httpx.Client
	logger  *logrus.Logger
}

func NewWebhookExporter(logger *logrus.Logger, breaker httpx.CircuitBreaker, client httpx.Client) *Exporter {
	return &Exporter{
		breaker: breaker,
		client:  client,
		logger:  logger,
	}
}

func (e *Exporter) Name() string {
	return ExporterName
}

func (e *Exporter) ValidateConfig(settings map[string]interface{}) error {
	var conf Config
	if err := mapstructure.Decode(settings, &conf); err != nil {
		return fmt.Errorf("invalid webhook config: %w", err)
	}
	if conf.Url == "" {
		return errors.New("webhook url is required")
	}
	return nil
}

func (e *Exporter) WithSettings(settings map[string]interface{}) (telemetry.Exporter, error) {
	var conf Config
	if err := mapstructure.Decode(settings, &conf); err != nil {
		return nil, fmt.Errorf("invalid webhook config: %w", err)
	}
	return &Exporter{
		cfg:     conf,
		breaker: e.breaker,
		client:  e.client,
		logger:  e.logger,
	}, nil
}

func (e *Exporter) Handle(ctx context.Context, evt *telemetry.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = e.breaker.Execute(func() error {
		req, err := e.buildHttpRequest(ctx, body)
		if err != nil {
			return fmt.Errorf("failed to create HTTP request: %w", err)
		}

		res, err := e.client.Do(req)
		if err != nil {
			return fmt.Errorf("webhook request failed: %w", err)
		}
		defer res.Body.Close()

		if _, err := io.ReadAll(res.Body); err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if res.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("webhook returned status code %d", res.StatusCode)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("webhook call failed: %w", err)
	}

	return nil
}

func (e *Exporter) Close() {}

func (e *Exporter) buildHttpRequest(ctx context.Context, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	if e.cfg.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", e.cfg.Token))
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
