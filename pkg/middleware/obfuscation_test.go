package middleware_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/VaultPoint/LedgerShield/pkg/config"
	"github.com/VaultPoint/LedgerShield/pkg/domain/telemetry"
	"github.com/VaultPoint/LedgerShield/pkg/infra/dispatch"
	"github.com/VaultPoint/LedgerShield/pkg/middleware"
	"github.com/VaultPoint/LedgerShield/pkg/obfuscation"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exchangeProcessedMsg = "http exchange processed"

func defaultTestConfig() *config.ObfuscationConfig {
	return &config.ObfuscationConfig{
		Enabled:       true,
		Mask:          config.DefaultObfuscationMask,
		SensitiveKeys: []string{"card_number", "cvv", "password"},
	}
}

func setupApp(t *testing.T, cfg *config.ObfuscationConfig) (*fiber.App, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	redactor := obfuscation.NewRedactor(cfg, logger)
	dispatcher := dispatch.NewDispatcher(logger, nil, 1)
	t.Cleanup(dispatcher.Close)

	m := middleware.NewObfuscationMiddleware(logger, cfg, redactor, dispatcher)

	app := fiber.New()
	app.Use(m.Middleware())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("LedgerShield")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
	app.Get("/api/v1/orders", func(c *fiber.Ctx) error {
		return c.JSON([]fiber.Map{{"id": "o-1", "item": "keyboard"}})
	})
	app.Post("/api/v1/payments", func(c *fiber.Ctx) error {
		// echo the payload back so both directions carry sensitive keys
		c.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusCreated).Send(c.Body())
	})
	app.Get("/api/v1/broken", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "upstream exploded")
	})

	return app, hook
}

func exchangeEntries(hook *test.Hook) []*logrus.Entry {
	var entries []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == exchangeProcessedMsg {
			entries = append(entries, entry)
		}
	}
	return entries
}

func TestObfuscationMiddleware_TransparentToClient(t *testing.T) {
	app, _ := setupApp(t, defaultTestConfig())

	payload := `{"amount":99.90,"card_number":"4111111111111111","cvv":"123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// the wire response still carries the original values
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, payload, string(body))
}

func TestObfuscationMiddleware_HandlerSeesOriginalBody(t *testing.T) {
	cfg := defaultTestConfig()
	logger, _ := test.NewNullLogger()
	redactor := obfuscation.NewRedactor(cfg, logger)
	dispatcher := dispatch.NewDispatcher(logger, nil, 1)
	t.Cleanup(dispatcher.Close)

	m := middleware.NewObfuscationMiddleware(logger, cfg, redactor, dispatcher)

	app := fiber.New()
	app.Use(m.Middleware())

	var received string
	app.Post("/api/v1/payments", func(c *fiber.Ctx) error {
		received = string(c.Body())
		return c.SendStatus(fiber.StatusCreated)
	})

	payload := `{"card_number":"4111111111111111"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, payload, received)
}

func TestObfuscationMiddleware_EmitsRedactedRecord(t *testing.T) {
	app, hook := setupApp(t, defaultTestConfig())

	payload := `{"amount":99.90,"card_number":"4111111111111111","cvv":"123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	_, err := app.Test(req)
	require.NoError(t, err)

	entries := exchangeEntries(hook)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "/api/v1/payments", entry.Data["request_path"])
	assert.Equal(t, http.MethodPost, entry.Data["request_method"])
	assert.Equal(t, fiber.StatusCreated, entry.Data["status_code"])

	expected := `{"amount":99.90,"card_number":"***REDACTED***","cvv":"***REDACTED***"}`
	assert.JSONEq(t, expected, entry.Data["obfuscated_request"].(string))
	assert.JSONEq(t, expected, entry.Data["obfuscated_response"].(string))
}

func TestObfuscationMiddleware_CompressedResponseDecodedForCapture(t *testing.T) {
	app, hook := setupApp(t, defaultTestConfig())

	clear := `{"id":"p-9","card_number":"4111111111111111","status":"captured"}`
	app.Get("/api/v1/compressed", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write([]byte(clear)); err != nil {
			return err
		}
		if err := gw.Close(); err != nil {
			return err
		}
		c.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
		c.Response().Header.Set(fiber.HeaderContentEncoding, "gzip")
		return c.Send(buf.Bytes())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/compressed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// the wire response stays gzipped and carries the original values
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	gr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	wire, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.JSONEq(t, clear, string(wire))

	// the captured copy is decoded before redaction
	entries := exchangeEntries(hook)
	require.Len(t, entries, 1)
	expected := `{"id":"p-9","card_number":"***REDACTED***","status":"captured"}`
	assert.JSONEq(t, expected, entries[0].Data["obfuscated_response"].(string))
}

func TestObfuscationMiddleware_AbsentBodyLogsNull(t *testing.T) {
	app, hook := setupApp(t, defaultTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	_, err := app.Test(req)
	require.NoError(t, err)

	entries := exchangeEntries(hook)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, obfuscation.NullBodySentinel, entry.Data["obfuscated_request"])
	assert.JSONEq(t, `[{"id":"o-1","item":"keyboard"}]`, entry.Data["obfuscated_response"].(string))
}

func TestObfuscationMiddleware_InvalidJSONBody(t *testing.T) {
	app, hook := setupApp(t, defaultTestConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader("not json at all {{"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	entries := exchangeEntries(hook)
	require.Len(t, entries, 1)
	assert.Equal(t, obfuscation.InvalidJSONSentinel, entries[0].Data["obfuscated_request"])
	// the echoed response is equally unparseable
	assert.Equal(t, obfuscation.InvalidJSONSentinel, entries[0].Data["obfuscated_response"])

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "captured body is not valid JSON" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestObfuscationMiddleware_ExemptPaths(t *testing.T) {
	app, hook := setupApp(t, defaultTestConfig())

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Empty(t, exchangeEntries(hook))
}

func TestObfuscationMiddleware_DownstreamError(t *testing.T) {
	app, hook := setupApp(t, defaultTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/broken", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	// the error still reaches the client through fiber's error handler
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// no telemetry record for failed exchanges
	assert.Empty(t, exchangeEntries(hook))

	var logged *logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == "request processing failed" {
			logged = entry
		}
	}
	require.NotNil(t, logged)
	assert.Equal(t, logrus.ErrorLevel, logged.Level)
	assert.Equal(t, "/api/v1/broken", logged.Data["request_path"])
	assert.Equal(t, http.MethodGet, logged.Data["request_method"])
}

func TestObfuscationMiddleware_DisabledIsInert(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Enabled = false
	app, hook := setupApp(t, cfg)

	payload := `{"card_number":"4111111111111111"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.Empty(t, exchangeEntries(hook))
}

type capturingExporter struct {
	mu     sync.Mutex
	events []*telemetry.Event
}

func (e *capturingExporter) Name() string { return "capturing" }

func (e *capturingExporter) ValidateConfig(settings map[string]interface{}) error { return nil }

func (e *capturingExporter) Handle(ctx context.Context, evt *telemetry.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, evt)
	return nil
}

func (e *capturingExporter) WithSettings(settings map[string]interface{}) (telemetry.Exporter, error) {
	return e, nil
}

func (e *capturingExporter) Close() {}

func (e *capturingExporter) first() *telemetry.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.events) == 0 {
		return nil
	}
	return e.events[0]
}

func TestObfuscationMiddleware_DispatchesEnrichedEvent(t *testing.T) {
	cfg := defaultTestConfig()
	logger, _ := test.NewNullLogger()
	redactor := obfuscation.NewRedactor(cfg, logger)
	exporter := &capturingExporter{}
	dispatcher := dispatch.NewDispatcher(logger, []telemetry.Exporter{exporter}, 1)
	t.Cleanup(dispatcher.Close)

	m := middleware.NewObfuscationMiddleware(logger, cfg, redactor, dispatcher)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Post("/api/v1/payments", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "captured"})
	})

	payload := `{"card_number":"4111111111111111","amount":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	_, err := app.Test(req)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return exporter.first() != nil
	}, time.Second, 5*time.Millisecond)

	evt := exporter.first()
	assert.NotEmpty(t, evt.InteractionID)
	assert.Equal(t, "/api/v1/payments", evt.RequestPath)
	assert.Equal(t, http.MethodPost, evt.RequestMethod)
	assert.Equal(t, fiber.StatusCreated, evt.StatusCode)
	assert.JSONEq(t, `{"card_number":"***REDACTED***","amount":10}`, evt.ObfuscatedRequest)
	assert.JSONEq(t, `{"status":"captured"}`, evt.ObfuscatedResponse)
	assert.NotEmpty(t, evt.IP)
	assert.Equal(t, "Computer", evt.Device)
	assert.Contains(t, evt.Browser, "Chrome")
	assert.Equal(t, "en-US", evt.Locale)
	assert.GreaterOrEqual(t, evt.EndTimestamp, evt.StartTimestamp)
}

type panicOnMessageHook struct {
	message string
}

func (h *panicOnMessageHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *panicOnMessageHook) Fire(entry *logrus.Entry) error {
	if entry.Message == h.message {
		panic("telemetry sink failure")
	}
	return nil
}

func TestObfuscationMiddleware_EmissionFailureDoesNotBreakResponse(t *testing.T) {
	cfg := defaultTestConfig()
	logger, hook := test.NewNullLogger()
	logger.AddHook(&panicOnMessageHook{message: exchangeProcessedMsg})
	redactor := obfuscation.NewRedactor(cfg, logger)
	dispatcher := dispatch.NewDispatcher(logger, nil, 1)
	t.Cleanup(dispatcher.Close)

	m := middleware.NewObfuscationMiddleware(logger, cfg, redactor, dispatcher)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Post("/api/v1/payments", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "captured"})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{"amount":10}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"status":"captured"}`, string(body))

	var recovered bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "telemetry emission panic recovered" {
			recovered = true
		}
	}
	assert.True(t, recovered)
}
