package middleware

import (
	"fmt"
	"time"

	"github.com/VaultPoint/LedgerShield/pkg/config"
	"github.com/VaultPoint/LedgerShield/pkg/domain/telemetry"
	"github.com/VaultPoint/LedgerShield/pkg/infra/dispatch"
	"github.com/VaultPoint/LedgerShield/pkg/infra/httpx"
	"github.com/VaultPoint/LedgerShield/pkg/infra/prometheus"
	"github.com/VaultPoint/LedgerShield/pkg/obfuscation"
	"github.com/VaultPoint/LedgerShield/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// exemptPaths are served without capture or telemetry.
var exemptPaths = map[string]struct{}{
	"/":       {},
	"/health": {},
}

func isExemptPath(path string) bool {
	_, ok := exemptPaths[path]
	return ok
}

// obfuscationMiddleware snapshots both bodies of an exchange, redacts
// sensitive values and emits one structured telemetry record per handled
// request. Handlers always see the original payloads; only the logged and
// exported copies are masked.
type obfuscationMiddleware struct {
	logger     *logrus.Logger
	cfg        *config.ObfuscationConfig
	redactor   *obfuscation.Redactor
	dispatcher *dispatch.Dispatcher
}

func NewObfuscationMiddleware(
	logger *logrus.Logger,
	cfg *config.ObfuscationConfig,
	redactor *obfuscation.Redactor,
	dispatcher *dispatch.Dispatcher,
) Middleware {
	return &obfuscationMiddleware{
		logger:     logger,
		cfg:        cfg,
		redactor:   redactor,
		dispatcher: dispatcher,
	}
}

func (m *obfuscationMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.cfg.Enabled || isExemptPath(c.Path()) {
			return c.Next()
		}

		exchange := &telemetry.CapturedExchange{
			Path:      c.Path(),
			Method:    c.Method(),
			ClientIP:  c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
			Locale:    c.Get(fiber.HeaderAcceptLanguage),
			StartedAt: time.Now(),
		}

		// c.Body() hands back fasthttp's buffer, snapshot it before the
		// handlers run.
		if body := c.Body(); len(body) > 0 {
			exchange.RequestBody = append([]byte(nil), body...)
		}

		if err := c.Next(); err != nil {
			m.logger.WithFields(logrus.Fields{
				"request_path":   exchange.Path,
				"request_method": exchange.Method,
			}).WithError(err).Error("request processing failed")
			return err
		}

		exchange.StatusCode = c.Response().StatusCode()
		exchange.ResponseBody = m.captureResponseBody(c)
		exchange.FinishedAt = time.Now()

		m.emit(exchange)

		return nil
	}
}

// captureResponseBody snapshots the outgoing body. Compressed responses are
// decoded for the captured copy only; the wire response is left untouched.
func (m *obfuscationMiddleware) captureResponseBody(c *fiber.Ctx) []byte {
	raw := c.Response().Body()
	if len(raw) == 0 {
		return nil
	}

	decoded, changed, err := httpx.DecodeChain(c.Response(), raw)
	if err != nil {
		m.logger.
			WithError(err).
			WithField("request_path", c.Path()).
			Warn("failed to decode response body for capture")
		return append([]byte(nil), raw...)
	}
	if !changed {
		return append([]byte(nil), raw...)
	}
	return decoded
}

// emit redacts the captured bodies, writes the telemetry record and hands the
// event to the async pipeline. A failure here must never affect the response
// that is already on its way out.
func (m *obfuscationMiddleware) emit(exchange *telemetry.CapturedExchange) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithFields(logrus.Fields{
				"error":        r,
				"request_path": exchange.Path,
			}).Error("telemetry emission panic recovered")
		}
	}()

	obfuscatedRequest, requestMasked := m.redactor.RedactWithCount(exchange.RequestBody)
	obfuscatedResponse, responseMasked := m.redactor.RedactWithCount(exchange.ResponseBody)

	evt := m.buildEvent(exchange, obfuscatedRequest, obfuscatedResponse)

	m.logger.WithFields(logrus.Fields{
		"request_path":        evt.RequestPath,
		"request_method":      evt.RequestMethod,
		"status_code":         evt.StatusCode,
		"obfuscated_request":  evt.ObfuscatedRequest,
		"obfuscated_response": evt.ObfuscatedResponse,
	}).Info("http exchange processed")

	m.dispatcher.Enqueue(func() {
		m.registerPrometheusMetrics(evt, obfuscatedRequest, obfuscatedResponse, requestMasked, responseMasked)
	})
	m.dispatcher.Dispatch(evt)
}

func (m *obfuscationMiddleware) buildEvent(
	exchange *telemetry.CapturedExchange,
	obfuscatedRequest, obfuscatedResponse string,
) *telemetry.Event {
	evt := telemetry.NewExchangeEvent()
	evt.RequestPath = exchange.Path
	evt.RequestMethod = exchange.Method
	evt.StatusCode = exchange.StatusCode
	evt.ObfuscatedRequest = obfuscatedRequest
	evt.ObfuscatedResponse = obfuscatedResponse
	evt.StartTimestamp = exchange.StartedAt.UnixMilli()
	evt.EndTimestamp = exchange.FinishedAt.UnixMilli()
	evt.Latency = exchange.FinishedAt.Sub(exchange.StartedAt).Milliseconds()
	evt.IP = exchange.ClientIP

	if info := utils.ParseUserAgent(exchange.UserAgent, exchange.Locale); info != nil {
		evt.Locale = info.Locale
		evt.Device = info.Device
		evt.Os = info.OS
		evt.Browser = info.Browser
	}
	return evt
}

func (m *obfuscationMiddleware) registerPrometheusMetrics(
	evt *telemetry.Event,
	obfuscatedRequest, obfuscatedResponse string,
	requestMasked, responseMasked int,
) {
	prometheus.RequestTotal.WithLabelValues(evt.RequestMethod, statusClass(evt.StatusCode)).Inc()
	if prometheus.Config.EnableLatency {
		prometheus.RequestLatency.WithLabelValues(evt.RequestMethod).Observe(float64(evt.Latency))
	}
	if obfuscatedRequest == obfuscation.InvalidJSONSentinel {
		prometheus.InvalidPayloadTotal.WithLabelValues("request").Inc()
	}
	if obfuscatedResponse == obfuscation.InvalidJSONSentinel {
		prometheus.InvalidPayloadTotal.WithLabelValues("response").Inc()
	}
	if requestMasked > 0 {
		prometheus.RedactedFieldsTotal.WithLabelValues("request").Add(float64(requestMasked))
	}
	if responseMasked > 0 {
		prometheus.RedactedFieldsTotal.WithLabelValues("response").Add(float64(responseMasked))
	}
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
