package obfuscation

import (
	"bytes"
	"strings"

	"github.com/VaultPoint/LedgerShield/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const (
	// NullBodySentinel is logged in place of a body that was never sent.
	NullBodySentinel = "null"
	// InvalidJSONSentinel is logged in place of a body that could not be
	// parsed as JSON.
	InvalidJSONSentinel = "[Invalid JSON]"
)

// Redactor produces a log-safe rendering of a captured JSON body. Values
// under configured sensitive keys are replaced by the mask; everything
// else is emitted as parsed, including key order, duplicate keys and the
// original textual representation of numbers.
//
// A Redactor is immutable after construction and safe for concurrent use.
type Redactor struct {
	logger *logrus.Logger
	keys   map[string]struct{}
	mask   []byte // mask pre-escaped as a JSON string literal
}

func NewRedactor(cfg *config.ObfuscationConfig, logger *logrus.Logger) *Redactor {
	keys := make(map[string]struct{}, len(cfg.SensitiveKeys))
	for _, key := range cfg.SensitiveKeys {
		keys[strings.ToLower(key)] = struct{}{}
	}
	mask := cfg.Mask
	if mask == "" {
		mask = config.DefaultObfuscationMask
	}

	var arena fastjson.Arena
	return &Redactor{
		logger: logger,
		keys:   keys,
		mask:   arena.NewString(mask).MarshalTo(nil),
	}
}

// Redact returns the redacted rendering of body. A nil or blank body
// yields NullBodySentinel; a body that fails to parse yields
// InvalidJSONSentinel and a warning diagnostic. Parse failures never
// propagate. The input is never modified.
func (r *Redactor) Redact(body []byte) string {
	out, _ := r.RedactWithCount(body)
	return out
}

// RedactWithCount is Redact plus the number of values that were replaced
// by the mask, for metric accounting.
func (r *Redactor) RedactWithCount(body []byte) (string, int) {
	if len(bytes.TrimSpace(body)) == 0 {
		return NullBodySentinel, 0
	}

	var p fastjson.Parser
	parsed, err := p.ParseBytes(body)
	if err != nil {
		r.logger.WithError(err).Warn("captured body is not valid JSON")
		return InvalidJSONSentinel, 0
	}

	var arena fastjson.Arena
	var masked int
	out := r.transform(parsed, &arena, nil, &masked)
	return string(out), masked
}

// transform appends the redacted rendering of v to dst. The parsed tree is
// read, never mutated: the redacted document is built as a fresh copy.
func (r *Redactor) transform(v *fastjson.Value, arena *fastjson.Arena, dst []byte, masked *int) []byte {
	switch v.Type() {
	case fastjson.TypeObject:
		obj := v.GetObject()
		dst = append(dst, '{')
		first := true
		obj.Visit(func(key []byte, val *fastjson.Value) {
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = arena.NewString(string(key)).MarshalTo(dst)
			dst = append(dst, ':')
			if r.isSensitive(key) && !isEmptyString(val) {
				dst = append(dst, r.mask...)
				*masked++
			} else {
				dst = r.transform(val, arena, dst, masked)
			}
		})
		return append(dst, '}')

	case fastjson.TypeArray:
		dst = append(dst, '[')
		for i, item := range v.GetArray() {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = r.transform(item, arena, dst, masked)
		}
		return append(dst, ']')

	default:
		return v.MarshalTo(dst)
	}
}

// isSensitive matches configured keys case-insensitively and exactly:
// "token" matches "Token" and "TOKEN" but never "apiToken".
func (r *Redactor) isSensitive(key []byte) bool {
	_, ok := r.keys[strings.ToLower(string(key))]
	return ok
}

// A sensitive key holding an empty string keeps it: masking a value that
// never existed would suggest otherwise to whoever reads the logs.
func isEmptyString(v *fastjson.Value) bool {
	return v.Type() == fastjson.TypeString && len(v.GetStringBytes()) == 0
}
