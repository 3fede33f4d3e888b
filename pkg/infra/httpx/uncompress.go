package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fasthttp"
)

// DecodeChain decodes a response body according to its Content-Encoding
// header so the plain text can be inspected. Chained encodings such as
// "gzip, br" are unwound in reverse order. Supported algorithms: br, gzip,
// zstd and deflate (zlib-wrapped or raw). Returns the decoded body, whether
// anything changed, and an error when decoding failed.
func DecodeChain(resp *fasthttp.Response, body []byte) ([]byte, bool, error) {
	ce := string(resp.Header.Peek("Content-Encoding"))
	if ce == "" {
		return body, false, nil
	}

	encodings := strings.Split(ce, ",")
	changed := false
	for i := len(encodings) - 1; i >= 0; i-- {
		encoding := strings.TrimSpace(strings.ToLower(encodings[i]))
		switch encoding {
		case "", "identity", "compress":
			continue
		}

		out, err := decodeSingle(encoding, body)
		if err != nil {
			return nil, false, err
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

func decodeSingle(encoding string, body []byte) ([]byte, error) {
	switch encoding {
	case "br":
		return decodeBrotli(body)
	case "gzip":
		return decodeGzip(body)
	case "zstd":
		return decodeZstd(body)
	case "deflate":
		return decodeDeflate(body)
	default:
		return nil, fmt.Errorf("unsupported content-encoding: %q", encoding)
	}
}

func decodeBrotli(body []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
}

func decodeGzip(body []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(gr)
	if cerr := gr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeZstd(body []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

func decodeDeflate(body []byte) ([]byte, error) {
	// zlib-wrapped first per RFC 9110, raw DEFLATE as the legacy fallback.
	if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		out, err := io.ReadAll(zr)
		if cerr := zr.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	fr := flate.NewReader(bytes.NewReader(body))
	out, err := io.ReadAll(fr)
	if cerr := fr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
