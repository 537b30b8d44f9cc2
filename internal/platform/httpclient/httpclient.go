package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-welfare-dashboard/internal/platform/logger"
	"pet-welfare-dashboard/internal/platform/metrics"

	"github.com/google/uuid"
)

const (
	DefaultTimeout = 10 * time.Second

	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 1 << 20
)

// Client es el único componente que habla con la red.
// Un request fallido se reporta una sola vez: no hay reintentos.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, Request/DoJSON aceptan paths relativos

	Log     logger.Logger    // opcional
	Metrics *metrics.Metrics // opcional
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	if err := c.SetBaseURL(baseURL); err != nil {
		return nil, err
	}
	return c, nil
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

func (c *Client) SetBaseURL(baseURL string) error {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// NetworkError cubre DNS, conexión rechazada, timeouts, etc.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Message
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError: respuesta 2xx cuyo body no es JSON válido.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var errInvalidJSON = errors.New("response body is not valid json")

// Request envía method+path y devuelve el body JSON crudo.
// - body: opcional, se serializa como JSON.
// - Un 204 devuelve "null".
func (c *Client) Request(ctx context.Context, method, pathOrURL string, body any) (json.RawMessage, error) {
	return c.do(ctx, method, pathOrURL, nil, body)
}

// DoJSON hace un request JSON.
// - method: GET/POST/etc
// - pathOrURL: puede ser URL absoluta o path relativo si BaseURL está seteado
// - headers: headers extra (opcional)
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Retorna error si status no es 2xx.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	raw, err := c.do(ctx, method, pathOrURL, headers, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

func (c *Client) do(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
) (json.RawMessage, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	// Defaults
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Extra headers
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	metricPath := routeLabel(req.URL.Path)
	start := time.Now()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.observe(method, metricPath, "network_error", start, reqID, err)
		return nil, &NetworkError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	// 2xx se lee completo; el body de un error solo se usa en el mensaje
	var raw []byte
	if ok {
		raw, err = io.ReadAll(resp.Body)
	} else {
		raw, err = readAtMost(resp.Body, maxErrorBody)
	}
	if err != nil {
		c.observe(method, metricPath, "network_error", start, reqID, err)
		return nil, &NetworkError{Message: err.Error(), Err: err}
	}

	if !ok {
		herr := &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
		c.observe(method, metricPath, "http_error", start, reqID, herr)
		return nil, herr
	}

	if resp.StatusCode == http.StatusNoContent {
		c.observe(method, metricPath, "ok", start, reqID, nil)
		return json.RawMessage("null"), nil
	}

	if !json.Valid(raw) {
		derr := &DecodeError{Err: errInvalidJSON}
		c.observe(method, metricPath, "decode_error", start, reqID, derr)
		return nil, derr
	}

	c.observe(method, metricPath, "ok", start, reqID, nil)
	return json.RawMessage(raw), nil
}

func (c *Client) observe(method, path, outcome string, start time.Time, reqID string, err error) {
	took := time.Since(start)
	c.Metrics.ObserveGatewayRequest(method, path, outcome, took)

	if c.Log == nil {
		return
	}
	fields := map[string]any{
		"method":     method,
		"path":       path,
		"outcome":    outcome,
		"request_id": reqID,
		"took_ms":    took.Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		c.Log.Warn("welfare api request failed", fields)
		return
	}
	c.Log.Debug("welfare api request", fields)
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	// Si no es absoluta, requiere BaseURL.
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

// routeLabel reemplaza segmentos numéricos por {id} para que el label
// de métricas no crezca con cada animal (/delete-animal/7 => /delete-animal/{id}).
func routeLabel(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segs[i] = "{id}"
		}
	}
	return strings.Join(segs, "/")
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = maxErrorBody
	}
	lr := io.LimitReader(r, max)
	return io.ReadAll(lr)
}
