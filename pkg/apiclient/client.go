// Package apiclient talks to the remote storefront REST API: authentication,
// menu catalog and orders all share its response envelope and its circuit
// breaker.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
)

const maxBodyBytes = 4 << 20

var ErrUnavailable = errors.New("api unavailable")

// Error is a response the API answered with a failure.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// StatusOf returns the API status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Envelope struct {
	Success    *bool           `json:"success,omitempty"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination json.RawMessage `json:"pagination,omitempty"`
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Name    string
}

type Client struct {
	base *url.URL
	http *http.Client
	cb   *gobreaker.CircuitBreaker
	log  *slog.Logger
}

func New(cfg Config, log *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse api base url")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("api base url %q must be absolute", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Name == "" {
		cfg.Name = "storefront-api"
	}
	if log == nil {
		log = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		IsSuccessful: func(err error) bool {
			// client-side mistakes say nothing about the API's health
			status := StatusOf(err)
			return err == nil || (status >= 400 && status < 500)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &Client{
		base: base,
		http: &http.Client{Timeout: cfg.Timeout},
		cb:   gobreaker.NewCircuitBreaker(st),
		log:  log,
	}, nil
}

type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Token       string
	Body        io.Reader
	ContentType string
}

// JSON builds a request whose body is v encoded as JSON.
func JSON(method, path, token string, v any) (Request, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Request{}, errors.Wrap(err, "encode request body")
	}
	return Request{
		Method:      method,
		Path:        path,
		Token:       token,
		Body:        bytes.NewReader(b),
		ContentType: "application/json",
	}, nil
}

// Do sends req and returns the decoded envelope of a successful response.
func (c *Client) Do(ctx context.Context, req Request) (Envelope, error) {
	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Envelope{}, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.Method, req.Path, err)
		}
		return Envelope{}, err
	}
	return res.(Envelope), nil
}

func (c *Client) roundTrip(ctx context.Context, req Request) (Envelope, error) {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), req.Body)
	if err != nil {
		return Envelope{}, errors.Wrapf(err, "build %s %s", req.Method, req.Path)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", req.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: read %s %s: %w", ErrUnavailable, req.Method, req.Path, err)
	}

	c.log.Debug("api call",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	var env Envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Envelope{}, &Error{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return Envelope{}, &Error{Status: http.StatusBadGateway, Message: errors.Wrap(decodeErr, "decode response envelope").Error()}
	}
	if env.Success != nil && !*env.Success {
		return Envelope{}, &Error{Status: http.StatusUnprocessableEntity, Message: env.Message}
	}
	return env, nil
}

// DecodeData unmarshals the envelope's data member into v.
func DecodeData(env Envelope, v any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return errors.New("response has no data")
	}
	return errors.Wrap(json.Unmarshal(env.Data, v), "decode response data")
}
