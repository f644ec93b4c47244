// Package ajax issues XHR style requests. A call resolves exactly one of
// the Success or Error callbacks, then Complete, and delivers the same
// outcome on the returned channel.
package ajax

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultAccept      = "application/json, text/javascript, */*"
	DefaultContentType = "application/x-www-form-urlencoded; charset=UTF-8"
	RequestedWith      = "XMLHttpRequest"

	// MethodUpdate is the verb sent by Update.
	MethodUpdate = "UPDATE"
)

var ErrNoURL = errors.New("ajax: no url")

// Options describes one request. Zero fields take the defaults: GET,
// DefaultAccept, DefaultContentType, asynchronous.
type Options struct {
	Method string
	// URL is used when the url argument is empty.
	URL         string
	Accept      string
	ContentType string
	// Sync completes the request before Do returns. In the browser build it
	// must not be used from an event callback, which cannot block.
	Sync bool
	// Data is form encoded into the body unless DataString is set.
	Data       map[string]any
	DataString string
	Headers    map[string]string

	Success  func(body string)
	Error    func(body string)
	Complete func(body string)
}

// Response is the outcome of a request.
type Response struct {
	Status int
	Body   string
	// Err is a *StatusError for non-200 responses, or the transport error.
	Err error
}

// OK reports whether the request succeeded.
func (r Response) OK() bool {
	return r.Err == nil
}

// StatusError is a response whose status is not 200.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ajax: status %d", e.Status)
}

// Hooks lets instrumentation observe requests. All fields are optional.
type Hooks struct {
	OnResponse func(method string, status int, elapsed time.Duration)
}

// Client sends requests.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
	hooks   Hooks
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithBaseURL prefixes relative request urls.
func WithBaseURL(base string) Option {
	return func(cl *Client) {
		cl.baseURL = base
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// WithHooks installs instrumentation hooks.
func WithHooks(h Hooks) Option {
	return func(cl *Client) {
		cl.hooks = h
	}
}

// New returns a Client.
func New(opts ...Option) *Client {
	c := &Client{http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Do sends the request described by o. The returned channel receives one
// Response and is then closed.
func (c *Client) Do(ctx context.Context, rawURL string, o Options) <-chan Response {
	out := make(chan Response, 1)
	run := func() {
		defer close(out)
		resp := c.send(ctx, rawURL, o)
		c.settle(o, resp)
		out <- resp
	}
	if o.Sync {
		run()
	} else {
		go run()
	}
	return out
}

// Post sends o as a POST.
func (c *Client) Post(ctx context.Context, rawURL string, o Options) <-chan Response {
	o.Method = http.MethodPost
	return c.Do(ctx, rawURL, o)
}

// Update sends o with the UPDATE verb.
func (c *Client) Update(ctx context.Context, rawURL string, o Options) <-chan Response {
	o.Method = MethodUpdate
	return c.Do(ctx, rawURL, o)
}

// Delete sends o as a DELETE.
func (c *Client) Delete(ctx context.Context, rawURL string, o Options) <-chan Response {
	o.Method = http.MethodDelete
	return c.Do(ctx, rawURL, o)
}

func (c *Client) send(ctx context.Context, rawURL string, o Options) Response {
	target, err := c.resolve(rawURL, o)
	if err != nil {
		return Response{Err: err}
	}
	method := or(o.Method, http.MethodGet)

	var body io.Reader
	if payload := Body(o); payload != "" && method != http.MethodGet && method != http.MethodHead {
		body = strings.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return Response{Err: fmt.Errorf("ajax: build request: %w", err)}
	}
	req.Header.Set("Accept", or(o.Accept, DefaultAccept))
	req.Header.Set("Content-Type", or(o.ContentType, DefaultContentType))
	req.Header.Set("X-Requested-With", RequestedWith)
	for k, v := range o.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.observe(method, 0, start)
		return Response{Err: fmt.Errorf("ajax: %s %s: %w", method, target, err)}
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	c.observe(method, res.StatusCode, start)

	resp := Response{Status: res.StatusCode, Body: string(raw)}
	switch {
	case err != nil:
		resp.Err = fmt.Errorf("ajax: read body: %w", err)
	case res.StatusCode != http.StatusOK:
		resp.Err = &StatusError{Status: res.StatusCode, Body: resp.Body}
	}
	return resp
}

func (c *Client) settle(o Options, resp Response) {
	if resp.Err != nil {
		c.logger.Error("xhr error", slog.Int("status", resp.Status), slog.String("response", resp.Body), slog.Any("error", resp.Err))
		if o.Error != nil {
			o.Error(resp.Body)
		}
	} else {
		c.logger.Info("http success", slog.Int("status", resp.Status))
		if o.Success != nil {
			o.Success(resp.Body)
		}
	}
	if o.Complete != nil {
		o.Complete(resp.Body)
	}
}

func (c *Client) observe(method string, status int, start time.Time) {
	if h := c.hooks.OnResponse; h != nil {
		h(method, status, time.Since(start))
	}
}

func (c *Client) resolve(rawURL string, o Options) (string, error) {
	target := or(rawURL, o.URL)
	if target == "" {
		return "", ErrNoURL
	}
	if c.baseURL == "" {
		return target, nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("ajax: parse url: %w", err)
	}
	if u.IsAbs() {
		return target, nil
	}
	return strings.TrimSuffix(c.baseURL, "/") + "/" + strings.TrimPrefix(target, "/"), nil
}

// Body returns the request body for o: DataString when set, otherwise Data
// form encoded with keys in sorted order.
func Body(o Options) string {
	if o.DataString != "" || len(o.Data) == 0 {
		return o.DataString
	}
	values := make(url.Values, len(o.Data))
	for k, v := range o.Data {
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
