package ajax

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method  string
	path    string
	body    string
	headers http.Header
}

func newServer(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	var mu sync.Mutex
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		got.method, got.path, got.body, got.headers = r.Method, r.URL.Path, string(b), r.Header.Clone()
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

// calls records the callback order of one request.
type calls struct {
	mu    sync.Mutex
	order []string
	body  string
}

func (c *calls) options(o Options) Options {
	rec := func(name string) func(string) {
		return func(body string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.order = append(c.order, name)
			c.body = body
		}
	}
	o.Success, o.Error, o.Complete = rec("success"), rec("error"), rec("complete")
	return o
}

func TestPost_FormBodyAndSuccess(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"ok":true}`)
	var c calls

	resp := <-New().Post(context.Background(), srv.URL+"/items", c.options(Options{
		Data: map[string]any{"b": 2, "a": 1},
	}))

	require.True(t, resp.OK())
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, `{"ok":true}`, resp.Body)
	assert.Equal(t, "POST", got.method)
	assert.Equal(t, "a=1&b=2", got.body)
	assert.Equal(t, []string{"success", "complete"}, c.order)
	assert.Equal(t, `{"ok":true}`, c.body)
}

func TestDo_DefaultHeaders(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "")

	resp := <-New().Do(context.Background(), srv.URL, Options{Headers: map[string]string{"X-Token": "t"}})

	require.NoError(t, resp.Err)
	assert.Equal(t, "GET", got.method)
	assert.Equal(t, DefaultAccept, got.headers.Get("Accept"))
	assert.Equal(t, DefaultContentType, got.headers.Get("Content-Type"))
	assert.Equal(t, RequestedWith, got.headers.Get("X-Requested-With"))
	assert.Equal(t, "t", got.headers.Get("X-Token"))
}

func TestDo_NonOKRoutesToError(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusNotFound, http.StatusInternalServerError} {
		srv, _ := newServer(t, status, "nope")
		var c calls

		resp := <-New().Do(context.Background(), srv.URL, c.options(Options{}))

		var se *StatusError
		require.ErrorAs(t, resp.Err, &se)
		assert.Equal(t, status, se.Status)
		assert.Equal(t, "nope", se.Body)
		assert.Equal(t, []string{"error", "complete"}, c.order)
	}
}

func TestDo_SyncCompletesBeforeReturn(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "done")
	var c calls

	ch := New().Do(context.Background(), srv.URL, c.options(Options{Sync: true}))

	assert.Equal(t, []string{"success", "complete"}, c.order)
	resp, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, "done", resp.Body)
	_, ok = <-ch
	assert.False(t, ok)
}

func TestDo_DataStringWins(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "")

	<-New().Do(context.Background(), srv.URL, Options{
		Method:      "PUT",
		DataString:  `{"raw":1}`,
		Data:        map[string]any{"ignored": 1},
		ContentType: "application/json",
	})

	assert.Equal(t, `{"raw":1}`, got.body)
	assert.Equal(t, "application/json", got.headers.Get("Content-Type"))
}

func TestVerbs(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "")
	client := New()
	ctx := context.Background()

	<-client.Update(ctx, srv.URL, Options{})
	assert.Equal(t, MethodUpdate, got.method)

	<-client.Delete(ctx, srv.URL, Options{})
	assert.Equal(t, http.MethodDelete, got.method)
}

func TestBaseURLAndOptionURL(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "")
	client := New(WithBaseURL(srv.URL + "/api/"))

	<-client.Do(context.Background(), "/echo", Options{})
	assert.Equal(t, "/api/echo", got.path)

	<-client.Do(context.Background(), "", Options{URL: "status"})
	assert.Equal(t, "/api/status", got.path)

	<-client.Do(context.Background(), srv.URL+"/abs", Options{})
	assert.Equal(t, "/abs", got.path)
}

func TestDo_NoURL(t *testing.T) {
	var c calls

	resp := <-New().Do(context.Background(), "", c.options(Options{}))

	assert.ErrorIs(t, resp.Err, ErrNoURL)
	assert.Equal(t, []string{"error", "complete"}, c.order)
}

func TestDo_TransportErrorAndHooks(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "")
	addr := srv.URL
	srv.Close()

	var statuses []int
	client := New(WithHooks(Hooks{OnResponse: func(method string, status int, _ time.Duration) {
		statuses = append(statuses, status)
	}}))

	resp := <-client.Do(context.Background(), addr, Options{Sync: true})

	assert.Error(t, resp.Err)
	assert.Zero(t, resp.Status)
	assert.Equal(t, []int{0}, statuses)
}

func TestBody(t *testing.T) {
	assert.Equal(t, "", Body(Options{}))
	assert.Equal(t, "q=a+b&z=%26", Body(Options{Data: map[string]any{"z": "&", "q": "a b"}}))
}
