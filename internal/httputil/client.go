package httputil

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Client is the outbound HTTP seam. Production code wraps *http.Client
// with RealClient; tests queue canned responses on a MockClient.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
	Get(url string) (*http.Response, error)
}

// RealClient adapts *http.Client to the Client interface.
type RealClient struct {
	*http.Client
}

// NewRealClient wraps c, falling back to http.DefaultClient when c is nil.
func NewRealClient(c *http.Client) *RealClient {
	if c == nil {
		c = http.DefaultClient
	}
	return &RealClient{Client: c}
}

func (c *RealClient) Do(req *http.Request) (*http.Response, error) {
	return c.Client.Do(req)
}

func (c *RealClient) Get(url string) (*http.Response, error) {
	return c.Client.Get(url)
}

// MockClient records every request and replays queued responses in order.
// Once the queue is exhausted it answers with empty 200s.
type MockClient struct {
	mu       sync.Mutex
	requests []*http.Request
	queue    []mockResponse
	next     int
}

type mockResponse struct {
	status int
	body   string
	err    error
}

// NewMockClient returns an empty mock.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// AddResponse queues one canned response.
func (m *MockClient) AddResponse(status int, body string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockResponse{status: status, body: body})
	return m
}

// AddError queues a transport-level failure.
func (m *MockClient) AddError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockResponse{err: err})
	return m
}

func (m *MockClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.next < len(m.queue) {
		canned := m.queue[m.next]
		m.next++
		if canned.err != nil {
			return nil, canned.err
		}
		return &http.Response{
			StatusCode: canned.status,
			Status:     http.StatusText(canned.status),
			Body:       io.NopCloser(bytes.NewBufferString(canned.body)),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		Body:       io.NopCloser(bytes.NewBufferString("")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (m *MockClient) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

// Requests returns the recorded requests in arrival order.
func (m *MockClient) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// RequestCount returns how many requests the mock has served.
func (m *MockClient) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
