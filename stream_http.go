package streammd

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPSimulateRequest configures HTTPSimulate.
type HTTPSimulateRequest struct {
	URL          string
	Client       *http.Client
	Sink         FrameSink
	TickInterval time.Duration
	MinSpeed     int
	MaxSpeed     int
	Repair       bool
}

// HTTPSimulate fetches a Markdown document over HTTP(S) and replays it as a
// live stream. The document is fully downloaded before streaming starts; the
// stream itself is the usual local simulation.
func HTTPSimulate(ctx context.Context, req HTTPSimulateRequest) error {
	if req.URL == "" {
		return fmt.Errorf("stream http: URL is required")
	}
	if req.Sink == nil {
		return fmt.Errorf("stream http: Sink is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("stream http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("stream http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("stream http: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("stream http: status %s", resp.Status)
	}
	return Simulate(SimulateRequest{
		Reader:       resp.Body,
		Sink:         req.Sink,
		TickInterval: req.TickInterval,
		MinSpeed:     req.MinSpeed,
		MaxSpeed:     req.MaxSpeed,
		Repair:       req.Repair,
	})
}
