// Package backend implements the build backend collaborator as a JSON-RPC
// client speaking over a byte stream, normally the stdio of a spawned backend
// process.
package backend

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	methodGetMetadata = "conda/getMetadata"
	methodBuild       = "conda/build"
)

// Client implements ports.Backend over a request/response JSON stream. Calls
// are serialized; backends answer one request at a time.
type Client struct {
	mu     sync.Mutex
	enc    *json.Encoder
	dec    *json.Decoder
	nextID int64
}

// NewClient creates a client writing requests to w and reading responses
// from r.
func NewClient(w io.Writer, r io.Reader) *Client {
	return &Client{
		enc: json.NewEncoder(w),
		dec: json.NewDecoder(r),
	}
}

var _ ports.Backend = (*Client)(nil)

type request struct {
	ID     int64 `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params"`
}

type response struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return e.Message
}

type metadataParams struct {
	SourceDir string           `json:"sourceDir"`
	Platform  domain.Platform  `json:"platform"`
	Channels  []domain.Channel `json:"channels,omitempty"`
}

type metadataResult struct {
	Packages []domain.SourcePackageMetadata `json:"packages"`
}

type buildParams struct {
	Package   string          `json:"package"`
	SourceDir string          `json:"sourceDir"`
	Platform  domain.Platform `json:"platform"`
}

type buildResult struct {
	Record       domain.PackageRecord `json:"record"`
	ArtifactPath string               `json:"artifactPath"`
}

// GetMetadata asks the backend which packages the checkout provides.
func (c *Client) GetMetadata(
	ctx context.Context,
	_ ports.Dispatcher,
	checkout domain.SourceCheckout,
	platform domain.Platform,
	channels []domain.Channel,
) ([]domain.SourcePackageMetadata, error) {
	var result metadataResult
	err := c.call(ctx, methodGetMetadata, metadataParams{
		SourceDir: checkout.Path,
		Platform:  platform,
		Channels:  channels,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.Packages, nil
}

// Build asks the backend to produce the named package from its checkout.
func (c *Client) Build(ctx context.Context, _ ports.Dispatcher, spec *domain.BackendSourceBuildSpec) (domain.BuiltSource, error) {
	var result buildResult
	err := c.call(ctx, methodBuild, buildParams{
		Package:   spec.Package,
		SourceDir: spec.Checkout.Path,
		Platform:  spec.Platform,
	}, &result)
	if err != nil {
		return domain.BuiltSource{}, err
	}
	return domain.BuiltSource{
		Record:       result.Record,
		ArtifactPath: result.ArtifactPath,
	}, nil
}

// call performs one round trip. The stream has no cancellation of its own, so
// a fired context abandons the wait; the stream is unusable afterwards and
// the owning factory is expected to tear the process down.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID

	if err := c.enc.Encode(request{ID: id, Method: method, Params: params}); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to send backend request"), "method", method)
	}

	type decoded struct {
		resp response
		err  error
	}
	ch := make(chan decoded, 1)
	go func() {
		var resp response
		err := c.dec.Decode(&resp)
		ch <- decoded{resp: resp, err: err}
	}()

	var resp response
	select {
	case d := <-ch:
		if d.err != nil {
			return zerr.With(zerr.Wrap(d.err, "failed to read backend response"), "method", method)
		}
		resp = d.resp
	case <-ctx.Done():
		return ctx.Err()
	}

	if resp.ID != id {
		return zerr.With(zerr.New("backend answered out of order"), "method", method)
	}
	if resp.Error != nil {
		return zerr.With(zerr.Wrap(resp.Error, "backend request failed"), "method", method)
	}
	if result != nil {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to decode backend result"), "method", method)
		}
	}
	return nil
}
