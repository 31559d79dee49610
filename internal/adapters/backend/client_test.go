package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/den/internal/adapters/backend"
	"go.trai.ch/den/internal/core/domain"
)

type rpcRequest struct {
	ID     int64           `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// serve runs a fake backend on the far end of the pipes, answering each
// request with the handler's result or error message.
func serve(t *testing.T, r io.Reader, w io.Writer, handler func(req rpcRequest) (any, string)) {
	t.Helper()
	go func() {
		dec := json.NewDecoder(r)
		enc := json.NewEncoder(w)
		for {
			var req rpcRequest
			if err := dec.Decode(&req); err != nil {
				return
			}
			result, errMsg := handler(req)
			resp := map[string]any{"id": req.ID}
			if errMsg != "" {
				resp["error"] = map[string]any{"code": 1, "message": errMsg}
			} else {
				resp["result"] = result
			}
			if err := enc.Encode(resp); err != nil {
				return
			}
		}
	}()
}

func newTestClient(t *testing.T, handler func(req rpcRequest) (any, string)) *backend.Client {
	t.Helper()
	toBackend, fromClient := io.Pipe()
	toClient, fromBackend := io.Pipe()
	t.Cleanup(func() {
		_ = fromClient.Close()
		_ = fromBackend.Close()
	})
	serve(t, toBackend, fromBackend, handler)
	return backend.NewClient(fromClient, toClient)
}

func TestGetMetadata(t *testing.T) {
	client := newTestClient(t, func(req rpcRequest) (any, string) {
		assert.Equal(t, "conda/getMetadata", req.Method)
		var params struct {
			SourceDir string `json:"sourceDir"`
			Platform  string `json:"platform"`
		}
		require.NoError(t, json.Unmarshal(req.Params, &params))
		assert.Equal(t, "/src/pkg", params.SourceDir)
		assert.Equal(t, "linux-64", params.Platform)

		return map[string]any{
			"packages": []map[string]any{
				{"name": "mylib", "version": "0.3.0"},
			},
		}, ""
	})

	checkout := domain.SourceCheckout{Path: "/src/pkg", Origin: domain.SourceSpec{Path: "pkg"}}
	packages, err := client.GetMetadata(context.Background(), nil, checkout, "linux-64", nil)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "mylib", packages[0].Name)
	assert.Equal(t, "0.3.0", packages[0].Version)
}

func TestBuild(t *testing.T) {
	client := newTestClient(t, func(req rpcRequest) (any, string) {
		assert.Equal(t, "conda/build", req.Method)
		return map[string]any{
			"record":       map[string]any{"name": "mylib", "version": "0.3.0", "build": "0", "subdir": "linux-64"},
			"artifactPath": "/cache/artifacts/mylib-0.3.0.conda",
		}, ""
	})

	spec := &domain.BackendSourceBuildSpec{
		Package:  "mylib",
		Checkout: domain.SourceCheckout{Path: "/src/pkg"},
		Platform: "linux-64",
	}
	built, err := client.Build(context.Background(), nil, spec)
	require.NoError(t, err)
	assert.Equal(t, "mylib", built.Record.Name)
	assert.Equal(t, "/cache/artifacts/mylib-0.3.0.conda", built.ArtifactPath)
}

func TestBackendError(t *testing.T) {
	client := newTestClient(t, func(rpcRequest) (any, string) {
		return nil, "unsupported source layout"
	})

	checkout := domain.SourceCheckout{Path: "/src/pkg"}
	_, err := client.GetMetadata(context.Background(), nil, checkout, "linux-64", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported source layout")
}

func TestCallAbandonedOnContextCancel(t *testing.T) {
	// A backend that consumes requests but never answers.
	toBackend, fromClient := io.Pipe()
	t.Cleanup(func() { _ = fromClient.Close() })
	go func() {
		_, _ = io.Copy(io.Discard, toBackend)
	}()
	client := backend.NewClient(fromClient, neverReader{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetMetadata(ctx, nil, domain.SourceCheckout{Path: "/src"}, "linux-64", nil)
	require.ErrorIs(t, err, context.Canceled)
}

// neverReader blocks forever.
type neverReader struct{}

func (neverReader) Read([]byte) (int, error) {
	select {}
}
