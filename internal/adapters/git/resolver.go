// Package git implements the git resolver collaborator by shelling out to the
// git CLI. Checkouts live in a content-addressed cache keyed by repository
// URL and revision, so a reference is fetched at most once per cache.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.GitResolver.
type Resolver struct {
	cacheDir string
	logger   ports.Logger

	// GitPath is the git executable to invoke. Defaults to "git".
	GitPath string
}

// NewResolver creates a resolver whose checkouts live under cacheDir.
func NewResolver(cacheDir string, logger ports.Logger) *Resolver {
	return &Resolver{
		cacheDir: cacheDir,
		logger:   logger,
		GitPath:  "git",
	}
}

var _ ports.GitResolver = (*Resolver)(nil)

// Checkout fetches the reference into the cache and reports the resolved
// commit. An already-present checkout is reused without touching the network.
func (r *Resolver) Checkout(ctx context.Context, ref domain.GitReference) (domain.GitCheckout, error) {
	dir := r.CheckoutPath(ref)

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		if err := os.MkdirAll(filepath.Dir(dir), 0o750); err != nil {
			return domain.GitCheckout{}, zerr.Wrap(err, "failed to create checkout cache directory")
		}
		if _, err := r.run(ctx, "clone", ref.URL, dir); err != nil {
			return domain.GitCheckout{}, err
		}
		if ref.Rev != "" {
			if _, err := r.run(ctx, "-C", dir, "checkout", "--detach", ref.Rev); err != nil {
				return domain.GitCheckout{}, err
			}
		}
		if r.logger != nil {
			r.logger.Info("fetched " + ref.URL + " into checkout cache")
		}
	}

	commit, err := r.run(ctx, "-C", dir, "rev-parse", "HEAD")
	if err != nil {
		return domain.GitCheckout{}, err
	}

	return domain.GitCheckout{
		Reference: ref,
		Commit:    strings.TrimSpace(commit),
		Path:      dir,
	}, nil
}

// CheckoutPath is the cache directory a reference resolves to.
func (r *Resolver) CheckoutPath(ref domain.GitReference) string {
	h := xxhash.New()
	_, _ = h.WriteString(ref.URL)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(ref.Rev)
	return filepath.Join(r.cacheDir, "git", fmt.Sprintf("%016x", h.Sum64()))
}

func (r *Resolver) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.GitPath, args...) //nolint:gosec // arguments are derived from the manifest
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", zerr.With(
			zerr.With(zerr.Wrap(err, "git command failed"), "args", strings.Join(args, " ")),
			"output", strings.TrimSpace(string(out)),
		)
	}
	return string(out), nil
}
