package dispatch

import (
	"context"
	"path/filepath"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/zerr"
)

func (p *processor) onBackendMetadata(t backendMetadataTask) {
	submit(p, &p.backendMetadata, t.task, p.runBackendMetadata, func(id uint64, out outcome[*domain.BackendMetadata]) completion {
		return backendMetadataDone{id: id, out: out}
	})
}

func (p *processor) runBackendMetadata(ctx context.Context, d *Dispatcher, spec *domain.BackendMetadataSpec) (*domain.BackendMetadata, error) {
	if err := requireCollaborator("build backend", p.data.backend != nil); err != nil {
		return nil, err
	}

	checkout, err := p.checkoutSource(ctx, d, spec.Source)
	if err != nil {
		return nil, err
	}

	packages, err := p.data.backend.GetMetadata(ctx, d, checkout, spec.Platform, spec.Channels)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to query backend metadata"), "source", spec.Source.String())
	}

	return &domain.BackendMetadata{Checkout: checkout, Packages: packages}, nil
}

// checkoutSource materializes a source location on disk. Git sources go
// through the dispatcher so concurrent requests for the same reference share
// one fetch; path sources resolve against the workspace root.
func (p *processor) checkoutSource(ctx context.Context, d *Dispatcher, source domain.SourceSpec) (domain.SourceCheckout, error) {
	if source.Git != nil {
		co, err := d.CheckoutGit(ctx, *source.Git)
		if err != nil {
			return domain.SourceCheckout{}, err
		}
		return domain.SourceCheckout{Path: co.Path, Origin: source}, nil
	}

	path := source.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.data.rootDir, path)
	}
	return domain.SourceCheckout{Path: path, Origin: source}, nil
}

type backendMetadataDone struct {
	id  uint64
	out outcome[*domain.BackendMetadata]
}

func (c backendMetadataDone) apply(p *processor) {
	finish(p, &p.backendMetadata, c.id, c.out)
}
