package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/zerr"
)

// Source metadata narrows a backend metadata result down to one named
// package. The backend call itself is a separate, deduplicated task, so many
// per-package requests against the same source share one backend invocation.

func (p *processor) onSourceMetadata(t sourceMetadataTask) {
	submit(p, &p.sourceMetadata, t.task, p.runSourceMetadata, func(id uint64, out outcome[*domain.SourceMetadata]) completion {
		return sourceMetadataDone{id: id, out: out}
	})
}

func (p *processor) runSourceMetadata(ctx context.Context, d *Dispatcher, spec *domain.SourceMetadataSpec) (*domain.SourceMetadata, error) {
	md, err := d.BackendMetadata(ctx, &domain.BackendMetadataSpec{
		Source:   spec.Source,
		Platform: spec.Platform,
		Channels: spec.Channels,
	})
	if err != nil {
		return nil, err
	}

	for _, pkg := range md.Packages {
		if pkg.Name == spec.Package {
			return &domain.SourceMetadata{Package: pkg, Checkout: md.Checkout}, nil
		}
	}
	return nil, zerr.With(
		zerr.With(domain.ErrPackageNotProvided, "package", spec.Package),
		"source", spec.Source.String(),
	)
}

type sourceMetadataDone struct {
	id  uint64
	out outcome[*domain.SourceMetadata]
}

func (c sourceMetadataDone) apply(p *processor) {
	finish(p, &p.sourceMetadata, c.id, c.out)
}
