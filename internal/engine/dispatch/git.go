package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

// Git checkouts are deduplicated by repository reference but not
// concurrency-limited: they are I/O bound and the resolver's checkout cache
// keeps repeats cheap.

func (p *processor) onGitCheckout(t gitCheckoutTask) {
	submit(p, &p.gitCheckouts, t.task, p.runGitCheckout, func(id uint64, out outcome[domain.GitCheckout]) completion {
		return gitCheckoutDone{id: id, out: out}
	})
}

func (p *processor) runGitCheckout(ctx context.Context, _ *Dispatcher, ref domain.GitReference) (domain.GitCheckout, error) {
	if err := requireCollaborator("git resolver", p.data.gitResolver != nil); err != nil {
		return domain.GitCheckout{}, err
	}
	return p.data.gitResolver.Checkout(ctx, ref)
}

type gitCheckoutDone struct {
	id  uint64
	out outcome[domain.GitCheckout]
}

func (c gitCheckoutDone) apply(p *processor) {
	finish(p, &p.gitCheckouts, c.id, c.out)
}
