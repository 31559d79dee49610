package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

func (p *processor) onInstall(t installTask) {
	submit(p, &p.installs, t.task, p.runInstall, func(id uint64, out outcome[domain.InstallEnvironmentResult]) completion {
		return installDone{id: id, out: out}
	})
}

func (p *processor) runInstall(ctx context.Context, _ *Dispatcher, spec *domain.InstallEnvironmentSpec) (domain.InstallEnvironmentResult, error) {
	if err := requireCollaborator("environment installer", p.data.installer != nil); err != nil {
		return domain.InstallEnvironmentResult{}, err
	}
	return p.data.installer.Install(ctx, spec)
}

type installDone struct {
	id  uint64
	out outcome[domain.InstallEnvironmentResult]
}

func (c installDone) apply(p *processor) {
	finish(p, &p.installs, c.id, c.out)
}
