package dispatch

import (
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
)

// sharedData holds the collaborators and settings shared by every dispatcher
// handle and the processor. It is immutable after construction.
type sharedData struct {
	condaSolver ports.CondaSolver
	installer   ports.EnvironmentInstaller
	gitResolver ports.GitResolver
	backend     ports.Backend
	buildCache  ports.BuildCacheStore
	logger      ports.Logger
	rootDir     string
	limits      Limits
}

// processor runs the dispatcher's background event loop. It is the only
// goroutine that touches the deduplication tables, the parent-context map and
// the limited queues, so none of them need locking. Underlying work runs in
// spawned goroutines that report back on the results channel.
type processor struct {
	inbox    chan message
	results  chan completion
	shutdown chan struct{}
	stopped  chan struct{}

	data     *sharedData
	reporter ports.Reporter

	// parentContexts records, for each unresolved task, the context of the
	// task that spawned it. Entries are removed when the task resolves.
	parentContexts map[Context]Context

	// kinds indexes every table by kind for parent-chain walks.
	kinds map[domain.TaskKind]kindLookup

	condaSolves     kindState[[]domain.PackageRecord]
	envSolves      kindState[[]domain.PackageRecord]
	installs        kindState[domain.InstallEnvironmentResult]
	gitCheckouts    kindState[domain.GitCheckout]
	backendMetadata kindState[*domain.BackendMetadata]
	sourceMetadata  kindState[*domain.SourceMetadata]
	sourceBuilds    kindState[domain.SourceBuildResult]
	backendBuilds   kindState[domain.BuiltSource]
	cacheStatus     kindState[*domain.SourceBuildCacheEntry]

	// inflight counts spawned goroutines that have not yet reported a
	// completion. The loop only stops once it reaches zero.
	inflight int
}

func newProcessor(data *sharedData, reporter ports.Reporter) *processor {
	p := &processor{
		inbox:          make(chan message),
		results:        make(chan completion),
		shutdown:       make(chan struct{}),
		stopped:        make(chan struct{}),
		data:           data,
		reporter:       reporter,
		parentContexts: make(map[Context]Context),

		condaSolves:     newKindState[[]domain.PackageRecord](domain.KindCondaSolve, data.limits.CondaSolves),
		envSolves:      newKindState[[]domain.PackageRecord](domain.KindEnvironmentSolve, 0),
		installs:        newKindState[domain.InstallEnvironmentResult](domain.KindInstall, 0),
		gitCheckouts:    newKindState[domain.GitCheckout](domain.KindGitCheckout, 0),
		backendMetadata: newKindState[*domain.BackendMetadata](domain.KindBackendMetadata, 0),
		sourceMetadata:  newKindState[*domain.SourceMetadata](domain.KindSourceMetadata, 0),
		sourceBuilds:    newKindState[domain.SourceBuildResult](domain.KindSourceBuild, data.limits.SourceBuilds),
		backendBuilds:   newKindState[domain.BuiltSource](domain.KindBackendSourceBuild, data.limits.BackendSourceBuilds),
		cacheStatus:     newKindState[*domain.SourceBuildCacheEntry](domain.KindCacheStatus, 0),
	}

	p.kinds = map[domain.TaskKind]kindLookup{
		domain.KindCondaSolve:         &p.condaSolves.table,
		domain.KindEnvironmentSolve:          &p.envSolves.table,
		domain.KindInstall:            &p.installs.table,
		domain.KindGitCheckout:        &p.gitCheckouts.table,
		domain.KindBackendMetadata:    &p.backendMetadata.table,
		domain.KindSourceMetadata:     &p.sourceMetadata.table,
		domain.KindSourceBuild:        &p.sourceBuilds.table,
		domain.KindBackendSourceBuild: &p.backendBuilds.table,
		domain.KindCacheStatus:        &p.cacheStatus.table,
	}

	if reporter != nil {
		p.condaSolves.hooks = reporterHooks{reporter.OnCondaSolveQueued, reporter.OnCondaSolveStarted, reporter.OnCondaSolveFinished}
		p.envSolves.hooks = reporterHooks{reporter.OnEnvSolveQueued, reporter.OnEnvSolveStarted, reporter.OnEnvSolveFinished}
		p.installs.hooks = reporterHooks{reporter.OnInstallQueued, reporter.OnInstallStarted, reporter.OnInstallFinished}
		p.gitCheckouts.hooks = reporterHooks{reporter.OnGitCheckoutQueued, reporter.OnGitCheckoutStarted, reporter.OnGitCheckoutFinished}
		p.backendMetadata.hooks = reporterHooks{reporter.OnBackendMetadataQueued, reporter.OnBackendMetadataStarted, reporter.OnBackendMetadataFinished}
		p.sourceMetadata.hooks = reporterHooks{reporter.OnSourceMetadataQueued, reporter.OnSourceMetadataStarted, reporter.OnSourceMetadataFinished}
		p.sourceBuilds.hooks = reporterHooks{reporter.OnSourceBuildQueued, reporter.OnSourceBuildStarted, reporter.OnSourceBuildFinished}
		p.backendBuilds.hooks = reporterHooks{reporter.OnBackendSourceBuildQueued, reporter.OnBackendSourceBuildStarted, reporter.OnBackendSourceBuildFinished}
		// Cache status queries are short-lived and carry no reporter events.
	}

	return p
}

// run is the processor's event loop. It alternates between accepting new
// requests from the inbox and applying completions of previously spawned
// work, until shutdown is signalled; then it cancels queued-but-unstarted
// work, lets in-flight work finish, and stops.
func (p *processor) run() {
	if p.reporter != nil {
		p.reporter.OnStart()
	}
	if p.data.logger != nil {
		p.data.logger.Info("dispatcher background loop started")
	}

	running := true
	for running {
		select {
		case msg := <-p.inbox:
			msg.deliver(p)
		case c := <-p.results:
			p.inflight--
			c.apply(p)
		case <-p.shutdown:
			running = false
		}
	}

	// Draining: nothing new starts, queued work is cancelled, in-flight
	// work is allowed to complete so its waiters get their results.
	for _, ks := range []*limitQueue{p.condaSolves.queue, p.sourceBuilds.queue, p.backendBuilds.queue} {
		if ks != nil {
			ks.drain()
		}
	}
	for p.inflight > 0 {
		select {
		case msg := <-p.inbox:
			msg.drop()
		case c := <-p.results:
			p.inflight--
			c.apply(p)
		}
	}
	for {
		select {
		case msg := <-p.inbox:
			msg.drop()
		default:
			if p.reporter != nil {
				p.reporter.OnFinished()
			}
			if p.data.logger != nil {
				p.data.logger.Info("dispatcher background loop stopped")
			}
			close(p.stopped)
			return
		}
	}
}

// sendCompletion hands a finished unit of work back to the loop. The loop
// never stops while work is in flight, so the send always succeeds; stopped
// is only a guard against delivering after a hard loop exit.
func (p *processor) sendCompletion(c completion) {
	select {
	case p.results <- c:
	case <-p.stopped:
	}
}

// scoped constructs a dispatcher handle for work spawned by the given task.
// Requests made through it carry the task as their parent context.
func (p *processor) scoped(ctx Context) *Dispatcher {
	taskCtx := ctx
	return &Dispatcher{
		inbox:    p.inbox,
		shutdown: p.shutdown,
		stopped:  p.stopped,
		taskCtx:  &taskCtx,
	}
}

// reporterRefFor resolves the nearest ancestor with a reporter id by walking
// the parent chain, mirroring how cycle detection walks it.
func (p *processor) reporterRefFor(parent *Context) *ports.ReporterRef {
	if p.reporter == nil || parent == nil {
		return nil
	}
	cur := *parent
	for hops := 0; hops <= len(p.parentContexts); hops++ {
		if lookup, ok := p.kinds[cur.Kind]; ok {
			if _, reporterID, hasReporter, found := lookup.meta(cur.ID); found && hasReporter {
				return &ports.ReporterRef{Kind: cur.Kind, ID: reporterID}
			}
		}
		next, ok := p.parentContexts[cur]
		if !ok {
			return nil
		}
		cur = next
	}
	return nil
}
