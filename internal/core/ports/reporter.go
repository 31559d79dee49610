package ports

import "go.trai.ch/den/internal/core/domain"

// ReporterRef identifies a previously queued task within the reporter. It is
// passed to queued events as the reason a task exists, which lets reporters
// nest progress output under the task that triggered it.
type ReporterRef struct {
	Kind domain.TaskKind
	ID   int64
}

// Reporter receives progress events from the dispatcher. All methods are
// called from the dispatcher's own goroutine, never concurrently. Queued
// events return an identifier that later started/finished events refer to.
//
// The dispatcher works identically without a reporter; implementations that
// only care about a few kinds should embed NoopReporter.
type Reporter interface {
	// OnStart is called once when the dispatcher starts, OnFinished once
	// when it stops. OnClear asks the reporter to clear any output.
	OnStart()
	OnFinished()
	OnClear()

	OnCondaSolveQueued(reason *ReporterRef, label string) int64
	OnCondaSolveStarted(id int64)
	OnCondaSolveFinished(id int64)

	OnEnvSolveQueued(reason *ReporterRef, label string) int64
	OnEnvSolveStarted(id int64)
	OnEnvSolveFinished(id int64)

	OnInstallQueued(reason *ReporterRef, label string) int64
	OnInstallStarted(id int64)
	OnInstallFinished(id int64)

	OnGitCheckoutQueued(reason *ReporterRef, label string) int64
	OnGitCheckoutStarted(id int64)
	OnGitCheckoutFinished(id int64)

	OnBackendMetadataQueued(reason *ReporterRef, label string) int64
	OnBackendMetadataStarted(id int64)
	OnBackendMetadataFinished(id int64)

	OnSourceMetadataQueued(reason *ReporterRef, label string) int64
	OnSourceMetadataStarted(id int64)
	OnSourceMetadataFinished(id int64)

	OnSourceBuildQueued(reason *ReporterRef, label string) int64
	OnSourceBuildStarted(id int64)
	OnSourceBuildFinished(id int64)

	OnBackendSourceBuildQueued(reason *ReporterRef, label string) int64
	OnBackendSourceBuildStarted(id int64)
	OnBackendSourceBuildFinished(id int64)
}

// NoopReporter implements Reporter with no-ops. Embed it to implement only a
// subset of the events.
type NoopReporter struct{}

var _ Reporter = NoopReporter{}

func (NoopReporter) OnStart()    {}
func (NoopReporter) OnFinished() {}
func (NoopReporter) OnClear()    {}

func (NoopReporter) OnCondaSolveQueued(*ReporterRef, string) int64 { return 0 }
func (NoopReporter) OnCondaSolveStarted(int64)                     {}
func (NoopReporter) OnCondaSolveFinished(int64)                    {}

func (NoopReporter) OnEnvSolveQueued(*ReporterRef, string) int64 { return 0 }
func (NoopReporter) OnEnvSolveStarted(int64)                     {}
func (NoopReporter) OnEnvSolveFinished(int64)                    {}

func (NoopReporter) OnInstallQueued(*ReporterRef, string) int64 { return 0 }
func (NoopReporter) OnInstallStarted(int64)                     {}
func (NoopReporter) OnInstallFinished(int64)                    {}

func (NoopReporter) OnGitCheckoutQueued(*ReporterRef, string) int64 { return 0 }
func (NoopReporter) OnGitCheckoutStarted(int64)                     {}
func (NoopReporter) OnGitCheckoutFinished(int64)                    {}

func (NoopReporter) OnBackendMetadataQueued(*ReporterRef, string) int64 { return 0 }
func (NoopReporter) OnBackendMetadataStarted(int64)                     {}
func (NoopReporter) OnBackendMetadataFinished(int64)                    {}

func (NoopReporter) OnSourceMetadataQueued(*ReporterRef, string) int64 { return 0 }
func (NoopReporter) OnSourceMetadataStarted(int64)                     {}
func (NoopReporter) OnSourceMetadataFinished(int64)                    {}

func (NoopReporter) OnSourceBuildQueued(*ReporterRef, string) int64 { return 0 }
func (NoopReporter) OnSourceBuildStarted(int64)                     {}
func (NoopReporter) OnSourceBuildFinished(int64)                    {}

func (NoopReporter) OnBackendSourceBuildQueued(*ReporterRef, string) int64 { return 0 }
func (NoopReporter) OnBackendSourceBuildStarted(int64)                     {}
func (NoopReporter) OnBackendSourceBuildFinished(int64)                    {}
