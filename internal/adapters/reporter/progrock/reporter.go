// Package progrock implements the dispatcher's progress reporter on a
// progrock tape: one vertex per unit of work, nested under the task that
// caused it.
package progrock

import (
	"strconv"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
)

type taskState struct {
	kind   domain.TaskKind
	label  string
	reason *ports.ReporterRef
	vertex *progrock.VertexRecorder
}

// Reporter implements ports.Reporter. The dispatcher calls it from a single
// goroutine, so the internal maps need no locking.
type Reporter struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	nextID int64
	tasks  map[int64]*taskState
}

// New creates a Reporter recording onto a fresh tape.
func New() *Reporter {
	return NewReporter(progrock.NewTape())
}

// NewReporter creates a Reporter recording onto the given writer.
func NewReporter(w progrock.Writer) *Reporter {
	return &Reporter{
		w:     w,
		rec:   progrock.NewRecorder(w),
		tasks: make(map[int64]*taskState),
	}
}

var _ ports.Reporter = (*Reporter)(nil)

// Tape returns the underlying writer, for rendering or inspection.
func (r *Reporter) Tape() progrock.Writer {
	return r.w
}

func (r *Reporter) OnStart() {}

// OnFinished flushes and closes the tape.
func (r *Reporter) OnFinished() {
	if c, ok := r.w.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

func (r *Reporter) OnClear() {}

func (r *Reporter) queued(kind domain.TaskKind, reason *ports.ReporterRef, label string) int64 {
	r.nextID++
	id := r.nextID
	r.tasks[id] = &taskState{kind: kind, label: label, reason: reason}
	return id
}

func (r *Reporter) started(id int64) {
	t, ok := r.tasks[id]
	if !ok {
		return
	}

	// Nest the vertex name under the task that caused this one.
	name := t.label
	if t.reason != nil {
		if parent, ok := r.tasks[t.reason.ID]; ok {
			name = parent.label + " / " + name
		}
	}

	d := digest.FromString(string(t.kind) + ":" + name + ":" + strconv.FormatInt(id, 10))
	t.vertex = r.rec.Vertex(d, name)
}

func (r *Reporter) finished(id int64) {
	t, ok := r.tasks[id]
	if !ok {
		return
	}
	if t.vertex != nil {
		t.vertex.Done(nil)
	}
	delete(r.tasks, id)
}

func (r *Reporter) OnCondaSolveQueued(reason *ports.ReporterRef, label string) int64 {
	return r.queued(domain.KindCondaSolve, reason, label)
}
func (r *Reporter) OnCondaSolveStarted(id int64)  { r.started(id) }
func (r *Reporter) OnCondaSolveFinished(id int64) { r.finished(id) }

func (r *Reporter) OnEnvSolveQueued(reason *ports.ReporterRef, label string) int64 {
	return r.queued(domain.KindEnvironmentSolve, reason, label)
}
func (r *Reporter) OnEnvSolveStarted(id int64)  { r.started(id) }
func (r *Reporter) OnEnvSolveFinished(id int64) { r.finished(id) }

func (r *Reporter) OnInstallQueued(reason *ports.ReporterRef, label string) int64 {
	return r.queued(domain.KindInstall, reason, label)
}
func (r *Reporter) OnInstallStarted(id int64)  { r.started(id) }
func (r *Reporter) OnInstallFinished(id int64) { r.finished(id) }

func (r *Reporter) OnGitCheckoutQueued(reason *ports.ReporterRef, label string) int64 {
	return r.queued(domain.KindGitCheckout, reason, label)
}
func (r *Reporter) OnGitCheckoutStarted(id int64)  { r.started(id) }
func (r *Reporter) OnGitCheckoutFinished(id int64) { r.finished(id) }

func (r *Reporter) OnBackendMetadataQueued(reason *ports.ReporterRef, label string) int64 {
	return r.queued(domain.KindBackendMetadata, reason, label)
}
func (r *Reporter) OnBackendMetadataStarted(id int64)  { r.started(id) }
func (r *Reporter) OnBackendMetadataFinished(id int64) { r.finished(id) }

func (r *Reporter) OnSourceMetadataQueued(reason *ports.ReporterRef, label string) int64 {
	return r.queued(domain.KindSourceMetadata, reason, label)
}
func (r *Reporter) OnSourceMetadataStarted(id int64)  { r.started(id) }
func (r *Reporter) OnSourceMetadataFinished(id int64) { r.finished(id) }

func (r *Reporter) OnSourceBuildQueued(reason *ports.ReporterRef, label string) int64 {
	return r.queued(domain.KindSourceBuild, reason, label)
}
func (r *Reporter) OnSourceBuildStarted(id int64)  { r.started(id) }
func (r *Reporter) OnSourceBuildFinished(id int64) { r.finished(id) }

func (r *Reporter) OnBackendSourceBuildQueued(reason *ports.ReporterRef, label string) int64 {
	return r.queued(domain.KindBackendSourceBuild, reason, label)
}
func (r *Reporter) OnBackendSourceBuildStarted(id int64)  { r.started(id) }
func (r *Reporter) OnBackendSourceBuildFinished(id int64) { r.finished(id) }
