package dispatch_test

import (
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/den/internal/engine/dispatch"
	"go.uber.org/mock/gomock"
)

// recordingReporter captures the event stream for assertions. Events arrive
// from the dispatcher goroutine while test goroutines read, so it locks.
type recordingReporter struct {
	ports.NoopReporter

	mu      sync.Mutex
	nextID  int64
	events  []string
	reasons map[int64]*ports.ReporterRef
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{reasons: make(map[int64]*ports.ReporterRef)}
}

func (r *recordingReporter) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingReporter) queued(kind string, reason *ports.ReporterRef) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.events = append(r.events, kind+" queued")
	r.reasons[r.nextID] = reason
	return r.nextID
}

func (r *recordingReporter) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recordingReporter) OnStart()    { r.record("start") }
func (r *recordingReporter) OnFinished() { r.record("finished") }
func (r *recordingReporter) OnClear()    { r.record("clear") }

func (r *recordingReporter) OnCondaSolveQueued(reason *ports.ReporterRef, _ string) int64 {
	return r.queued("solve", reason)
}
func (r *recordingReporter) OnCondaSolveStarted(int64)  { r.record("solve started") }
func (r *recordingReporter) OnCondaSolveFinished(int64) { r.record("solve finished") }

func (r *recordingReporter) OnSourceMetadataQueued(reason *ports.ReporterRef, _ string) int64 {
	return r.queued("metadata", reason)
}

func (r *recordingReporter) OnBackendMetadataQueued(reason *ports.ReporterRef, _ string) int64 {
	return r.queued("backend-metadata", reason)
}

func TestReporter_SolveLifecycleEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rep := newRecordingReporter()
		d, m := setupDispatcher(t, func(b *dispatch.Builder) {
			b.WithReporter(rep)
		})

		m.solver.EXPECT().SolveConda(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := d.SolveConda(t.Context(), solveSpec("python"))
		require.NoError(t, err)

		d.ClearReporter(t.Context())
		d.Close()

		assert.Equal(t, []string{
			"start",
			"solve queued",
			"solve started",
			"solve finished",
			"clear",
			"finished",
		}, rep.Events())
	})
}

func TestReporter_NestedTasksCarryReason(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rep := newRecordingReporter()
		d, m := setupDispatcher(t, func(b *dispatch.Builder) {
			b.WithReporter(rep)
		})
		defer d.Close()

		m.backend.EXPECT().
			GetMetadata(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.SourcePackageMetadata{{Name: "mylib", Version: "1.0.0"}}, nil)

		_, err := d.SourceMetadata(t.Context(), &domain.SourceMetadataSpec{
			Package:  "mylib",
			Source:   domain.SourceSpec{Path: "mylib"},
			Platform: "linux-64",
		})
		require.NoError(t, err)

		rep.mu.Lock()
		defer rep.mu.Unlock()

		// The top-level request has no reason; the backend metadata query it
		// spawns is attributed to it.
		require.Len(t, rep.reasons, 2)
		assert.Nil(t, rep.reasons[1])
		require.NotNil(t, rep.reasons[2])
		assert.Equal(t, domain.KindSourceMetadata, rep.reasons[2].Kind)
		assert.Equal(t, int64(1), rep.reasons[2].ID)
	})
}
