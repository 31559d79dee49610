package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/den/internal/core/ports/mocks"
	"go.trai.ch/den/internal/engine/dispatch"
	"go.uber.org/mock/gomock"
)

type dispatchMocks struct {
	solver    *mocks.MockCondaSolver
	installer *mocks.MockEnvironmentInstaller
	git       *mocks.MockGitResolver
	backend   *mocks.MockBackend
	store     *mocks.MockBuildCacheStore
}

// setupDispatcher builds a dispatcher with every collaborator mocked. The
// configure hook can adjust the builder (limits, root dir) before Finish.
func setupDispatcher(t *testing.T, configure func(*dispatch.Builder)) (*dispatch.Dispatcher, dispatchMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := dispatchMocks{
		solver:    mocks.NewMockCondaSolver(ctrl),
		installer: mocks.NewMockEnvironmentInstaller(ctrl),
		git:       mocks.NewMockGitResolver(ctrl),
		backend:   mocks.NewMockBackend(ctrl),
		store:     mocks.NewMockBuildCacheStore(ctrl),
	}

	b := dispatch.NewBuilder().
		WithCondaSolver(m.solver).
		WithInstaller(m.installer).
		WithGitResolver(m.git).
		WithBackend(m.backend).
		WithBuildCache(m.store).
		WithRootDir("/ws")
	if configure != nil {
		configure(b)
	}
	return b.Finish(), m
}

func solveSpec(names ...string) *domain.CondaSolveSpec {
	reqs := make([]domain.MatchSpec, len(names))
	for i, n := range names {
		reqs[i] = domain.MatchSpec{Name: n}
	}
	return &domain.CondaSolveSpec{Requirements: reqs, Platform: "linux-64"}
}

func TestSolveConda_Success(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		records := []domain.PackageRecord{{Name: "python", Version: "3.12.1", Build: "0"}}
		m.solver.EXPECT().SolveConda(gomock.Any(), gomock.Any()).Return(records, nil)

		got, err := d.SolveConda(t.Context(), solveSpec("python"))
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})
}

func TestSolveConda_DeduplicatesConcurrentRequests(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		release := make(chan struct{})
		records := []domain.PackageRecord{{Name: "python", Version: "3.12.1"}}
		m.solver.EXPECT().
			SolveConda(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *domain.CondaSolveSpec) ([]domain.PackageRecord, error) {
				<-release
				return records, nil
			}).
			Times(1)

		results := make(chan []domain.PackageRecord, 2)
		for range 2 {
			go func() {
				got, err := d.SolveConda(t.Context(), solveSpec("python"))
				assert.NoError(t, err)
				results <- got
			}()
		}
		synctest.Wait()

		close(release)
		for range 2 {
			assert.Equal(t, records, <-results)
		}
	})
}

func TestSolveConda_ReplaysCachedResult(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		records := []domain.PackageRecord{{Name: "python", Version: "3.12.1"}}
		m.solver.EXPECT().SolveConda(gomock.Any(), gomock.Any()).Return(records, nil).Times(1)

		first, err := d.SolveConda(t.Context(), solveSpec("python"))
		require.NoError(t, err)

		// Identical identity after completion: replayed, not re-solved.
		second, err := d.SolveConda(t.Context(), solveSpec("python"))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestSolveConda_DistinctSpecsSolveSeparately(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		m.solver.EXPECT().
			SolveConda(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, spec *domain.CondaSolveSpec) ([]domain.PackageRecord, error) {
				return []domain.PackageRecord{{Name: spec.Requirements[0].Name}}, nil
			}).
			Times(2)

		python, err := d.SolveConda(t.Context(), solveSpec("python"))
		require.NoError(t, err)
		numpy, err := d.SolveConda(t.Context(), solveSpec("numpy"))
		require.NoError(t, err)
		assert.NotEqual(t, python, numpy)
	})
}

func TestSolveConda_OnlyFirstWaiterSeesRealError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		release := make(chan struct{})
		m.solver.EXPECT().
			SolveConda(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *domain.CondaSolveSpec) ([]domain.PackageRecord, error) {
				<-release
				return nil, domain.ErrNoMatchingPackage
			}).
			Times(1)

		errs := make(chan error, 2)
		for range 2 {
			go func() {
				_, err := d.SolveConda(t.Context(), solveSpec("python"))
				errs <- err
			}()
		}
		synctest.Wait()
		close(release)

		var real, cancelled int
		for range 2 {
			err := <-errs
			require.Error(t, err)
			switch {
			case errors.Is(err, domain.ErrNoMatchingPackage):
				real++
			case dispatch.IsCancelled(err):
				cancelled++
			}
		}
		assert.Equal(t, 1, real, "exactly one waiter receives the actual error")
		assert.Equal(t, 1, cancelled, "the other waiter observes a cancellation")
	})
}

func TestSolveConda_ErroredIdentityCancelsLaterRequests(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		m.solver.EXPECT().
			SolveConda(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrNoMatchingPackage).
			Times(1)

		_, err := d.SolveConda(t.Context(), solveSpec("python"))
		require.ErrorIs(t, err, domain.ErrNoMatchingPackage)

		// The identity is poisoned: later requests are cancelled without
		// re-running the work or re-delivering the original error.
		_, err = d.SolveConda(t.Context(), solveSpec("python"))
		require.ErrorIs(t, err, domain.ErrCancelled)
	})
}

func TestSolveConda_CallerCancellationLeavesSharedWorkRunning(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		release := make(chan struct{})
		records := []domain.PackageRecord{{Name: "python", Version: "3.12.1"}}
		m.solver.EXPECT().
			SolveConda(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *domain.CondaSolveSpec) ([]domain.PackageRecord, error) {
				<-release
				return records, nil
			}).
			Times(1)

		ctx, cancel := context.WithCancel(t.Context())
		impatient := make(chan error, 1)
		go func() {
			_, err := d.SolveConda(ctx, solveSpec("python"))
			impatient <- err
		}()
		synctest.Wait()

		patient := make(chan []domain.PackageRecord, 1)
		go func() {
			got, err := d.SolveConda(t.Context(), solveSpec("python"))
			assert.NoError(t, err)
			patient <- got
		}()
		synctest.Wait()

		// The impatient caller abandons its request; the shared solve is
		// unaffected and still serves the patient caller.
		cancel()
		require.ErrorIs(t, <-impatient, domain.ErrCancelled)

		close(release)
		assert.Equal(t, records, <-patient)
	})
}

func TestSolveConda_ConcurrencyLimitIsFIFO(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, func(b *dispatch.Builder) {
			b.WithLimits(dispatch.Limits{CondaSolves: 2})
		})
		defer d.Close()

		var mu sync.Mutex
		started := []string{}
		blocks := map[string]chan struct{}{
			"a": make(chan struct{}),
			"b": make(chan struct{}),
			"c": make(chan struct{}),
			"d": make(chan struct{}),
		}

		m.solver.EXPECT().
			SolveConda(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, spec *domain.CondaSolveSpec) ([]domain.PackageRecord, error) {
				name := spec.Requirements[0].Name
				mu.Lock()
				started = append(started, name)
				mu.Unlock()
				<-blocks[name]
				return nil, nil
			}).
			Times(4)

		done := make(chan struct{}, 4)
		// Submit in a fixed order so the FIFO assertion is deterministic.
		for _, name := range []string{"a", "b", "c", "d"} {
			go func() {
				_, err := d.SolveConda(t.Context(), solveSpec(name))
				assert.NoError(t, err)
				done <- struct{}{}
			}()
			synctest.Wait()
		}

		mu.Lock()
		assert.Equal(t, []string{"a", "b"}, started, "only the limit may run")
		mu.Unlock()

		close(blocks["a"])
		synctest.Wait()
		mu.Lock()
		assert.Equal(t, []string{"a", "b", "c"}, started, "a free slot starts the oldest queued solve")
		mu.Unlock()

		close(blocks["b"])
		close(blocks["c"])
		close(blocks["d"])
		for range 4 {
			<-done
		}
	})
}

func TestClose_CancelsQueuedAndDrainsInflight(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, func(b *dispatch.Builder) {
			b.WithLimits(dispatch.Limits{CondaSolves: 1})
		})

		release := make(chan struct{})
		records := []domain.PackageRecord{{Name: "python", Version: "3.12.1"}}
		m.solver.EXPECT().
			SolveConda(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *domain.CondaSolveSpec) ([]domain.PackageRecord, error) {
				<-release
				return records, nil
			}).
			Times(1)

		inflight := make(chan []domain.PackageRecord, 1)
		go func() {
			got, err := d.SolveConda(t.Context(), solveSpec("python"))
			assert.NoError(t, err)
			inflight <- got
		}()
		synctest.Wait()

		queued := make(chan error, 1)
		go func() {
			_, err := d.SolveConda(t.Context(), solveSpec("numpy"))
			queued <- err
		}()
		synctest.Wait()

		closed := make(chan struct{})
		go func() {
			d.Close()
			close(closed)
		}()
		synctest.Wait()

		// Queued-but-unstarted work is cancelled immediately; the in-flight
		// solve is allowed to finish and still delivers its result.
		require.ErrorIs(t, <-queued, domain.ErrCancelled)
		close(release)
		assert.Equal(t, records, <-inflight)
		<-closed

		// The dispatcher rejects everything after Close.
		_, err := d.SolveConda(t.Context(), solveSpec("zlib"))
		require.ErrorIs(t, err, domain.ErrCancelled)
	})
}

func TestClose_IsIdempotent(t *testing.T) {
	d, _ := setupDispatcher(t, nil)
	d.Close()
	d.Close()
}

func TestSourceMetadata_DetectsCycle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		spec := &domain.SourceMetadataSpec{
			Package:  "mylib",
			Source:   domain.SourceSpec{Path: "mylib"},
			Platform: "linux-64",
		}

		// The backend asks the dispatcher for the metadata of the very
		// package it is being asked about: a self-referential source dep.
		m.backend.EXPECT().
			GetMetadata(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, inner ports.Dispatcher, _ domain.SourceCheckout, _ domain.Platform, _ []domain.Channel) ([]domain.SourcePackageMetadata, error) {
				_, err := inner.SourceMetadata(ctx, spec)
				return nil, err
			})

		_, err := d.SourceMetadata(t.Context(), spec)
		require.Error(t, err)

		var cycle *domain.CycleError
		require.ErrorAs(t, err, &cycle)
		assert.GreaterOrEqual(t, len(cycle.Chain), 2)
	})
}

func TestSourceBuild_CacheHit(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		record := domain.PackageRecord{Name: "mylib", Version: "1.0.0", Build: "0"}
		m.store.EXPECT().Get(gomock.Any()).Return(&domain.SourceBuildCacheEntry{
			Key:          "k",
			Record:       &record,
			ArtifactPath: "/cache/mylib.conda",
			Fresh:        true,
		}, nil)

		result, err := d.SourceBuild(t.Context(), &domain.SourceBuildSpec{
			Package:  "mylib",
			Source:   domain.SourceSpec{Path: "mylib"},
			Platform: "linux-64",
		})
		require.NoError(t, err)
		assert.True(t, result.CacheHit)
		assert.Equal(t, record, result.Record)
		assert.Equal(t, "/cache/mylib.conda", result.ArtifactPath)
	})
}

func TestSourceBuild_CacheMissBuildsAndRecords(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		m.store.EXPECT().Get(gomock.Any()).Return(nil, nil)
		m.backend.EXPECT().
			GetMetadata(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.SourcePackageMetadata{{Name: "mylib", Version: "1.0.0"}}, nil)

		built := domain.BuiltSource{
			Record:       domain.PackageRecord{Name: "mylib", Version: "1.0.0", Build: "0"},
			ArtifactPath: "/cache/mylib.conda",
		}
		m.backend.EXPECT().
			Build(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ ports.Dispatcher, spec *domain.BackendSourceBuildSpec) (domain.BuiltSource, error) {
				assert.Equal(t, "mylib", spec.Package)
				assert.Equal(t, "/ws/mylib", spec.Checkout.Path)
				return built, nil
			})
		m.store.EXPECT().
			Put(gomock.Any()).
			DoAndReturn(func(entry domain.SourceBuildCacheEntry) error {
				assert.True(t, entry.Fresh)
				assert.Equal(t, built.ArtifactPath, entry.ArtifactPath)
				return nil
			})

		result, err := d.SourceBuild(t.Context(), &domain.SourceBuildSpec{
			Package:  "mylib",
			Source:   domain.SourceSpec{Path: "mylib"},
			Platform: "linux-64",
		})
		require.NoError(t, err)
		assert.False(t, result.CacheHit)
		assert.Equal(t, built.Record, result.Record)
	})
}

func TestSourceMetadata_UnknownPackage(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		m.backend.EXPECT().
			GetMetadata(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.SourcePackageMetadata{{Name: "other", Version: "2.0.0"}}, nil)

		_, err := d.SourceMetadata(t.Context(), &domain.SourceMetadataSpec{
			Package:  "mylib",
			Source:   domain.SourceSpec{Path: "mylib"},
			Platform: "linux-64",
		})
		require.ErrorIs(t, err, domain.ErrPackageNotProvided)
	})
}

func TestCheckoutGit_DeduplicatesByReference(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		ref := domain.GitReference{URL: "https://example.com/repo.git", Rev: "v1"}
		release := make(chan struct{})
		m.git.EXPECT().
			Checkout(gomock.Any(), ref).
			DoAndReturn(func(context.Context, domain.GitReference) (domain.GitCheckout, error) {
				<-release
				return domain.GitCheckout{Reference: ref, Commit: "abc123", Path: "/cache/git/0"}, nil
			}).
			Times(1)

		results := make(chan domain.GitCheckout, 2)
		for range 2 {
			go func() {
				co, err := d.CheckoutGit(t.Context(), ref)
				assert.NoError(t, err)
				results <- co
			}()
		}
		synctest.Wait()
		close(release)

		first, second := <-results, <-results
		assert.Equal(t, first, second)
		assert.Equal(t, "abc123", first.Commit)
	})
}

func TestInstallEnvironment_Passthrough(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, m := setupDispatcher(t, nil)
		defer d.Close()

		spec := &domain.InstallEnvironmentSpec{
			Name:     "default",
			Prefix:   "/ws/.den/envs/default",
			Platform: "linux-64",
			Records:  []domain.PackageRecord{{Name: "python", Version: "3.12.1"}},
		}
		m.installer.EXPECT().
			Install(gomock.Any(), spec).
			Return(domain.InstallEnvironmentResult{Prefix: spec.Prefix, Installed: 1}, nil)

		result, err := d.InstallEnvironment(t.Context(), spec)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Installed)
	})
}

func TestMissingCollaborator(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := dispatch.NewBuilder().Finish()
		defer d.Close()

		_, err := d.SolveConda(t.Context(), solveSpec("python"))
		require.ErrorIs(t, err, dispatch.ErrCollaboratorMissing)
		assert.Contains(t, err.Error(), "conda solver")
	})
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, dispatch.IsCancelled(domain.ErrCancelled))
	assert.True(t, dispatch.IsCancelled(context.Canceled))
	assert.True(t, dispatch.IsCancelled(context.DeadlineExceeded))
	assert.False(t, dispatch.IsCancelled(domain.ErrNoMatchingPackage))
	assert.False(t, dispatch.IsCancelled(nil))
}

func TestDropCancelled(t *testing.T) {
	value, err := dispatch.DropCancelled(42, nil)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, 42, *value)

	value, err = dispatch.DropCancelled(0, domain.ErrCancelled)
	require.NoError(t, err)
	assert.Nil(t, value)

	_, err = dispatch.DropCancelled(0, domain.ErrNoMatchingPackage)
	require.ErrorIs(t, err, domain.ErrNoMatchingPackage)
}
