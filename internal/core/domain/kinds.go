package domain

// TaskKind names a category of dispatcher work. Kinds appear in cycle
// diagnostics and reporter events.
type TaskKind string

const (
	KindCondaSolve         TaskKind = "solve-conda"
	KindEnvironmentSolve          TaskKind = "solve-environment"
	KindInstall            TaskKind = "install"
	KindGitCheckout        TaskKind = "git-checkout"
	KindBackendMetadata    TaskKind = "backend-metadata"
	KindSourceMetadata     TaskKind = "source-metadata"
	KindSourceBuild        TaskKind = "source-build"
	KindBackendSourceBuild TaskKind = "backend-source-build"
	KindCacheStatus        TaskKind = "build-cache-status"
)
