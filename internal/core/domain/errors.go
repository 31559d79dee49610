package domain

import "go.trai.ch/zerr"

var (
	// ErrCancelled is returned when an operation was aborted, either because
	// its cancellation fired or because the dispatcher shut down. It is not a
	// domain failure; callers may retry on a fresh dispatcher.
	ErrCancelled = zerr.New("operation cancelled")

	// ErrAlreadySet is returned by a single-assignment cell when a second
	// value is assigned.
	ErrAlreadySet = zerr.New("value already set")

	// ErrNoMatchingPackage is returned by the solver when a requirement
	// cannot be satisfied from the available candidates.
	ErrNoMatchingPackage = zerr.New("no candidate matches requirement")

	// ErrPackageNotProvided is returned when a backend does not provide the
	// requested package for a checkout.
	ErrPackageNotProvided = zerr.New("source does not provide package")

	// ErrManifestNotFound is returned when no workspace manifest exists in
	// the working directory.
	ErrManifestNotFound = zerr.New("workspace manifest not found")

	// ErrUnknownEnvironment is returned when a named environment is not
	// declared in the manifest.
	ErrUnknownEnvironment = zerr.New("unknown environment")

	// ErrUnknownSourceDependency is returned when a build target is not a
	// declared source dependency.
	ErrUnknownSourceDependency = zerr.New("unknown source dependency")
)
