package whydep

import "errors"

// Sentinel errors for the explanation API.
var (
	// ErrUnknownDistribution indicates the named package is not part of the
	// resolution graph.
	ErrUnknownDistribution = errors.New("unknown distribution")

	// ErrNotInstallable indicates the named package is an already-installed
	// placeholder, which has no derivation chain.
	ErrNotInstallable = errors.New("distribution is not installable")
)
