package converter

import "go.trai.ch/zerr"

var (
	// ErrEnvironmentNotFound is returned when the requested environment
	// is not part of the pixi lockfile.
	ErrEnvironmentNotFound = zerr.New("environment not found")

	// ErrMissingPipDependency is returned when an environment has pypi
	// packages but no conda package provides pip to install them.
	ErrMissingPipDependency = zerr.New("pypi packages require a conda package named pip")

	// ErrPackageNotFound is returned when a pypi reference has no
	// matching package record.
	ErrPackageNotFound = zerr.New("package record not found")
)
