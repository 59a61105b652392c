// Package errdefs defines the error kinds surfaced by guibox operations.
// Callers match them with errors.Is; sites wrap them with fmt.Errorf and %w
// to attach context.
package errdefs

import "errors"

var (
	// ErrNotInEntrypointMode is returned when entrypoint logic is invoked
	// while the binary is not running as a container entrypoint.
	ErrNotInEntrypointMode = errors.New("not in entrypoint mode")

	// ErrMissingEntrypointArgs is returned when the entrypoint receives no
	// command to hand off to.
	ErrMissingEntrypointArgs = errors.New("missing entrypoint args")

	// ErrCannotResolveExecutable is returned when the path of the running
	// binary cannot be determined.
	ErrCannotResolveExecutable = errors.New("could not resolve current executable")

	// ErrArchiveWrite wraps any failure while writing the build context
	// archive.
	ErrArchiveWrite = errors.New("failed to add file to archive")

	// ErrMissingUser is returned when a uid has no passwd entry.
	ErrMissingUser = errors.New("could not identify user")

	// ErrMissingGroup is returned when a gid has no group entry.
	ErrMissingGroup = errors.New("could not identify group")

	// ErrInvalidMount is returned for a mount spec that is not
	// host:container.
	ErrInvalidMount = errors.New("invalid mount spec")

	// ErrInvalidLocale is returned for a locale that is not of the form
	// xx_YY or xx_YY.Encoding.
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrMissingDirectory is returned when a required host directory
	// cannot be determined.
	ErrMissingDirectory = errors.New("could not identify directory")

	// ErrContainerEngine wraps failures reported by the container engine.
	ErrContainerEngine = errors.New("container engine error")

	// ErrConfigSave is returned when persisting configuration fails.
	ErrConfigSave = errors.New("failed to save config")

	// ErrConfigLoad is returned when reading persisted configuration fails.
	ErrConfigLoad = errors.New("failed to load config")

	// ErrEscalatorNotFound is returned when no privilege escalation binary
	// is available on PATH.
	ErrEscalatorNotFound = errors.New("privilege escalator not found")
)
