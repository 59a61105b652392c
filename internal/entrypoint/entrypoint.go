// Package entrypoint implements the dual-identity dispatch: the same
// binary is the host-side CLI and, when its resolved path equals the
// sentinel Path, the container's PID-1 entrypoint. In entrypoint mode it
// runs every aspect's privileged setup steps and then hands off to the
// requested command through the privilege escalator.
package entrypoint

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"guibox/internal/aspects"
	"guibox/internal/errdefs"
	"guibox/pkg/logger"
)

// Path is the sentinel location the running binary is mounted at inside
// the container. Running from this path switches the process into
// entrypoint mode.
const Path = "/usr/local/bin/guibox-entrypoint"

// Resolver resolves the path of the running binary. Injected so tests can
// fake either identity.
type Resolver interface {
	Executable() (string, error)
}

// OSResolver resolves via os.Executable.
type OSResolver struct{}

func (OSResolver) Executable() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errdefs.ErrCannotResolveExecutable, err)
	}
	return path, nil
}

// Escalator locates the privilege escalation binary used for the final
// handoff.
type Escalator interface {
	Resolve() (string, error)
}

// Sudo resolves sudo on PATH.
type Sudo struct{}

func (Sudo) Resolve() (string, error) {
	path, err := exec.LookPath("sudo")
	if err != nil {
		return "", fmt.Errorf("%w: %v", errdefs.ErrEscalatorNotFound, err)
	}
	return path, nil
}

// Dispatcher runs the entrypoint state machine.
type Dispatcher struct {
	Resolver  Resolver
	Escalator Escalator

	// Exec replaces the current process; overridable in tests. argv[0]
	// is the resolved escalator path.
	Exec func(path string, argv []string, env []string) error
}

// NewDispatcher returns a dispatcher wired to the real OS.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Resolver:  OSResolver{},
		Escalator: Sudo{},
		Exec:      syscall.Exec,
	}
}

// InEntrypointMode reports whether the running binary's resolved path is
// the sentinel path.
func (d *Dispatcher) InEntrypointMode() (bool, error) {
	path, err := d.Resolver.Executable()
	if err != nil {
		return false, err
	}
	return path == Path, nil
}

// Run executes the entrypoint transition: every aspect's setup steps in
// list order (a step failure is fatal), then validation that a command
// was supplied, then the exec handoff through the escalator. Setup always
// runs before argument validation.
func (d *Dispatcher) Run(list []aspects.ContainerAspect, args []string) error {
	ok, err := d.InEntrypointMode()
	if err != nil {
		return err
	}
	if !ok {
		return errdefs.ErrNotInEntrypointMode
	}

	var elevation []string
	for _, a := range list {
		for _, step := range a.SetupSteps() {
			logger.Info("entrypoint setup", "aspect", a.Name(), "step", step.Description)
			if err := step.Run(); err != nil {
				return fmt.Errorf("setup step %q: %w", step.Description, err)
			}
			elevation = append(elevation, step.ElevationArgs...)
		}
	}

	if len(args) == 0 {
		return errdefs.ErrMissingEntrypointArgs
	}

	escalator, err := d.Escalator.Resolve()
	if err != nil {
		return err
	}

	argv := make([]string, 0, len(elevation)+len(args)+2)
	argv = append(argv, escalator)
	argv = append(argv, elevation...)
	argv = append(argv, "--")
	argv = append(argv, args...)
	logger.Debug("entrypoint handoff", "argv", argv)
	return d.Exec(escalator, argv, os.Environ())
}
