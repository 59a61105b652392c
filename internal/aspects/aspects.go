// Package aspects defines the capability units a container application is
// assembled from. Each aspect contributes to every stage of the container
// lifecycle: runtime flags for `docker run`, Dockerfile snippets and extra
// files for the image build, CLI options for the config layer, and
// privileged setup steps executed by the in-container entrypoint.
//
// Aspects are passive values: nothing happens until the manager invokes a
// lifecycle method, and the manager alone decides composition order.
package aspects

// DockerfileSnippet is a fragment of the image build recipe. Snippets from
// all aspects are merged by ascending Order; ties keep aspect registration
// order.
type DockerfileSnippet struct {
	Order   int
	Content string
}

// ContainerFile is an extra file embedded in the build context.
type ContainerFile struct {
	Path     string
	Contents string
}

// Option describes a CLI-configurable setting an aspect understands.
// Multiple options accumulate values and merge by union with persisted
// configuration; single-valued options are shadowed by CLI values.
type Option struct {
	Name     string
	Usage    string
	Multiple bool
	Required bool
}

// SetupStep is an action run once, with elevated privilege, inside the
// container before the real command starts. ElevationArgs accumulate into
// the privilege escalator invocation used for the final handoff (for
// example "-u <user>" to drop to a freshly created user).
type SetupStep struct {
	Description   string
	ElevationArgs []string
	Run           func() error
}

// Config is the read-only view of merged option values handed to RunArgs,
// so an aspect can consult the settings its own ConfigArgs declared. It is
// satisfied by the config package's record type; a nil Config means no
// values were supplied.
type Config interface {
	Get(name string) []string
	First(name string) (string, bool)
}

// ContainerAspect is the capability contract. Implementations embed Base
// and override only the stages they participate in.
type ContainerAspect interface {
	Name() string
	RunArgs(cfg Config) ([]string, error)
	DockerfileSnippets() []DockerfileSnippet
	ContainerFiles() []ContainerFile
	ConfigArgs() []Option
	SetupSteps() []SetupStep
}

// Base provides no-op defaults for every stage except Name.
type Base struct{}

func (Base) RunArgs(Config) ([]string, error) { return nil, nil }

func (Base) DockerfileSnippets() []DockerfileSnippet { return nil }

func (Base) ContainerFiles() []ContainerFile { return nil }

func (Base) ConfigArgs() []Option { return nil }

func (Base) SetupSteps() []SetupStep { return nil }

// HasSetupSteps reports whether any aspect in the list declares privileged
// setup steps, which forces the entrypoint self-install on run.
func HasSetupSteps(list []ContainerAspect) bool {
	for _, a := range list {
		if len(a.SetupSteps()) > 0 {
			return true
		}
	}
	return false
}
