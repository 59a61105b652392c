package aspects

import (
	"fmt"
	"strings"

	"guibox/internal/errdefs"
)

// Mount bind-mounts a host path into the container.
type Mount struct {
	Base
	HostPath      string
	ContainerPath string
	ReadOnly      bool
}

func (Mount) Name() string { return "Mount" }

// ParseMount parses a host:container[:ro] spec.
func ParseMount(spec string) (*Mount, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: %q", errdefs.ErrInvalidMount, spec)
	}
	m := &Mount{HostPath: parts[0], ContainerPath: parts[1]}
	if len(parts) == 3 {
		if parts[2] != "ro" {
			return nil, fmt.Errorf("%w: %q", errdefs.ErrInvalidMount, spec)
		}
		m.ReadOnly = true
	}
	return m, nil
}

func (m Mount) RunArgs(Config) ([]string, error) {
	if m.HostPath == "" || m.ContainerPath == "" {
		return nil, fmt.Errorf("%w: %q", errdefs.ErrInvalidMount, m.HostPath+":"+m.ContainerPath)
	}
	spec := m.HostPath + ":" + m.ContainerPath
	if m.ReadOnly {
		spec += ":ro"
	}
	return []string{"-v", spec}, nil
}

func (Mount) ConfigArgs() []Option {
	return []Option{{Name: "mount", Usage: "bind mount (host:container[:ro])", Multiple: true}}
}
