package aspects

import (
	"fmt"

	"github.com/docker/go-connections/nat"
)

// NetHost runs the container on the host network namespace.
type NetHost struct {
	Base
}

func (NetHost) Name() string { return "NetHost" }

func (NetHost) RunArgs(Config) ([]string, error) {
	return []string{"--net", "host"}, nil
}

// Network selects an arbitrary network mode, configurable via `--network`.
type Network struct {
	Base
	Mode string
}

func (Network) Name() string { return "Network" }

func (n Network) RunArgs(Config) ([]string, error) {
	if n.Mode == "" {
		return nil, nil
	}
	return []string{"--net", n.Mode}, nil
}

func (Network) ConfigArgs() []Option {
	return []Option{{Name: "network", Usage: "container network mode"}}
}

// Publish maps a host port into the container using the docker `-p`
// syntax (e.g. 8080:80/tcp), validated up front.
type Publish struct {
	Base
	Spec string
}

func (Publish) Name() string { return "Publish" }

// NewPublish validates the port spec before any container is launched.
func NewPublish(spec string) (*Publish, error) {
	if _, err := nat.ParsePortSpec(spec); err != nil {
		return nil, fmt.Errorf("invalid publish spec %q: %w", spec, err)
	}
	return &Publish{Spec: spec}, nil
}

func (p Publish) RunArgs(Config) ([]string, error) {
	if _, err := nat.ParsePortSpec(p.Spec); err != nil {
		return nil, fmt.Errorf("invalid publish spec %q: %w", p.Spec, err)
	}
	return []string{"-p", p.Spec}, nil
}

func (Publish) ConfigArgs() []Option {
	return []Option{{Name: "publish", Usage: "publish a container port (host:container[/proto])", Multiple: true}}
}
