package aspects

import (
	"fmt"
	"os"
	"path/filepath"

	"guibox/internal/errdefs"
)

// Profile gives each (application, profile) pair its own host-side data
// directories, bind-mounted onto the application's stateful container
// paths. Switching profiles switches the whole mutable state of the app.
type Profile struct {
	Base
	App            string
	ProfileName    string
	ContainerPaths []string
}

func (Profile) Name() string { return "Profile" }

func (p Profile) RunArgs(Config) ([]string, error) {
	if len(p.ContainerPaths) == 0 {
		return nil, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrMissingDirectory, err)
	}
	profile := p.ProfileName
	if profile == "" {
		profile = "default"
	}
	var args []string
	for _, containerPath := range p.ContainerPaths {
		host := filepath.Join(home, ".local", "share", "guibox",
			p.App, profile, filepath.Base(containerPath))
		if err := os.MkdirAll(host, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", errdefs.ErrMissingDirectory, err)
		}
		args = append(args, "-v", host+":"+containerPath)
	}
	return args, nil
}
