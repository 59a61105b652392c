package aspects

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"

	"guibox/internal/errdefs"
)

// Env vars carrying the host identity into the container, where the
// entrypoint re-reads them to create a matching user.
const (
	envUID   = "GUIBOX_UID"
	envGID   = "GUIBOX_GID"
	envUser  = "GUIBOX_USER"
	envGroup = "GUIBOX_GROUP"
)

// CurrentUser makes the containerized process run as a user matching the
// host uid/gid, so files written to bind mounts stay owned by the invoking
// user. The user is created inside the container by privileged setup
// steps at entrypoint time; the final handoff drops to it.
type CurrentUser struct {
	Base
	UID      string
	GID      string
	Username string
	Group    string
}

// NewCurrentUser resolves the invoking host user and group.
func NewCurrentUser() (*CurrentUser, error) {
	u, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrMissingUser, err)
	}
	g, err := user.LookupGroupId(u.Gid)
	if err != nil {
		return nil, fmt.Errorf("%w with gid %q: %v", errdefs.ErrMissingGroup, u.Gid, err)
	}
	return &CurrentUser{UID: u.Uid, GID: u.Gid, Username: u.Username, Group: g.Name}, nil
}

func (CurrentUser) Name() string { return "CurrentUser" }

func (c CurrentUser) RunArgs(Config) ([]string, error) {
	return []string{
		"-e", envUID + "=" + c.UID,
		"-e", envGID + "=" + c.GID,
		"-e", envUser + "=" + c.Username,
		"-e", envGroup + "=" + c.Group,
	}, nil
}

func (CurrentUser) DockerfileSnippets() []DockerfileSnippet {
	return []DockerfileSnippet{{
		Order: 90,
		Content: `RUN apt-get update && apt-get install -y --no-install-recommends \
    sudo \
  && rm -rf /var/lib/apt/lists/*`,
	}}
}

// SetupSteps reads the identity from the environment when running inside
// the container (the struct fields only reflect the host-side lookup).
func (c CurrentUser) SetupSteps() []SetupStep {
	uid := envOr(envUID, c.UID)
	gid := envOr(envGID, c.GID)
	username := envOr(envUser, c.Username)
	group := envOr(envGroup, c.Group)

	return []SetupStep{
		{
			Description: "create group " + group,
			Run: func() error {
				return runSetupCommand("groupadd", "-f", "-g", gid, group)
			},
		},
		{
			Description:   "create user " + username,
			ElevationArgs: []string{"-u", username},
			Run: func() error {
				return runSetupCommand("useradd",
					"-u", uid, "-g", gid, "-m", "-s", "/bin/bash", username)
			},
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runSetupCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
