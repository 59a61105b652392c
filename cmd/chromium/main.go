// chromium runs the Chromium browser inside an isolated container with
// host display, audio, D-Bus and GPU passthrough.
package main

import (
	"fmt"
	"os"

	"guibox/internal/aspects"
	"guibox/internal/manager"
)

// chromium's own aspect: the browser package and its sandbox needs.
type chromium struct {
	aspects.Base
}

func (chromium) Name() string { return "Chromium" }

func (chromium) RunArgs(aspects.Config) ([]string, error) {
	return []string{"--security-opt", "seccomp=unconfined"}, nil
}

func (chromium) DockerfileSnippets() []aspects.DockerfileSnippet {
	return []aspects.DockerfileSnippet{{
		Order: 50,
		Content: `RUN apt-get update && apt-get install -y --no-install-recommends \
    chromium \
  && rm -rf /var/lib/apt/lists/*`,
	}}
}

func main() {
	currentUser, err := aspects.NewCurrentUser()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	mgr := manager.New(manager.Settings{
		Name: "chromium",
		Tags: []string{"guibox/chromium:latest"},
		ContainerPaths: []string{
			"/data",
			"/home/user/Downloads",
		},
		Aspects: []aspects.ContainerAspect{
			chromium{},
			currentUser,
			aspects.X11{},
			aspects.PulseAudio{},
			aspects.DBus{},
			aspects.Video{},
			aspects.Shm{},
			aspects.NetHost{},
			aspects.SysAdmin{},
		},
		Args: []string{"chromium", "--user-data-dir=/data"},
	})
	manager.Main(mgr)
}
