package aspects

import (
	"os"
	"path/filepath"
	"sort"
)

// Video exposes GPU render nodes and video capture devices that exist on
// the host. Missing devices are skipped, not an error.
type Video struct {
	Base
}

func (Video) Name() string { return "Video" }

func (Video) RunArgs(Config) ([]string, error) {
	var args []string
	if _, err := os.Stat("/dev/dri"); err == nil {
		args = append(args, "--device", "/dev/dri")
	}
	cameras, _ := filepath.Glob("/dev/video*")
	sort.Strings(cameras)
	for _, dev := range cameras {
		args = append(args, "--device", dev)
	}
	return args, nil
}

// Shm shares the host's /dev/shm, which browsers need for large shared
// memory segments.
type Shm struct {
	Base
}

func (Shm) Name() string { return "Shm" }

func (Shm) RunArgs(Config) ([]string, error) {
	return []string{"-v", "/dev/shm:/dev/shm"}, nil
}
