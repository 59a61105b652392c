package aspects

import (
	"fmt"
	"os"
)

// X11 passes the host display server through to the container: the X
// socket directory plus the DISPLAY variable.
type X11 struct {
	Base
}

func (X11) Name() string { return "X11" }

func (X11) RunArgs(Config) ([]string, error) {
	display := os.Getenv("DISPLAY")
	if display == "" {
		return nil, fmt.Errorf("X11: DISPLAY must be set")
	}
	return []string{
		"-e", "DISPLAY=" + display,
		"-v", "/tmp/.X11-unix:/tmp/.X11-unix",
	}, nil
}
