package aspects

import (
	"fmt"
	"os"
)

const pulseSocketDir = "/run/pulse"

// PulseAudio bridges the host audio server into the container by mounting
// the user's pulse socket directory and pointing clients at it.
type PulseAudio struct {
	Base
}

func (PulseAudio) Name() string { return "PulseAudio" }

func (PulseAudio) RunArgs(Config) ([]string, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return nil, fmt.Errorf("PulseAudio: XDG_RUNTIME_DIR must be set")
	}
	return []string{
		"-v", runtimeDir + "/pulse:" + pulseSocketDir,
		"-e", "PULSE_SERVER=unix:" + pulseSocketDir + "/native",
	}, nil
}

func (PulseAudio) DockerfileSnippets() []DockerfileSnippet {
	return []DockerfileSnippet{{
		Order: 70,
		Content: `RUN apt-get update && apt-get install -y --no-install-recommends \
    libpulse0 \
    pulseaudio-utils \
  && rm -rf /var/lib/apt/lists/*`,
	}}
}

func (PulseAudio) ContainerFiles() []ContainerFile {
	return []ContainerFile{{
		Path: "etc/pulse/client.conf",
		Contents: `default-server = unix:` + pulseSocketDir + `/native
autospawn = no
daemon-binary = /bin/true
`,
	}}
}
