package aspects

import (
	"fmt"
	"os"
)

// DBus passes the host session and system buses through to the container.
type DBus struct {
	Base
}

func (DBus) Name() string { return "DBus" }

func (DBus) RunArgs(Config) ([]string, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return nil, fmt.Errorf("DBus: XDG_RUNTIME_DIR must be set")
	}
	busPath := runtimeDir + "/bus"
	return []string{
		"-v", busPath + ":" + busPath,
		"-e", "DBUS_SESSION_BUS_ADDRESS=unix:path=" + busPath,
		"-v", "/var/run/dbus:/var/run/dbus",
	}, nil
}
