package aspects

// CPUShares caps the container's relative CPU weight.
type CPUShares struct {
	Base
	Shares string
}

func (CPUShares) Name() string { return "CPUShares" }

func (c CPUShares) RunArgs(Config) ([]string, error) {
	if c.Shares == "" {
		return nil, nil
	}
	return []string{"--cpu-shares", c.Shares}, nil
}

func (CPUShares) ConfigArgs() []Option {
	return []Option{{Name: "cpu-shares", Usage: "CPU shares (relative weight)"}}
}

// Memory caps the container's memory.
type Memory struct {
	Base
	Limit string
}

func (Memory) Name() string { return "Memory" }

func (m Memory) RunArgs(Config) ([]string, error) {
	if m.Limit == "" {
		return nil, nil
	}
	return []string{"--memory", m.Limit}, nil
}

func (Memory) ConfigArgs() []Option {
	return []Option{{Name: "memory", Usage: "memory limit (e.g. 3072mb)"}}
}
