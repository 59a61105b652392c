package aspects

// Timezone sets the container's TZ.
type Timezone struct {
	Base
	Zone string
}

func (Timezone) Name() string { return "Timezone" }

func (t Timezone) RunArgs(Config) ([]string, error) {
	if t.Zone == "" {
		return nil, nil
	}
	return []string{"-e", "TZ=" + t.Zone}, nil
}

func (Timezone) ConfigArgs() []Option {
	return []Option{{Name: "timezone", Usage: "container timezone (e.g. Europe/Paris)"}}
}
