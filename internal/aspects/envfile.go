package aspects

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
)

// EnvFile loads a dotenv file on the host and passes every entry into the
// container as an environment variable.
type EnvFile struct {
	Base
	Path string
}

func (EnvFile) Name() string { return "EnvFile" }

func (e EnvFile) RunArgs(Config) ([]string, error) {
	if e.Path == "" {
		return nil, nil
	}
	env, err := godotenv.Read(e.Path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", e.Path, err)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, "-e", k+"="+env[k])
	}
	return args, nil
}

func (EnvFile) ConfigArgs() []Option {
	return []Option{{Name: "env-file", Usage: "dotenv file whose entries are passed to the container", Multiple: true}}
}
