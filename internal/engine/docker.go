package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"

	"guibox/internal/errdefs"
	"guibox/pkg/logger"
)

// Docker talks to the local Docker daemon over the SDK for builds and
// shells out to the docker CLI for runs, so the containerized GUI app
// inherits the terminal and the exit code mirrors `docker run`.
type Docker struct {
	cli *client.Client
}

// NewDocker initializes the SDK client from the environment.
func NewDocker() (*Docker, error) {
	cli, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrContainerEngine, err)
	}
	return &Docker{cli: cli}, nil
}

func (d *Docker) Build(ctx context.Context, buildContext io.Reader, tags []string) (io.ReadCloser, error) {
	logger.Debug("submitting image build", "tags", tags)
	resp, err := d.cli.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:       tags,
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrContainerEngine, err)
	}
	return resp.Body, nil
}

func (d *Docker) Run(ctx context.Context, args []string) error {
	dockerBin, err := exec.LookPath("docker")
	if err != nil {
		return fmt.Errorf("%w: docker binary not on PATH: %v", errdefs.ErrContainerEngine, err)
	}
	cmd := exec.CommandContext(ctx, dockerBin, append([]string{"run"}, args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	logger.Debug("running container", "args", args)
	return cmd.Run()
}
