// Package manager composes aspects into build artifacts and run
// invocations, and exposes the per-application CLI: run, build, config,
// generate-archive and entrypoint.
package manager

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"guibox/internal/archive"
	"guibox/internal/aspects"
	"guibox/internal/config"
	"guibox/internal/engine"
	"guibox/internal/entrypoint"
	"guibox/internal/errdefs"
	"guibox/pkg/logger"
)

var aspectStyle = lipgloss.NewStyle().Faint(true).SetString("»")

// Settings assemble a Manager. Engine, Dispatcher and Stdout default to
// the real Docker engine, the OS dispatcher and os.Stdout.
type Settings struct {
	// Name identifies the application; it namespaces persisted config
	// and profile data directories.
	Name string
	// Tags are the image tags; the first one is canonical.
	Tags []string
	// ContainerPaths are the app's stateful in-container directories,
	// bind-mounted per profile.
	ContainerPaths []string
	// Aspects is the application's capability list, composed in order.
	Aspects []aspects.ContainerAspect
	// Args is the command line executed inside the container.
	Args []string

	Engine     engine.Engine
	Dispatcher *entrypoint.Dispatcher
	Stdout     io.Writer
}

// Manager orchestrates a single application's container lifecycle.
type Manager struct {
	name           string
	tags           []string
	containerPaths []string
	baseAspects    []aspects.ContainerAspect
	args           []string

	engine     engine.Engine
	dispatcher *entrypoint.Dispatcher
	stdout     io.Writer
}

// New builds a Manager from settings.
func New(s Settings) *Manager {
	m := &Manager{
		name:           s.Name,
		tags:           s.Tags,
		containerPaths: s.ContainerPaths,
		baseAspects:    s.Aspects,
		args:           s.Args,
		engine:         s.Engine,
		dispatcher:     s.Dispatcher,
		stdout:         s.Stdout,
	}
	if m.dispatcher == nil {
		m.dispatcher = entrypoint.NewDispatcher()
	}
	if m.stdout == nil {
		m.stdout = os.Stdout
	}
	return m
}

// Image returns the canonical image tag.
func (m *Manager) Image() string {
	return m.tags[0]
}

// Execute decides the process identity once: a binary resolved at the
// entrypoint sentinel path is the container's PID 1 and dispatches
// straight into the entrypoint; anything else is the host-side CLI.
func (m *Manager) Execute() error {
	inContainer, err := m.dispatcher.InEntrypointMode()
	if err != nil {
		return err
	}
	if inContainer {
		return m.dispatcher.Run(m.entrypointAspects(), os.Args[1:])
	}
	return m.newRootCommand().Execute()
}

// ExitCode maps an Execute error to a process exit code, mirroring the
// container's own exit status where one exists.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func (m *Manager) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           m.name,
		Short:         fmt.Sprintf("run %s in an isolated container", m.name),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	root.AddCommand(
		m.newRunCommand(),
		m.newBuildCommand(),
		m.newConfigCommand(),
		m.newGenerateArchiveCommand(),
		m.newEntrypointCommand(),
	)
	return root
}

// declaredOptions merges the config layer's generic options with every
// base aspect's own, first declaration wins.
func (m *Manager) declaredOptions() []aspects.Option {
	opts := config.CLIOptions()
	seen := map[string]bool{}
	for _, o := range opts {
		seen[o.Name] = true
	}
	for _, a := range m.baseAspects {
		for _, o := range a.ConfigArgs() {
			if seen[o.Name] {
				continue
			}
			opts = append(opts, o)
			seen[o.Name] = true
		}
	}
	return opts
}

func registerOptions(cmd *cobra.Command, opts []aspects.Option) {
	flags := cmd.Flags()
	for _, o := range opts {
		if o.Multiple {
			flags.StringArray(o.Name, nil, o.Usage)
		} else {
			flags.String(o.Name, "", o.Usage)
		}
		if o.Required {
			_ = cmd.MarkFlagRequired(o.Name)
		}
	}
}

// capturedConfig collects the declared option values actually supplied on
// this invocation.
func capturedConfig(flags *pflag.FlagSet, opts []aspects.Option) *config.Config {
	cfg := config.New()
	for _, o := range opts {
		if !flags.Changed(o.Name) {
			continue
		}
		if o.Multiple {
			values, _ := flags.GetStringArray(o.Name)
			cfg.Set(o.Name, values)
		} else {
			value, _ := flags.GetString(o.Name)
			cfg.Set(o.Name, []string{value})
		}
	}
	return cfg
}

func multiSet(opts []aspects.Option) map[string]bool {
	multi := map[string]bool{}
	for _, o := range opts {
		if o.Multiple {
			multi[o.Name] = true
		}
	}
	return multi
}

// prepare loads persisted configuration, merges the CLI-supplied values
// over it and returns the fully composed aspect list: the environment
// aspects first, then the application's, then the config-derived ones.
func (m *Manager) prepare(cmd *cobra.Command, opts []aspects.Option) (*config.Config, []aspects.ContainerAspect, error) {
	profile, _ := cmd.Flags().GetString("profile")
	stored, err := config.Load(m.name, profile)
	if err != nil {
		return nil, nil, err
	}
	merged := stored.Merge(capturedConfig(cmd.Flags(), opts), multiSet(opts))
	derived, err := merged.Aspects()
	if err != nil {
		return nil, nil, err
	}

	all := make([]aspects.ContainerAspect, 0, len(m.baseAspects)+len(derived)+2)
	all = append(all,
		aspects.Profile{App: m.name, ProfileName: profile, ContainerPaths: m.containerPaths},
		aspects.Debian{},
	)
	all = append(all, m.baseAspects...)
	all = append(all, derived...)
	return merged, all, nil
}

// entrypointAspects is the composition used inside the container, where
// no persisted configuration exists.
func (m *Manager) entrypointAspects() []aspects.ContainerAspect {
	all := make([]aspects.ContainerAspect, 0, len(m.baseAspects)+2)
	all = append(all,
		aspects.Profile{App: m.name, ContainerPaths: m.containerPaths},
		aspects.Debian{},
	)
	return append(all, m.baseAspects...)
}

func (m *Manager) engineOrInit() (engine.Engine, error) {
	if m.engine != nil {
		return m.engine, nil
	}
	docker, err := engine.NewDocker()
	if err != nil {
		return nil, err
	}
	m.engine = docker
	return m.engine, nil
}

func (m *Manager) newRunCommand() *cobra.Command {
	opts := m.declaredOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the application in a fresh container",
		RunE: func(cmd *cobra.Command, _ []string) error {
			merged, all, err := m.prepare(cmd, opts)
			if err != nil {
				return err
			}

			runArgs := []string{"--rm"}
			if aspects.HasSetupSteps(all) {
				self, err := m.dispatcher.Resolver.Executable()
				if err != nil {
					return err
				}
				runArgs = append(runArgs,
					"-v", self+":"+entrypoint.Path+":ro",
					"--entrypoint", entrypoint.Path,
				)
			}
			for _, a := range all {
				fmt.Fprintln(m.stdout, aspectStyle.Render(a.Name()))
				flags, err := a.RunArgs(merged)
				if err != nil {
					return err
				}
				runArgs = append(runArgs, flags...)
			}
			runArgs = append(runArgs, m.Image())
			runArgs = append(runArgs, m.args...)

			eng, err := m.engineOrInit()
			if err != nil {
				return err
			}
			return eng.Run(cmd.Context(), runArgs)
		},
	}
	cmd.Flags().String("profile", "", "configuration profile")
	registerOptions(cmd, opts)
	return cmd
}

func (m *Manager) newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "build the application's container image",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, all, err := m.prepare(cmd, nil)
			if err != nil {
				return err
			}

			tmp, err := os.CreateTemp("", m.name+"-build-*.tar")
			if err != nil {
				return fmt.Errorf("%w: %v", errdefs.ErrArchiveWrite, err)
			}
			defer os.Remove(tmp.Name())
			defer tmp.Close()

			if err := archive.Write(tmp, all); err != nil {
				return err
			}
			if _, err := tmp.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("%w: %v", errdefs.ErrArchiveWrite, err)
			}

			eng, err := m.engineOrInit()
			if err != nil {
				return err
			}
			color.Blue("Building %s", strings.Join(m.tags, ", "))
			body, err := eng.Build(cmd.Context(), tmp, m.tags)
			if err != nil {
				return err
			}
			defer body.Close()
			return m.streamBuildLog(body)
		},
	}
	cmd.Flags().String("profile", "", "configuration profile")
	return cmd
}

// streamBuildLog prints the engine's build progress as it arrives. Lines
// that are not valid structured log output are dropped.
func (m *Manager) streamBuildLog(body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var msg struct {
			Stream string `json:"stream"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		fmt.Fprint(m.stdout, msg.Stream)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			// An oversized line is just another unusable log line.
			return nil
		}
		return fmt.Errorf("%w: reading build log: %v", errdefs.ErrContainerEngine, err)
	}
	return nil
}

func (m *Manager) newConfigCommand() *cobra.Command {
	opts := m.declaredOptions()
	cmd := &cobra.Command{
		Use:   "config",
		Short: "persist options for later run and build invocations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, _ := cmd.Flags().GetString("profile")
			stored, err := config.Load(m.name, profile)
			if err != nil {
				return err
			}
			merged := stored.Merge(capturedConfig(cmd.Flags(), opts), multiSet(opts))
			return merged.Save(m.name, profile)
		},
	}
	cmd.Flags().String("profile", "", "configuration profile")
	registerOptions(cmd, opts)
	return cmd
}

func (m *Manager) newGenerateArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-archive",
		Short: "write the composed build context to a local tar for inspection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, all, err := m.prepare(cmd, nil)
			if err != nil {
				return err
			}

			out := m.name + ".tar"
			if _, statErr := os.Stat(out); statErr == nil && stdinIsTerminal() {
				overwrite := false
				prompt := &survey.Confirm{Message: fmt.Sprintf("%s exists, overwrite?", out)}
				if err := survey.AskOne(prompt, &overwrite); err != nil {
					return err
				}
				if !overwrite {
					return nil
				}
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", errdefs.ErrArchiveWrite, out, err)
			}
			defer f.Close()
			if err := archive.Write(f, all); err != nil {
				return err
			}
			color.Green("wrote %s", out)
			return nil
		},
	}
	cmd.Flags().String("profile", "", "configuration profile")
	return cmd
}

func (m *Manager) newEntrypointCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "entrypoint [command...]",
		Short:              "run privileged setup and hand off to the given command",
		DisableFlagParsing: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return m.dispatcher.Run(m.entrypointAspects(), args)
		},
	}
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Main is the shared per-application entrypoint: execute, report the
// error, exit with the mirrored status.
func Main(m *Manager) {
	if err := m.Execute(); err != nil {
		logger.Debug("command failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}
