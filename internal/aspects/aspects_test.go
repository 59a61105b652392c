package aspects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guibox/internal/errdefs"
)

func TestParseMount(t *testing.T) {
	m, err := ParseMount("/host/path:/container/path")
	require.NoError(t, err)
	assert.Equal(t, "/host/path", m.HostPath)
	assert.Equal(t, "/container/path", m.ContainerPath)
	assert.False(t, m.ReadOnly)

	args, err := m.RunArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-v", "/host/path:/container/path"}, args)
}

func TestParseMountReadOnly(t *testing.T) {
	m, err := ParseMount("/h:/c:ro")
	require.NoError(t, err)
	assert.True(t, m.ReadOnly)

	args, err := m.RunArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-v", "/h:/c:ro"}, args)
}

func TestParseMountRejectsBadSpecs(t *testing.T) {
	for _, spec := range []string{"", "nocolon", ":/c", "/h:", "/h:/c:rw:extra", "/h:/c:banana"} {
		_, err := ParseMount(spec)
		assert.ErrorIs(t, err, errdefs.ErrInvalidMount, "spec %q", spec)
	}
}

func TestNewLocale(t *testing.T) {
	for _, lang := range []string{"en_US", "en_US.UTF-8", "zh_CN.GB18030"} {
		l, err := NewLocale(lang)
		require.NoError(t, err, "lang %q", lang)
		assert.Equal(t, lang, l.Lang)
	}
	for _, lang := range []string{"", "english", "EN_us", "en-US"} {
		_, err := NewLocale(lang)
		assert.ErrorIs(t, err, errdefs.ErrInvalidLocale, "lang %q", lang)
	}
}

func TestLocaleRunArgs(t *testing.T) {
	l, err := NewLocale("fr_FR.UTF-8")
	require.NoError(t, err)

	args, err := l.RunArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-e", "LANG=fr_FR.UTF-8", "-e", "LC_ALL=fr_FR.UTF-8"}, args)

	snippets := l.DockerfileSnippets()
	require.Len(t, snippets, 1)
	assert.Contains(t, snippets[0].Content, "fr_FR.UTF-8")
}

func TestX11RequiresDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	_, err := X11{}.RunArgs(nil)
	require.Error(t, err)

	t.Setenv("DISPLAY", ":0")
	args, err := X11{}.RunArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-e", "DISPLAY=:0", "-v", "/tmp/.X11-unix:/tmp/.X11-unix"}, args)
}

func TestEnvFileRunArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("B=2\nA=1\n"), 0o644))

	args, err := EnvFile{Path: path}.RunArgs(nil)
	require.NoError(t, err)
	// Keys are sorted so the flag order is stable.
	assert.Equal(t, []string{"-e", "A=1", "-e", "B=2"}, args)
}

func TestEnvFileMissingFile(t *testing.T) {
	_, err := EnvFile{Path: "/does/not/exist.env"}.RunArgs(nil)
	require.Error(t, err)
}

func TestNewPublish(t *testing.T) {
	p, err := NewPublish("8080:80/tcp")
	require.NoError(t, err)

	args, err := p.RunArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-p", "8080:80/tcp"}, args)

	_, err = NewPublish("not-a-port")
	require.Error(t, err)
}

func TestHasSetupSteps(t *testing.T) {
	assert.False(t, HasSetupSteps([]ContainerAspect{X11{}, Shm{}}))
	assert.True(t, HasSetupSteps([]ContainerAspect{X11{}, CurrentUser{UID: "1000"}}))
}

func TestCurrentUserRunArgs(t *testing.T) {
	u := CurrentUser{UID: "1000", GID: "1000", Username: "dev", Group: "dev"}
	args, err := u.RunArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-e", "GUIBOX_UID=1000",
		"-e", "GUIBOX_GID=1000",
		"-e", "GUIBOX_USER=dev",
		"-e", "GUIBOX_GROUP=dev",
	}, args)
}

func TestCurrentUserSetupStepsDropToUser(t *testing.T) {
	t.Setenv("GUIBOX_UID", "")
	t.Setenv("GUIBOX_GID", "")
	t.Setenv("GUIBOX_USER", "")
	t.Setenv("GUIBOX_GROUP", "")

	u := CurrentUser{UID: "1000", GID: "1000", Username: "dev", Group: "dev"}
	steps := u.SetupSteps()
	require.Len(t, steps, 2)
	assert.Empty(t, steps[0].ElevationArgs)
	assert.Equal(t, []string{"-u", "dev"}, steps[1].ElevationArgs)
}

func TestCurrentUserSetupStepsPreferEnvironment(t *testing.T) {
	t.Setenv("GUIBOX_USER", "envuser")
	u := CurrentUser{Username: "structuser"}
	steps := u.SetupSteps()
	require.Len(t, steps, 2)
	assert.Equal(t, []string{"-u", "envuser"}, steps[1].ElevationArgs)
}

func TestProfileMountsPerProfileDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := Profile{App: "app", ProfileName: "work", ContainerPaths: []string{"/data", "/home/user/Downloads"}}
	args, err := p.RunArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-v", filepath.Join(home, ".local", "share", "guibox", "app", "work", "data") + ":/data",
		"-v", filepath.Join(home, ".local", "share", "guibox", "app", "work", "Downloads") + ":/home/user/Downloads",
	}, args)

	// Host-side directories are created on demand.
	info, err := os.Stat(filepath.Join(home, ".local", "share", "guibox", "app", "work", "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestProfileWithoutPathsIsInert(t *testing.T) {
	args, err := Profile{App: "app"}.RunArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, args)
}
