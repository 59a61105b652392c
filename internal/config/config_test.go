package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guibox/internal/aspects"
	"guibox/internal/errdefs"
)

func TestMergeCLIValueWins(t *testing.T) {
	stored := New()
	stored.Set("locale", []string{"de_DE"})
	cli := New()
	cli.Set("locale", []string{"en_US"})

	merged := stored.Merge(cli, nil)
	assert.Equal(t, []string{"en_US"}, merged.Get("locale"))
}

func TestMergeKeepsStoredWhenCLIAbsent(t *testing.T) {
	stored := New()
	stored.Set("locale", []string{"de_DE"})

	merged := stored.Merge(New(), nil)
	assert.Equal(t, []string{"de_DE"}, merged.Get("locale"))
}

func TestMergeAppendOnlyUnion(t *testing.T) {
	stored := New()
	stored.Set("mount", []string{"/a:/a", "/b:/b"})
	cli := New()
	cli.Set("mount", []string{"/b:/b", "/c:/c"})

	merged := stored.Merge(cli, map[string]bool{"mount": true})
	assert.Equal(t, []string{"/a:/a", "/b:/b", "/c:/c"}, merged.Get("mount"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := New()
	cfg.Set("locale", []string{"en_US"})
	cfg.Set("mount", []string{"/tmp/a:/data"})
	require.NoError(t, cfg.Save("testapp", ""))

	loaded, err := Load("testapp", "")
	require.NoError(t, err)
	assert.Equal(t, cfg.Options, loaded.Options)
}

func TestSaveLoadWithProfile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	cfg := New()
	cfg.Set("memory", []string{"2048mb"})
	require.NoError(t, cfg.Save("testapp", "work"))

	_, err := os.Stat(filepath.Join(base, "guibox", "testapp", "profiles", "work", "config.yaml"))
	require.NoError(t, err)

	// The profile record must not leak into the default one.
	plain, err := Load("testapp", "")
	require.NoError(t, err)
	assert.Empty(t, plain.Get("memory"))

	scoped, err := Load("testapp", "work")
	require.NoError(t, err)
	assert.Equal(t, []string{"2048mb"}, scoped.Get("memory"))
}

func TestLoadMissingRecordIsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("never-configured", "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Options)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, "guibox", "broken")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{::"), 0o644))

	_, err := Load("broken", "")
	require.ErrorIs(t, err, errdefs.ErrConfigLoad)
}

func TestAspectsDerivation(t *testing.T) {
	cfg := New()
	cfg.Set("mount", []string{"/host:/container"})
	cfg.Set("locale", []string{"en_US.UTF-8"})
	cfg.Set("memory", []string{"3072mb"})

	derived, err := cfg.Aspects()
	require.NoError(t, err)
	require.Len(t, derived, 3)

	assert.IsType(t, aspects.Mount{}, derived[0])
	assert.IsType(t, aspects.Locale{}, derived[1])
	assert.IsType(t, aspects.Memory{}, derived[2])
}

func TestAspectsDerivationRejectsInvalidValues(t *testing.T) {
	cfg := New()
	cfg.Set("locale", []string{"not-a-locale"})
	_, err := cfg.Aspects()
	require.ErrorIs(t, err, errdefs.ErrInvalidLocale)

	cfg = New()
	cfg.Set("mount", []string{"nocolon"})
	_, err = cfg.Aspects()
	require.ErrorIs(t, err, errdefs.ErrInvalidMount)
}

func TestCLIOptionsDeclareAppendOnlyOnes(t *testing.T) {
	multi := map[string]bool{}
	for _, o := range CLIOptions() {
		multi[o.Name] = o.Multiple
	}
	assert.True(t, multi["mount"])
	assert.True(t, multi["env-file"])
	assert.True(t, multi["publish"])
	assert.False(t, multi["locale"])
	assert.False(t, multi["timezone"])
}
