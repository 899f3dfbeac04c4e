package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sitedeploy/internal/config"
	"sitedeploy/internal/logger"
	"sitedeploy/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"AWS_ID", "AWS_ACCESS_KEY_ID", "AWS_SECRET", "AWS_SECRET_ACCESS_KEY",
		"SITEDEPLOY_PROVIDER", "SITEDEPLOY_BUILD_DIR", "SITEDEPLOY_TIMEOUT",
	} {
		t.Setenv(name, "")
	}
}

type harness struct {
	cfgPath string
	level   *slog.LevelVar
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	isolateEnv(t)
	return &harness{
		cfgPath: filepath.Join(t.TempDir(), "config.yaml"),
		level:   new(slog.LevelVar),
	}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	cmd := newRootCmd(h.level, logger.Discard(), func() (*config.ConfigManager, error) {
		return config.NewConfigManagerAt(h.cfgPath)
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func buildDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestDeployToMemory(t *testing.T) {
	h := newHarness(t)
	dir := buildDir(t, map[string]string{"index.html": "<h1>hi</h1>", "css/site.css": "body{}"})

	out, err := h.run("", "example", "--provider", "memory", "--build-dir", dir)
	require.NoError(t, err)
	require.Contains(t, out, "example.com")
	require.Contains(t, out, "redirect to example.com")
	require.Contains(t, out, "site.css")
	require.Contains(t, out, "index.html")
	require.Contains(t, out, "2 object(s) uploaded to example.com")
}

func TestDeployMissingBuildDirUploadsNothing(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "example", "-p", "memory", "-b", filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	require.Contains(t, out, "nothing uploaded")
}

func TestDeployWithoutCredentialsFails(t *testing.T) {
	h := newHarness(t)
	dir := buildDir(t, map[string]string{"index.html": "<h1>hi</h1>"})

	out, err := h.run("", "example", "-p", "aws", "-b", dir)
	require.ErrorIs(t, err, serrors.ErrAuthentication)
	require.Contains(t, err.Error(), "AWS_ID")
	require.Empty(t, out)
}

func TestDeployRequiresExactlyOneDomain(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("")
	require.Error(t, err)

	_, err = h.run("", "example", "extra")
	require.Error(t, err)
}

func TestDeployRejectsUnknownProvider(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "example", "-p", "azure")
	require.ErrorContains(t, err, "Config.Provider")
}

func TestDebugFlagRaisesLevel(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "example", "-p", "memory", "-b", t.TempDir(), "--debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, h.level.Level())
}

func TestConfigSetGetList(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "config", "set", "AWS.Region", "eu-west-1")
	require.NoError(t, err)
	require.Equal(t, "Configuration set: aws.region = eu-west-1\n", out)

	out, err = h.run("", "config", "get", "aws.region")
	require.NoError(t, err)
	require.Equal(t, "aws.region = eu-west-1\n", out)

	t.Setenv("AWS_SECRET", "s3cr3t")
	out, err = h.run("", "config", "list")
	require.NoError(t, err)
	require.Contains(t, out, "aws.region = eu-west-1")
	require.Contains(t, out, "aws.secret_access_key = ********")
	require.NotContains(t, out, "s3cr3t")
}

func TestConfigSetRejectsSecrets(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "config", "set", "aws.secret_access_key", "s3cr3t")
	require.Error(t, err)
	_, statErr := os.Stat(h.cfgPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestConfigDeleteAsksFirst(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "config", "set", "build_dir", "dist")
	require.NoError(t, err)

	out, err := h.run("n\n", "config", "delete", "build_dir")
	require.NoError(t, err)
	require.Equal(t, "Aborted\n", out)

	out, err = h.run("", "config", "get", "build_dir")
	require.NoError(t, err)
	require.Equal(t, "build_dir = dist\n", out)

	out, err = h.run("", "config", "delete", "build_dir", "--yes")
	require.NoError(t, err)
	require.Equal(t, "Configuration key 'build_dir' deleted\n", out)

	out, err = h.run("", "config", "get", "build_dir")
	require.NoError(t, err)
	require.Equal(t, "build_dir = src\n", out)
}

func TestProvidersCmd(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "providers")
	require.NoError(t, err)
	require.Contains(t, out, "| aws ")
	require.Contains(t, out, "| gcp ")
	require.Contains(t, out, "| memory ")
}

func TestFlattenConfigMap(t *testing.T) {
	got := flattenConfigMap(map[string]any{
		"provider": "aws",
		"aws":      map[string]any{"region": "us-east-1", "use_path_style": false},
	})
	require.Equal(t, map[string]any{
		"provider":           "aws",
		"aws.region":         "us-east-1",
		"aws.use_path_style": false,
	}, got)
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, fmt.Errorf("failed to look up container example.com: %w",
		serrors.With(serrors.ErrPermissionDenied, "access denied")))
	require.Equal(t, "Error (permission denied): failed to look up container example.com: access denied\n", buf.String())

	buf.Reset()
	reportError(&buf, errors.New("accepts 1 arg(s), received 0"))
	require.Equal(t, "Error: accepts 1 arg(s), received 0\n", buf.String())
}
