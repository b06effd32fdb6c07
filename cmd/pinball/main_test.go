package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zxhio/pinball/internal/errcode"
	"github.com/zxhio/pinball/internal/service"
	"github.com/zxhio/pinball/pkg/netutil"
)

const testConfig = `
[[profile]]
name = "latency"

  [[profile.network_interface]]
  name = "eth0"
    [profile.network_interface.queues]
    combined = 2
    [profile.network_interface.irqs]
    "40" = "0-1"

  [[profile.network_interface]]
  name = "eth1"
    [profile.network_interface.irqs]
    "41" = "2"
`

type testEnv struct {
	configPath string
	procPath   string
}

func newTestEnv(t *testing.T, irqs ...string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		configPath: filepath.Join(dir, "pinball.toml"),
		procPath:   filepath.Join(dir, "proc"),
	}
	require.NoError(t, os.WriteFile(env.configPath, []byte(testConfig), 0644))
	for _, irq := range irqs {
		irqDir := filepath.Join(env.procPath, "irq", irq)
		require.NoError(t, os.MkdirAll(irqDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(irqDir, "smp_affinity_list"), []byte("0-63\n"), 0644))
	}
	return env
}

func (e testEnv) opts(t *testing.T, profile, ethtool string, dryRun bool) *runOpts {
	return &runOpts{
		configPath: e.configPath,
		profile:    profile,
		logLevel:   newLogLevel(),
		dryRun:     dryRun,
		ethtool:    ethtool,
		procPath:   e.procPath,
		sysNet:     t.TempDir(),
	}
}

func lookPath(t *testing.T, name string) string {
	t.Helper()
	p, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not found", name)
	}
	return p
}

func TestRunProfileNotFound(t *testing.T) {
	env := newTestEnv(t)
	var out bytes.Buffer

	err := run(context.Background(), env.opts(t, "throughput", "/nonexistent", false), &out)
	require.Error(t, err)
	assert.Equal(t, errcode.CodeNotExist, errcode.CodeOf(err))
	assert.Contains(t, err.Error(), "throughput")
	assert.Contains(t, err.Error(), env.configPath)
	assert.Empty(t, out.String())
}

func TestRunConfigErrors(t *testing.T) {
	env := newTestEnv(t)
	o := env.opts(t, "latency", "/nonexistent", false)
	o.configPath = filepath.Join(t.TempDir(), "missing.toml")

	err := run(context.Background(), o, &bytes.Buffer{})
	assert.Equal(t, errcode.CodeConfig, errcode.CodeOf(err))

	require.NoError(t, os.WriteFile(env.configPath, []byte("[[profile]\n"), 0644))
	err = run(context.Background(), env.opts(t, "latency", "/nonexistent", false), &bytes.Buffer{})
	assert.Equal(t, errcode.CodeConfig, errcode.CodeOf(err))
}

func TestRunDryRun(t *testing.T) {
	env := newTestEnv(t, "40", "41")
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), env.opts(t, "latency", "/nonexistent", true), &out))
	assert.Contains(t, out.String(), "eth0")
	assert.Contains(t, out.String(), "eth1")
	assert.Contains(t, out.String(), "configured")

	data, err := os.ReadFile(filepath.Join(env.procPath, "irq", "40", "smp_affinity_list"))
	require.NoError(t, err)
	assert.Equal(t, "0-63\n", string(data))
}

func TestRunApply(t *testing.T) {
	env := newTestEnv(t, "40", "41")
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), env.opts(t, "latency", lookPath(t, "true"), false), &out))

	for irq, want := range map[string]string{"40": "0-1", "41": "2"} {
		data, err := os.ReadFile(filepath.Join(env.procPath, "irq", irq, "smp_affinity_list"))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestRunQueueToolFailure(t *testing.T) {
	env := newTestEnv(t, "40", "41")
	var out bytes.Buffer

	err := run(context.Background(), env.opts(t, "latency", lookPath(t, "false"), false), &out)
	assert.Equal(t, errcode.CodeExec, errcode.CodeOf(err))
	assert.Contains(t, out.String(), "failed")
	assert.Contains(t, out.String(), "skipped")
}

func TestRunAffinityExhausted(t *testing.T) {
	// irq 40 has no proc entry: eth0 fails after its retries, eth1 is skipped.
	env := newTestEnv(t, "41")
	var out bytes.Buffer

	err := run(context.Background(), env.opts(t, "latency", lookPath(t, "true"), false), &out)
	assert.Equal(t, errcode.CodeAffinity, errcode.CodeOf(err))
	assert.Contains(t, err.Error(), "irq: 40")
	assert.Contains(t, err.Error(), "0-1")
	assert.Contains(t, out.String(), "skipped")

	data, err := os.ReadFile(filepath.Join(env.procPath, "irq", "41", "smp_affinity_list"))
	require.NoError(t, err)
	assert.Equal(t, "0-63\n", string(data))
}

func TestLogLevel(t *testing.T) {
	l := newLogLevel()
	assert.Equal(t, "info", l.String())
	assert.Equal(t, "level", l.Type())

	require.NoError(t, l.Set("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.Level(*l))
	assert.Error(t, l.Set("loud"))
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetOutput(os.Stderr)

	require.NoError(t, setupLogging(&runOpts{logLevel: newLogLevel(), verbose: true}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	lvl := newLogLevel()
	require.NoError(t, lvl.Set("trace"))
	require.NoError(t, setupLogging(&runOpts{logLevel: lvl, verbose: true}))
	assert.Equal(t, logrus.TraceLevel, logrus.GetLevel())

	logFile := filepath.Join(t.TempDir(), "pinball.log")
	require.NoError(t, setupLogging(&runOpts{logLevel: newLogLevel(), logFile: logFile}))
	logrus.Info("to file")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestRootArgs(t *testing.T) {
	assert.Error(t, rootCmd.Args(rootCmd, []string{"only-config"}))
	assert.Error(t, rootCmd.Args(rootCmd, []string{"a", "b", "c"}))
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"a", "b"}))
}

func TestRootFlags(t *testing.T) {
	flags := rootCmd.Flags()
	require.NoError(t, flags.Parse([]string{"--sys-net", "/tmp/net", "--proc", "/tmp/proc", "--ethtool", "/bin/true"}))
	defer func() {
		opts.sysNet, opts.procPath, opts.ethtool = netutil.SysClassNetPath, service.DefaultProcPath, service.DefaultEthtoolPath
	}()

	assert.Equal(t, "/tmp/net", opts.sysNet)
	assert.Equal(t, "/tmp/proc", opts.procPath)
	assert.Equal(t, "/bin/true", opts.ethtool)
}
