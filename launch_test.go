package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchInvocationUnix(t *testing.T) {
	t.Parallel()

	cfg := &ServerConfig{JarPath: "/srv/minecraft/server.jar", MemoryMB: 2048}
	name, args := launchInvocation(cfg, "linux")

	assert.Equal(t, "sh", name)
	require.Len(t, args, 2)
	assert.Equal(t, "-c", args[0])
	assert.Equal(t, "java -Xms2048M -Xmx2048M -jar server.jar nogui", args[1])
}

func TestLaunchInvocationWindows(t *testing.T) {
	t.Parallel()

	cfg := &ServerConfig{JarPath: `C:\mc\server.jar`, MemoryMB: 1024}
	name, args := launchInvocation(cfg, "windows")

	assert.Equal(t, "cmd", name)
	require.Len(t, args, 2)
	assert.Equal(t, "/C", args[0])
	assert.Contains(t, args[1], "-Xms1024M -Xmx1024M")
	assert.Contains(t, args[1], "nogui")
}

func TestLaunchInvocationExtraFlagsVerbatim(t *testing.T) {
	t.Parallel()

	cfg := &ServerConfig{
		JarPath:    "/srv/minecraft/paper.jar",
		MemoryMB:   4096,
		ExtraFlags: []string{"-XX:+UseG1GC", "-XX:MaxGCPauseMillis=200"},
	}
	_, args := launchInvocation(cfg, "linux")

	assert.Equal(t, "java -Xms4096M -Xmx4096M -XX:+UseG1GC -XX:MaxGCPauseMillis=200 -jar paper.jar nogui", args[1])
}

func TestLaunchInvocationUsesJarBasename(t *testing.T) {
	t.Parallel()

	cfg := &ServerConfig{JarPath: "/deep/nested/path/to/server.jar", MemoryMB: 512}
	_, args := launchInvocation(cfg, "darwin")

	assert.Contains(t, args[1], " -jar server.jar ")
	assert.NotContains(t, args[1], "/deep/nested")
}
