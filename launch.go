package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

// launchInvocation builds the shell invocation for one server run. The
// command line embeds the heap bounds, any extra flags verbatim, the jar
// filename, and the no-GUI flag; the caller sets the working directory to the
// jar's parent, which is why only the basename appears here.
func launchInvocation(cfg *ServerConfig, goos string) (name string, args []string) {
	var b strings.Builder
	fmt.Fprintf(&b, "java -Xms%dM -Xmx%dM", cfg.MemoryMB, cfg.MemoryMB)
	for _, f := range cfg.ExtraFlags {
		b.WriteString(" ")
		b.WriteString(f)
	}
	fmt.Fprintf(&b, " -jar %s nogui", filepath.Base(cfg.JarPath))

	if goos == "windows" {
		return "cmd", []string{"/C", b.String()}
	}
	return "sh", []string{"-c", b.String()}
}
