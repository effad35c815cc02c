package main

import (
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-gl/cmd/oxygl/commands"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
