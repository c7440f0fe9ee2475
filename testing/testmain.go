//go:build v5

// Package testing provides utilities for running tests on the brain.
package testing

import (
	"io"
	"os"
	"testing"

	"github.com/vexide/vexide/startup"
)

// TestMain redirects all test output through the serial bridge on port and
// runs the tests. Use it as TestMain in packages that must be tested on the
// brain itself.
func TestMain(m *testing.M, port io.ReadWriter) {
	b := startup.Init(port)
	if err := startup.MountConsole(b); err != nil {
		panic(err)
	}

	// TODO find a way to pass these from the 'go test' command
	os.Args = append(os.Args, "-test.v")
	os.Args = append(os.Args, "-test.bench=.")
	os.Args = append(os.Args, "-test.benchmem")

	code := m.Run()
	b.Stdio.Flush()
	os.Exit(code)
}
