package ui

import (
	"os"
	"os/exec"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Info(msg, a)
	// Output:
	// INFO: This is a test: 5
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Warning(msg, a)
	// Output:
	// WARNING: This is a test: 5
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %v"
	a := os.ErrClosed
	Error(msg, a)
	// Output:
	// ERROR: This is a test: file already closed
}

func TestFatalWithoutStacktraceTerminatesProcess(t *testing.T) {
	// GIVEN the test binary re-run so the exit can be observed from outside
	if os.Getenv("THERMD_TEST_FATAL") == "1" {
		FatalWithoutStacktrace("invalid configuration")
		// never reached
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalWithoutStacktraceTerminatesProcess")
	cmd.Env = append(os.Environ(), "THERMD_TEST_FATAL=1")

	// WHEN
	err := cmd.Run()

	// THEN the process exited with code 1, it did not return to the caller
	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}
