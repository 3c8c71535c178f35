package config_test

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/mysticnumbers/internal/platform/config"
)

const exitSubprocessEnv = "MYSTIC_NUMBERS_EXIT_SUBPROCESS"

// runExitSubprocess re-runs the named test in a child process, since os.Exit
// cannot be intercepted in-process, and returns its exit code and output.
func runExitSubprocess(t *testing.T, name string) (int, string) {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run=^"+name+"$")
	cmd.Env = append(os.Environ(), exitSubprocessEnv+"=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	return exitErr.ExitCode(), string(out)
}

func TestExitfWritesMessageAndExits(t *testing.T) {
	if os.Getenv(exitSubprocessEnv) == "1" {
		config.Exitf("parse flags: %s", "bad port")
		return
	}

	code, out := runExitSubprocess(t, "TestExitfWritesMessageAndExits")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out, "parse flags: bad port\n") {
		t.Fatalf("output = %q, want exit message", out)
	}
}

func TestExitOnErrorPrefixesCommand(t *testing.T) {
	if os.Getenv(exitSubprocessEnv) == "1" {
		config.ExitOnError("serve calculator", errors.New("listen tcp: address in use"))
		return
	}

	code, out := runExitSubprocess(t, "TestExitOnErrorPrefixesCommand")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out, "serve calculator: listen tcp: address in use\n") {
		t.Fatalf("output = %q, want prefixed error", out)
	}
}

func TestExitOnErrorIgnoresNil(t *testing.T) {
	config.ExitOnError("serve MCP", nil)
}
