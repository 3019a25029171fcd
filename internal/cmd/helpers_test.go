package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/coe-tools/idremap/internal/testutil"
)

// execute runs the root command with args under a temporary home directory
// and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("IDREMAP_CONFIG", "")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--timestamps=false"}, args...))

	err := root.Execute()
	return out.String(), err
}

func catalogArgs(t *testing.T) []string {
	t.Helper()
	return []string{
		"--old", testutil.FixturePath(t, "catalogs", "old"),
		"--new", testutil.FixturePath(t, "catalogs", "new"),
	}
}

func exitCode(err error) int {
	return ExitCodeFromError(err)
}
