package main

import (
	"bytes"
	"testing"
)

func execute(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildRequiresArg(t *testing.T) {
	if _, err := execute("build"); err == nil {
		t.Fatal("expected error for missing argument")
	}
}

func TestRunRequiresArg(t *testing.T) {
	if _, err := execute("run"); err == nil {
		t.Fatal("expected error for missing argument")
	}
}

func TestCheckMissingFile(t *testing.T) {
	if _, err := execute("check", "no-such-file.wat"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := execute("frobnicate"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
