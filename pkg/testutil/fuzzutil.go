package testutil

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
)

const MaxFuzzBytes = 2048

var cwdMu sync.Mutex

// ClampBytes truncates fuzz input to a manageable size.
func ClampBytes(data []byte, max int) []byte {
	if len(data) > max {
		return data[:max]
	}
	return data
}

// RunCommandInDir runs the command in dir with captured stdio.
func RunCommandInDir(t *testing.T, run RunCommand, args []string, input string, dir string) (string, string, int) {
	t.Helper()
	cwdMu.Lock()
	defer cwdMu.Unlock()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(oldDir) }()

	stdio, out, errBuf := CaptureStdio(input)
	code := run(stdio, args)
	return out.String(), errBuf.String(), code
}

// RunSystemCutInDir runs the system cut binary in dir, if one is
// installed. The final return value reports whether cut was found.
func RunSystemCutInDir(t *testing.T, args []string, input string, dir string) (string, string, int, bool) {
	t.Helper()
	cutPath, err := exec.LookPath("cut")
	if err != nil {
		return "", "", 0, false
	}
	cmd := exec.Command(cutPath, args...)
	cmd.Dir = dir
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	exitCode := 0
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		} else {
			t.Fatalf("cut run: %v", err)
		}
	}
	return outBuf.String(), errBuf.String(), exitCode, true
}

// CompareCutOutput checks that our output matches the system cut for an
// invocation whose semantics the two implementations share.
func CompareCutOutput(t *testing.T, ourOut string, ourCode int, cutOut string, cutCode int) {
	t.Helper()
	if ourCode != cutCode {
		t.Fatalf("exit code mismatch: ours=%d cut=%d", ourCode, cutCode)
	}
	if ourOut != cutOut {
		t.Fatalf("stdout mismatch:\nours: %q\ncut:  %q", ourOut, cutOut)
	}
}
