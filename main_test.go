package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_Demo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-env", "framework/app/testdata/empty.env"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"- Example 1", "superfunky car: 300 hp", "- Example 2", "Chassis: xyz_2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(stderr.String(), "shutdown:") {
		t.Errorf("unexpected shutdown error on stderr:\n%s", stderr.String())
	}
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-nope"}, &stdout, &stderr); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}
