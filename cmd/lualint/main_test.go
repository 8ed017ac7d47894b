package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestReportFatalPlainWhenColorOff(t *testing.T) {
	var buf bytes.Buffer
	reportFatal(&buf, errors.New("boom"), false)

	want := "ERROR: boom\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestReportFatalStyledWhenColorOn(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	reportFatal(&buf, errors.New("boom"), true)

	got := buf.String()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected styled prefix, got %q", got)
	}
	if !strings.Contains(got, "boom") {
		t.Errorf("missing error text in %q", got)
	}
}
