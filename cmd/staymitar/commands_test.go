package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kingrea/staymitar/internal/config"
)

func newProject(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvDataFile, "")
	os.Unsetenv(config.EnvDataFile)
	t.Setenv(config.EnvReceiptsDir, "")
	os.Unsetenv(config.EnvReceiptsDir)
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	require.Equal(t, exitOK, run([]string{"init"}, dir, &out, &errOut), errOut.String())
	return dir
}

func runCmd(dir string, args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := run(args, dir, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCheckInCheckoutRoundTrip(t *testing.T) {
	dir := newProject(t)

	code, out, errOut := runCmd(dir, "checkin", "-name", "Alice", "-address", "12 Lake Road",
		"-mobile", "9876543210", "-days", "3", "-room-class", "1", "-payment", "2", "-receipt")
	require.Equal(t, exitOK, code, errOut)
	require.Contains(t, out, "Room No. 1 allocated to ALICE")
	require.Contains(t, out, "Total bill: Rs. 5400.00")
	require.Contains(t, out, "Receipt RCP-")

	pdfs, err := filepath.Glob(filepath.Join(dir, config.StayMitarDir, "receipts", "RCP-*.pdf"))
	require.NoError(t, err)
	require.Len(t, pdfs, 1)

	code, out, _ = runCmd(dir, "info", "1")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "Room No.   : 1 (Deluxe)")

	code, out, _ = runCmd(dir, "list")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "ALICE")

	code, out, _ = runCmd(dir, "checkout", "1")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "Thank you ALICE")

	code, _, errOut = runCmd(dir, "checkout", "1")
	require.Equal(t, exitError, code)
	require.Contains(t, errOut, "no guest found in room 1")
}

func TestCheckInValidationFails(t *testing.T) {
	dir := newProject(t)
	code, _, errOut := runCmd(dir, "checkin", "-name", "Al1ce", "-address", "x",
		"-mobile", "9876543210", "-days", "1", "-room-class", "1", "-payment", "1")
	require.Equal(t, exitError, code)
	require.Contains(t, errOut, "invalid name")
}

func TestUsageErrors(t *testing.T) {
	dir := newProject(t)
	tests := [][]string{
		{},
		{"bogus"},
		{"checkout"},
		{"checkout", "abc"},
		{"info", "1", "2"},
		{"list", "extra"},
		{"checkin", "-unknown"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			code, _, _ := runCmd(dir, args...)
			require.Equal(t, exitUsage, code)
		})
	}
}

func TestListEmpty(t *testing.T) {
	dir := newProject(t)
	code, out, _ := runCmd(dir, "list")
	require.Equal(t, exitOK, code)
	require.Equal(t, "No guests checked in.\n", out)
}
