// Package integration contains end-to-end tests for ofsaav.
//
// These tests build the ofsaav binary and exercise it against fixture
// templates and staging files, verifying exit codes, console output, and
// the JSON report envelope.
package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoRoot returns the ofsaav repository root directory.
func repoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// test/integration/validate_test.go -> repo root
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

// buildBinary compiles ofsaav into a temp directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "ofsaav-test")
	cmd := exec.Command("go", "build", "-o", binary, "./cmd/ofsaav") //nolint:gosec // test helper
	cmd.Dir = repoRoot(t)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed:\n%s", out)
	return binary
}

const branchTemplate = `<Table name="BRANCH" description="Branch reference data">
  <FileFormat delimiter="~" encoding="UTF-8" dateFormat="YYYYMMDD"/>
  <Columns>
    <Column name="V_BRANCH_CODE" dataType="VARCHAR2" length="10" nullable="false" position="1"/>
    <Column name="V_BRANCH_NAME" dataType="VARCHAR2" length="60" position="2"/>
    <Column name="D_OPEN_DATE" dataType="DATE" position="3"/>
  </Columns>
</Table>
`

// writeFixture lays out a templates directory and a staging file and returns
// both paths.
func writeFixture(t *testing.T, records string) (templatesDir, dataFile string) {
	t.Helper()
	root := t.TempDir()
	templatesDir = filepath.Join(root, "templates")
	require.NoError(t, os.MkdirAll(templatesDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "Branch.xml"), []byte(branchTemplate), 0o600))

	dataFile = filepath.Join(root, "Branch_20251015.dat")
	require.NoError(t, os.WriteFile(dataFile, []byte(records), 0o600))
	return templatesDir, dataFile
}

// exitCode extracts the process exit code from an exec error.
func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	require.ErrorAs(t, err, &ee)
	return ee.ExitCode()
}

func TestValidate_CleanFileExitsZero(t *testing.T) {
	binary := buildBinary(t)
	templatesDir, dataFile := writeFixture(t, "BR001~Main Street~20100401\nBR002~Harbour~20150910\n")

	cmd := exec.Command(binary, "validate", dataFile, "--templates", templatesDir, "--no-color") //nolint:gosec // test helper
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "validate failed:\n%s", out)

	assert.Contains(t, string(out), "Total Records:     2")
	assert.Contains(t, string(out), "EXCELLENT")
}

func TestValidate_DirtyFileExitsTwo(t *testing.T) {
	binary := buildBinary(t)
	templatesDir, dataFile := writeFixture(t, "BR001~Main Street~20100401\n~Nameless~not-a-date\n")

	cmd := exec.Command(binary, "validate", dataFile, "--templates", templatesDir, "--no-color") //nolint:gosec // test helper
	out, err := cmd.CombinedOutput()
	assert.Equal(t, 2, exitCode(t, err), "output:\n%s", out)
	assert.Contains(t, string(out), "Rejected Records:  1")
}

func TestValidate_JSONReport(t *testing.T) {
	binary := buildBinary(t)
	templatesDir, dataFile := writeFixture(t, "BR001~Main Street~20100401\n")

	cmd := exec.Command(binary, "validate", dataFile, "--templates", templatesDir, "-f", "json") //nolint:gosec // test helper
	out, err := cmd.Output()
	require.NoError(t, err)

	var envelope struct {
		Summary struct {
			Table        string  `json:"table"`
			TotalRecords int     `json:"total_records"`
			QualityScore float64 `json:"data_quality_score"`
		} `json:"summary"`
		Errors []any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(out, &envelope))
	assert.Equal(t, "BRANCH", envelope.Summary.Table)
	assert.Equal(t, 1, envelope.Summary.TotalRecords)
	assert.Equal(t, 100.0, envelope.Summary.QualityScore)
	assert.Empty(t, envelope.Errors)
}

func TestValidate_BadPathExitsOne(t *testing.T) {
	binary := buildBinary(t)

	cmd := exec.Command(binary, "validate", "/nonexistent/file.dat") //nolint:gosec // test helper
	out, err := cmd.CombinedOutput()
	assert.Equal(t, 1, exitCode(t, err), "output:\n%s", out)
	assert.Contains(t, string(out), "does not exist")
}

func TestValidate_EmptyDirExitsThree(t *testing.T) {
	binary := buildBinary(t)
	templatesDir, _ := writeFixture(t, "BR001~Main Street~20100401\n")

	cmd := exec.Command(binary, "validate", t.TempDir(), "--templates", templatesDir) //nolint:gosec // test helper
	out, err := cmd.CombinedOutput()
	assert.Equal(t, 3, exitCode(t, err), "output:\n%s", out)
}
