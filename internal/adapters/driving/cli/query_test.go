package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

func TestQueryCmd_Use(t *testing.T) {
	assert.Equal(t, "query [question]", queryCmd.Use)
}

func TestQueryCmd_Short(t *testing.T) {
	assert.Equal(t, "Adjudicate a claim query", queryCmd.Short)
}

func TestQueryCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestQueryCmd_HasFileFlag(t *testing.T) {
	flag := queryCmd.Flags().Lookup("file")
	require.NotNil(t, flag, "file flag should exist")
	assert.Equal(t, "f", flag.Shorthand)
}

func TestQueryCmd_ExecutesWithQuestion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "46M, knee surgery, 3-month policy"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Decision: Approved")
	assert.Contains(t, buf.String(), "Amount: 50000.00")
	assert.Contains(t, buf.String(), "Knee surgery is covered")
	assert.Contains(t, buf.String(), "[c1]")
}

func TestQueryCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "--json", "knee surgery"})
	defer func() {
		rootCmd.SetArgs(nil)
		queryJSON = false // Reset flag
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"decision": "Approved"`)
	assert.Contains(t, buf.String(), `"justification"`)
	assert.Contains(t, buf.String(), `"chunk_id": "c1"`)
}

func TestQueryCmd_FileFlagUsesUpload(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "policy.txt")
	require.NoError(t, os.WriteFile(path, []byte("dental treatment is excluded"), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "--file", path, "dental crown claim"})
	defer func() {
		rootCmd.SetArgs(nil)
		queryFile = "" // Reset flag
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	mock := claimService.(*mockClaimService)
	assert.Equal(t, "dental crown claim", mock.lastQuery)
	assert.Equal(t, []byte("dental treatment is excluded"), mock.lastContent)
	assert.Equal(t, domain.FormatPlainText, mock.lastFormat)
}

func TestQueryCmd_FileNotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query", "--file", filepath.Join(t.TempDir(), "missing.txt"), "claim"})
	defer func() {
		rootCmd.SetArgs(nil)
		queryFile = "" // Reset flag
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestQueryCmd_ServiceNotConfigured(t *testing.T) {
	oldService := claimService
	claimService = nil
	defer func() {
		claimService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query", "knee surgery"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "claim service not configured")
}

func TestQueryCmd_ServiceError(t *testing.T) {
	oldService := claimService
	claimService = &mockClaimService{err: errors.New("knowledge base not loaded")}
	defer func() {
		claimService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query", "knee surgery"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "knowledge base not loaded")
}

func TestQueryCmd_NilAmountOmittedFromText(t *testing.T) {
	oldService := claimService
	claimService = &mockClaimService{
		answer: &domain.StructuredAnswer{
			Decision:      domain.DecisionRejected,
			Justification: "Cosmetic procedures are excluded.",
		},
	}
	defer func() {
		claimService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "rhinoplasty"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Decision: Rejected")
	assert.NotContains(t, buf.String(), "Amount:")
}
