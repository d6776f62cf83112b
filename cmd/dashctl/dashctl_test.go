package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMintThenDecode(t *testing.T) {
	token, err := execute(t, "", "mint", "--role", "supervisor", "--sub", "42", "--name", "Sam", "--ttl", "1h")
	require.NoError(t, err)
	token = strings.TrimSpace(token)
	require.Len(t, strings.Split(token, "."), 3)

	out, err := execute(t, token+"\n", "decode", "-")
	require.NoError(t, err)

	var got decodedClaims
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "42", got.SubjectID)
	assert.Equal(t, "SUPERVISOR", got.Role)
	assert.Equal(t, "Sam", got.Name)
	assert.Equal(t, "/supervisor", got.Home)
	assert.False(t, got.Expired)
	assert.NotNil(t, got.ExpiresAt)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := execute(t, "", "decode", "not-a-credential")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected three segments")
}

func TestNavForRole(t *testing.T) {
	out, err := execute(t, "", "nav", "--role", "INTERN")
	require.NoError(t, err)
	assert.Contains(t, out, "/intern/evaluation")
	assert.Contains(t, out, "/profile")
	assert.NotContains(t, out, "/admin")

	_, err = execute(t, "", "nav", "--role", "janitor")
	require.Error(t, err)
}
