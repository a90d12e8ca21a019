package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/tasklists/internal/auth"
)

func TestTokenCmd(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "cli-secret")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--user", "42", "--ttl", "1h"})

	require.NoError(t, root.Execute())

	userID, err := auth.NewIssuer("cli-secret").Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenCmd_RequiresUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"token"})

	assert.Error(t, root.Execute())
}
