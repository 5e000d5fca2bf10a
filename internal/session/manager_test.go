package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_IssueAndValidate(t *testing.T) {
	manager := NewManager("test-secret")

	sessionID, token, err := manager.Issue(42, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, sessionID, claims.ID)
}

func TestManager_ValidateRejectsForeignSignature(t *testing.T) {
	manager := NewManager("test-secret")
	other := NewManager("other-secret")

	_, token, err := other.Issue(42, "alice")
	assert.NoError(t, err)

	_, err = manager.Validate(token)
	assert.Error(t, err)
}

func TestManager_ExtractSessionID(t *testing.T) {
	manager := NewManager("test-secret")

	sessionID, token, err := manager.Issue(42, "alice")
	assert.NoError(t, err)

	got, err := manager.ExtractSessionID(token)
	assert.NoError(t, err)
	assert.Equal(t, sessionID, got)

	_, err = manager.ExtractSessionID("garbage")
	assert.Error(t, err)
}
