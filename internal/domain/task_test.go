package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusInProgress, StatusPaused, StatusDone} {
		assert.True(t, s.Valid(), "status %q should be valid", s)
	}

	for _, s := range []TaskStatus{"", "completed", "PENDING", "archived"} {
		assert.False(t, s.Valid(), "status %q should be invalid", s)
	}
}

func TestTaskMembership(t *testing.T) {
	task := &Task{CreatorID: "a1", AssigneeIDs: []string{"u1", "u2"}}

	assert.True(t, task.IsCreator("a1"))
	assert.False(t, task.IsCreator("u1"))

	assert.True(t, task.IsAssignee("u1"))
	assert.True(t, task.IsAssignee("u2"))
	assert.False(t, task.IsAssignee("a1"))
}

func TestAccountSanitized(t *testing.T) {
	account := &Account{ID: "u1", Username: "alice", PasswordHash: "$2a$10$digest", Role: "dev"}

	sanitized := account.Sanitized()
	assert.Empty(t, sanitized.PasswordHash)
	assert.Equal(t, "alice", sanitized.Username)

	// Original is untouched
	assert.Equal(t, "$2a$10$digest", account.PasswordHash)
}
