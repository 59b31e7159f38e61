package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg := NewMessage("triage", "hello")

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "triage", msg.Source)
	assert.Equal(t, "hello", msg.Content)
	assert.Empty(t, msg.Directive)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	a := NewMessage("w", "x")
	b := NewMessage("w", "x")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("do the thing")
	assert.Equal(t, SourceUser, msg.Source)
}

func TestNewSystemMessage(t *testing.T) {
	msg := NewSystemMessage("worker failed")
	assert.Equal(t, SourceSystem, msg.Source)
}

func TestNewDirectiveMessage(t *testing.T) {
	msg := NewDirectiveMessage("triage", "over to billing", "refund")
	assert.Equal(t, "refund", msg.Directive)
}

func TestMessage_JSON(t *testing.T) {
	msg := NewDirectiveMessage("triage", "over to billing", "refund")

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"directive":"refund"`)

	// Directive is omitted when empty so plain messages stay compact.
	plain, err := json.Marshal(NewMessage("sales", "hi"))
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "directive")
}
