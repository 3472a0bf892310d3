package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionStore_AppendAcrossDefinitions(t *testing.T) {
	store := NewFunctionStore()

	first := store.Begin("f")
	assert.NoError(t, first.Append(NewCommand("echo", "one")))
	first.End()

	second := store.Begin("f")
	assert.NoError(t, second.Append(NewCommand("echo", "two")))
	second.End()

	body, ok := store.Lookup("f")
	assert.True(t, ok)
	assert.Equal(t, []Command{
		NewCommand("echo", "one"),
		NewCommand("echo", "two"),
	}, body)
}

func TestFunctionStore_EmptyDefinition(t *testing.T) {
	store := NewFunctionStore()
	store.Begin("noop").End()

	body, ok := store.Lookup("noop")
	assert.True(t, ok)
	assert.Empty(t, body)
}

func TestFunctionStore_SealedDefinition(t *testing.T) {
	store := NewFunctionStore()

	def := store.Begin("f")
	def.End()
	def.End()

	assert.ErrorIs(t, def.Append(NewCommand("ls")), ErrDefinitionClosed)
	body, _ := store.Lookup("f")
	assert.Empty(t, body)
}

func TestFunctionStore_LookupReturnsCopy(t *testing.T) {
	store := NewFunctionStore()
	store.Define("f", NewCommand("ls"))

	body, _ := store.Lookup("f")
	body[0] = NewCommand("rm", "-rf", "/")

	again, _ := store.Lookup("f")
	assert.Equal(t, []Command{NewCommand("ls")}, again)
}

func TestFunctionStore_Names(t *testing.T) {
	store := NewFunctionStore()
	_, ok := store.Lookup("missing")
	assert.False(t, ok)

	store.Define("b")
	store.Define("a", NewCommand("ls"))
	assert.Equal(t, []string{"a", "b"}, store.Names())
}
