package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmarket/internal/core/application/usecases/commands"
	"jobmarket/internal/core/domain/model/kernel"
)

func TestNewAcceptOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewAcceptOrderCommand(id)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	require.NoError(t, cmd.Validate())
}

func TestNewAcceptOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewAcceptOrderCommand(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestAcceptOrderCommand_NotConstructed(t *testing.T) {
	cmd := commands.AcceptOrderCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAcceptOrderCommandIsNotConstructed)
}
