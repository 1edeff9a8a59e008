package inventory

import (
	"testing"

	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("creates active item with trimmed name", func(t *testing.T) {
		item, err := NewItem("  Widget  ")
		require.NoError(t, err)
		assert.Equal(t, "Widget", item.Name)
		assert.False(t, item.IsDeleted())
		assert.Zero(t, item.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		item, err := NewItem("   ")
		assert.Nil(t, item)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
	})
}

func TestItem_Rename(t *testing.T) {
	item, err := NewItem("Widget")
	require.NoError(t, err)

	t.Run("changes name", func(t *testing.T) {
		err := item.Rename("Gadget")
		require.NoError(t, err)
		assert.Equal(t, "Gadget", item.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		err := item.Rename("")
		assert.Error(t, err)
		assert.Equal(t, "Gadget", item.Name)
	})
}

func TestItem_MarkDeleted(t *testing.T) {
	item, err := NewItem("Widget")
	require.NoError(t, err)

	t.Run("attaches deletion record", func(t *testing.T) {
		require.NoError(t, item.MarkDeleted(7))
		assert.True(t, item.IsDeleted())
		require.NotNil(t, item.DeletionID)
		assert.Equal(t, int64(7), *item.DeletionID)
	})

	t.Run("rejects double deletion", func(t *testing.T) {
		err := item.MarkDeleted(8)
		assert.ErrorIs(t, err, shared.ErrItemDeleted)
		assert.Equal(t, int64(7), *item.DeletionID)
	})
}

func TestNewDeletion(t *testing.T) {
	t.Run("creates deletion with trimmed comment", func(t *testing.T) {
		deletion, err := NewDeletion("  damaged in transit  ")
		require.NoError(t, err)
		assert.Equal(t, "damaged in transit", deletion.Comment)
		assert.Zero(t, deletion.ID)
	})

	t.Run("rejects empty comment", func(t *testing.T) {
		_, err := NewDeletion("   ")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_COMMENT", domainErr.Code)
	})
}
