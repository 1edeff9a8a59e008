package inventory

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Item is a named inventory position. Its count is never stored here; it is
// derived from the ledger rows referencing the item. A non-nil DeletionID
// marks the item as soft-deleted.
type Item struct {
	shared.BaseEntity
	Name       string `gorm:"not null"`
	DeletionID *int64 `gorm:"index"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new active item
func NewItem(name string) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// IsDeleted reports whether the item is soft-deleted
func (i *Item) IsDeleted() bool {
	return i.DeletionID != nil
}

// Rename changes the item name
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	i.Name = name
	i.UpdatedAt = time.Now()
	return nil
}

// MarkDeleted attaches a deletion record to the item
func (i *Item) MarkDeleted(deletionID int64) error {
	if i.IsDeleted() {
		return shared.ErrItemDeleted
	}
	i.DeletionID = &deletionID
	i.UpdatedAt = time.Now()
	return nil
}

// Deletion records why and when an item was soft-deleted. Removing the
// record restores the item; the store nulls the item's reference.
type Deletion struct {
	shared.BaseEntity
	Comment string
}

// TableName returns the table name for GORM
func (Deletion) TableName() string {
	return "deletions"
}

// NewDeletion creates a new deletion record. The comment is mandatory; it is
// the only record of why the item went away.
func NewDeletion(comment string) (*Deletion, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Deletion comment cannot be empty")
	}
	return &Deletion{
		BaseEntity: shared.NewBaseEntity(),
		Comment:    comment,
	}, nil
}

// ItemWithCount is the read model for item listings: the item row joined
// with the sum of its ledger rows.
type ItemWithCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DeletedItemRow is the read model for the deleted-items listing
type DeletedItemRow struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
	DeletionID int64  `json:"deletion_id"`
	Comment    string `json:"deletion_comment"`
}
