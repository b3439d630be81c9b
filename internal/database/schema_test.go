package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The menu soft-delete fallback relies on the database rejecting a hard
// delete of a referenced menu item. A weakening action on this foreign key
// would silently null out order history instead.
func TestOrderItemsMenuReferenceRestrictsDeletion(t *testing.T) {
	for _, stmt := range schemaStatements {
		if !strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS order_items") {
			continue
		}
		require.Contains(t, stmt, "menu_item_id UUID REFERENCES menu_items(id)")
		require.NotContains(t, stmt, "ON DELETE SET NULL")
		require.NotContains(t, stmt, "menu_items(id) ON DELETE CASCADE")
		return
	}
	t.Fatal("order_items table definition not found")
}
