package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
)

func TestReplay_ReconstruyeBuckets(t *testing.T) {
	entries := []*entity.InventoryLog{
		{ProductID: "p1", Action: entity.LogActionReceive, ToBucket: "available", Quantity: 10},
		{ProductID: "p1", Action: entity.LogActionReserve, FromBucket: "available", ToBucket: "reserved", Quantity: 4},
		{ProductID: "p1", Action: entity.LogActionExport, FromBucket: "reserved", ToBucket: "onRent", Quantity: 4},
		{ProductID: "p1", Action: entity.LogActionImport, FromBucket: "onRent", ToBucket: "dirty", Quantity: 3},
		{ProductID: "p1", Action: entity.LogActionClean, FromBucket: "dirty", ToBucket: "available", Quantity: 1},
		{ProductID: "p1", Action: entity.LogActionRetire, FromBucket: "available", Quantity: 1},
		{ProductID: "p2", Action: entity.LogActionReceive, ToBucket: "available", Quantity: 99},
	}

	got := inventory.Replay("p1", entries)

	assert.Equal(t, 6, got[inventory.Available])
	assert.Equal(t, 0, got[inventory.Reserved])
	assert.Equal(t, 1, got[inventory.OnRent])
	assert.Equal(t, 2, got[inventory.Dirty])
	assert.Equal(t, 0, got[inventory.Broken])
}
