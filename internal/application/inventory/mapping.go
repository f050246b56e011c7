package inventory

import (
	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
)

func toBucketTotals(s *entity.Stock) dto.BucketTotals {
	return dto.BucketTotals{
		Available: s.Available,
		Reserved:  s.Reserved,
		OnRent:    s.OnRent,
		Dirty:     s.Dirty,
		Broken:    s.Broken,
	}
}

func bucketMapToTotals(m map[inventory.Bucket]int) dto.BucketTotals {
	return dto.BucketTotals{
		Available: m[inventory.Available],
		Reserved:  m[inventory.Reserved],
		OnRent:    m[inventory.OnRent],
		Dirty:     m[inventory.Dirty],
		Broken:    m[inventory.Broken],
	}
}

func addTotals(a, b dto.BucketTotals) dto.BucketTotals {
	return dto.BucketTotals{
		Available: a.Available + b.Available,
		Reserved:  a.Reserved + b.Reserved,
		OnRent:    a.OnRent + b.OnRent,
		Dirty:     a.Dirty + b.Dirty,
		Broken:    a.Broken + b.Broken,
	}
}

// ToLogResponse convierte una entrada del log a DTO.
func ToLogResponse(l *entity.InventoryLog) dto.InventoryLogResponse {
	return dto.InventoryLogResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		WarehouseID: l.WarehouseID,
		OrderID:     l.OrderID,
		SerialID:    l.SerialID,
		Action:      l.Action,
		From:        l.FromBucket,
		To:          l.ToBucket,
		Quantity:    l.Quantity,
		Note:        l.Note,
		CreatedAt:   l.CreatedAt,
	}
}

func toSerialResponse(s *entity.DeviceSerial) *dto.SerialResponse {
	return &dto.SerialResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		WarehouseID:  s.WarehouseID,
		SerialNumber: s.SerialNumber,
		Status:       s.Status,
		OrderID:      s.OrderID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
