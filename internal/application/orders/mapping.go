package orders

import (
	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

func toOrderResponse(o *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	res := &dto.OrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		StartDate:        dto.FormatDate(o.StartDate),
		EndDate:          dto.FormatDate(o.EndDate),
		ActualReturnDate: o.ActualReturnDate,
		Status:           o.Status,
		TotalAmount:      o.TotalAmount,
		Notes:            o.Notes,
		Items:            make([]dto.OrderItemResponse, 0, len(items)),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, it := range items {
		res.Items = append(res.Items, dto.OrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			WarehouseID:      it.WarehouseID,
			IsExternal:       it.IsExternal,
			ExternalName:     it.ExternalName,
			SupplierID:       it.SupplierID,
			SupplierCost:     it.SupplierCost,
			Quantity:         it.Quantity,
			ExportedQuantity: it.ExportedQuantity,
			ReturnedQuantity: it.ReturnedQuantity,
		})
	}
	return res
}
