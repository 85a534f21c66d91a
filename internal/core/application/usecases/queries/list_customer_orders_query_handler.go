package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderHeaderRow struct {
	ID         uuid.UUID
	Status     string
	Address    string
	CreatedAt  time.Time
	CanceledAt *time.Time
}

type orderLineRow struct {
	OrderID        uuid.UUID
	ItemID         uuid.UUID
	Name           string
	Quantity       int
	UnitPriceCents int64
	UnitWeightOz   int
}

type deliveredRow struct {
	TargetID    uuid.UUID
	DeliveredAt time.Time
}

// ListCustomerOrdersQueryHandler builds order history rows from orders, order_lines
// and audit_records in three queries.
type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

func (h ListCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerOrdersQuery,
) ([]CustomerOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var headers []orderHeaderRow
	if err := db.Raw(`
		SELECT id, status, address, created_at, canceled_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC, id
	`, query.CustomerID().Bytes()).Scan(&headers).Error; err != nil {
		return nil, err
	}

	result := make([]CustomerOrderResponse, 0, len(headers))
	if len(headers) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(headers))
	for _, hdr := range headers {
		ids = append(ids, hdr.ID)
	}

	var lines []orderLineRow
	if err := db.Raw(`
		SELECT order_id, item_id, name, quantity, unit_price_cents, unit_weight_oz
		FROM order_lines
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Scan(&lines).Error; err != nil {
		return nil, err
	}

	var delivered []deliveredRow
	if err := db.Raw(`
		SELECT target_id, MAX(created_at) AS delivered_at
		FROM audit_records
		WHERE action = ? AND target_type = ? AND target_id IN ?
		GROUP BY target_id
	`, string(ports.AuditOrderDelivered), ports.AuditTargetOrder, ids).Scan(&delivered).Error; err != nil {
		return nil, err
	}

	deliveredAt := make(map[uuid.UUID]time.Time, len(delivered))
	for _, d := range delivered {
		deliveredAt[d.TargetID] = d.DeliveredAt
	}

	items := make(map[uuid.UUID][]CustomerOrderItemResponse, len(headers))
	domainLines := make(map[uuid.UUID][]order.Line, len(headers))
	for _, l := range lines {
		itemID, err := kernel.UUIDFromBytes(l.ItemID[:])
		if err != nil {
			return nil, err
		}
		items[l.OrderID] = append(items[l.OrderID], CustomerOrderItemResponse{
			ItemID:         itemID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
			UnitWeightOz:   l.UnitWeightOz,
		})
		line, err := order.NewLine(itemID, l.Name, l.Quantity, l.UnitPriceCents, l.UnitWeightOz)
		if err != nil {
			return nil, err
		}
		domainLines[l.OrderID] = append(domainLines[l.OrderID], line)
	}

	for _, hdr := range headers {
		id, err := kernel.UUIDFromBytes(hdr.ID[:])
		if err != nil {
			return nil, err
		}
		totals := order.ComputeTotals(domainLines[hdr.ID])

		resp := CustomerOrderResponse{
			ID:             id,
			Status:         hdr.Status,
			Address:        hdr.Address,
			Items:          items[hdr.ID],
			ItemsCents:     totals.ItemsCents,
			ShippingCents:  totals.ShippingCents,
			TotalCents:     totals.TotalCents,
			ShippingWaived: totals.ShippingWaived,
			WeightOz:       totals.WeightOz,
			CreatedAt:      hdr.CreatedAt,
			CanceledAt:     hdr.CanceledAt,
		}
		if at, ok := deliveredAt[hdr.ID]; ok && hdr.Status == order.Delivered.String() {
			resp.DeliveredAt = &at
		}
		result = append(result, resp)
	}

	return result, nil
}
