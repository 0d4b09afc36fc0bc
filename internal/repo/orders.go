package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

// sortColumns is the only set of columns a caller may order by.
var sortColumns = map[string]bool{
	"created_at":   true,
	"total":        true,
	"status":       true,
	"order_number": true,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(
			"id", "order_number", "user_id", "status", "tracking_status",
			"subtotal", "shipping_cost", "courier_insurance", "total", "currency",
			"recipient_name", "recipient_phone", "recipient_email", "recipient_address",
			"recipient_city", "recipient_province", "recipient_district",
			"recipient_postal_code", "recipient_area_id", "shipper",
			"courier_code", "courier_name", "courier_service_code", "courier_service_name",
			"notes", "metadata", "created_at", "updated_at",
		).
		Values(
			o.ID, o.OrderNumber, o.UserID, string(o.Status), nullString(o.TrackingStatus),
			o.Subtotal, o.ShippingCost, o.CourierInsurance, o.Total, o.Currency,
			o.Recipient.Name, o.Recipient.Phone, o.Recipient.Email, o.Recipient.Address,
			o.Recipient.City, o.Recipient.Province, o.Recipient.District,
			o.Recipient.PostalCode, o.Recipient.AreaID, address(o.Shipper),
			o.CourierCode, o.CourierName, o.CourierServiceCode, o.CourierServiceName,
			o.Notes, o.Metadata, o.CreatedAt, o.UpdatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *postgresRepo) CreateOrderItems(ctx context.Context, orderID string, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "product_id", "name", "description", "price",
			"quantity", "subtotal", "weight", "length", "width", "height")

	for _, it := range items {
		q = q.Values(
			orderID,
			nullInt64(it.ProductID),
			it.Name,
			it.Description,
			it.Price,
			it.Quantity,
			it.Subtotal,
			it.Weight,
			it.Length,
			it.Width,
			it.Height,
		)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	return r.getOrder(ctx, id, false)
}

// GetOrderForUpdate locks the order row until the surrounding transaction ends.
func (r *postgresRepo) GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error) {
	return r.getOrder(ctx, id, true)
}

func (r *postgresRepo) getOrder(ctx context.Context, id string, lock bool) (entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}
	query, args := q.MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.itemsByOrderIDs(ctx, []string{id})
	if err != nil {
		return entities.Order{}, err
	}
	return OrderToEntity(order, items[id]), nil
}

// UpdateOrderState overwrites status, tracking state and metadata. Callers
// hold the row lock from GetOrderForUpdate.
func (r *postgresRepo) UpdateOrderState(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Update("orders").
		Set("status", string(o.Status)).
		Set("tracking_status", nullString(o.TrackingStatus)).
		Set("metadata", o.Metadata).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": o.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

// MergeOrderMetadata shallow-merges the non-empty keys of patch into the
// stored metadata without reading it first.
func (r *postgresRepo) MergeOrderMetadata(ctx context.Context, id string, patch entities.Metadata) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	query, args := r.qb.Update("orders").
		Set("metadata", sq.Expr("metadata || ?::jsonb", string(data))).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order metadata: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

func (r *postgresRepo) ListOrders(ctx context.Context, q entities.OrderQuery) ([]entities.Order, int, error) {
	if q.SortColumn == "" {
		q.SortColumn = "created_at"
	}
	if !sortColumns[q.SortColumn] {
		return nil, 0, entities.ErrInvalidSort
	}

	filter := orderFilter(q)
	if q.Status != "" {
		filter = append(filter, sq.Eq{"status": string(q.Status)})
	}

	query, args := r.qb.Select("COUNT(*)").
		From("orders").
		Where(filter).
		MustSql()

	var total int
	if err := r.getContext(ctx, &total, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	if total == 0 {
		return []entities.Order{}, 0, nil
	}

	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}
	sel := r.qb.Select(orderColumns...).
		From("orders").
		Where(filter).
		OrderBy(q.SortColumn+" "+direction, "id "+direction)
	if q.Limit > 0 {
		sel = sel.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		sel = sel.Offset(uint64(q.Offset))
	}
	query, args = sel.MustSql()

	var rows []Order
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to select orders: %w", err)
	}

	var items map[string][]OrderItem
	if q.IncludeItems && len(rows) > 0 {
		ids := make([]string, len(rows))
		for i, o := range rows {
			ids[i] = o.ID
		}
		var err error
		items, err = r.itemsByOrderIDs(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
	}

	orders := make([]entities.Order, 0, len(rows))
	for _, o := range rows {
		orders = append(orders, OrderToEntity(o, items[o.ID]))
	}
	return orders, total, nil
}

// OrderSummary aggregates per status over the same user, period and search
// scope as ListOrders. The status filter and paging do not apply.
func (r *postgresRepo) OrderSummary(ctx context.Context, q entities.OrderQuery) ([]entities.StatusTotal, error) {
	query, args := r.qb.Select("status", "COUNT(*) AS count", "COALESCE(SUM(total), 0) AS total").
		From("orders").
		Where(orderFilter(q)).
		GroupBy("status").
		OrderBy("status").
		MustSql()

	var rows []StatusTotal
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to summarize orders: %w", err)
	}

	totals := make([]entities.StatusTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, entities.StatusTotal{
			Status: entities.OrderStatus(row.Status),
			Count:  row.Count,
			Total:  row.Total,
		})
	}
	return totals, nil
}

// OrdersForTracking returns booked orders the carrier may still move,
// least recently touched first.
func (r *postgresRepo) OrdersForTracking(ctx context.Context, limit int) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"status": []string{
			string(entities.StatusPaid),
			string(entities.StatusProcessing),
			string(entities.StatusShipped),
		}}).
		Where(sq.Expr("metadata -> 'shipping_booking' IS NOT NULL")).
		OrderBy("updated_at ASC").
		Limit(uint64(limit)).
		MustSql()

	var rows []Order
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders for tracking: %w", err)
	}

	orders := make([]entities.Order, 0, len(rows))
	for _, o := range rows {
		orders = append(orders, OrderToEntity(o, nil))
	}
	return orders, nil
}

func (r *postgresRepo) itemsByOrderIDs(ctx context.Context, ids []string) (map[string][]OrderItem, error) {
	query, args := r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "id").
		MustSql()

	var rows []OrderItem
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}

	items := make(map[string][]OrderItem, len(ids))
	for _, it := range rows {
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	return items, nil
}

func orderFilter(q entities.OrderQuery) sq.And {
	filter := sq.And{sq.Eq{"user_id": q.UserID}}
	if q.Since != nil {
		filter = append(filter, sq.GtOrEq{"created_at": *q.Since})
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		filter = append(filter, sq.Or{
			sq.ILike{"order_number": pattern},
			sq.ILike{"recipient_name": pattern},
			sq.ILike{"recipient_email": pattern},
		})
	}
	return filter
}
