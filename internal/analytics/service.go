// Package analytics computes sales summaries by folding over the full order
// set. Results are recomputed on every call and never persisted; cost grows
// with orders x items-per-order, which is acceptable at current volumes but
// will need pagination or pre-aggregation for large datasets.
package analytics

import (
	"context"
	"sort"

	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// OrderSource supplies the orders to aggregate.
type OrderSource interface {
	FindAllOrders(ctx context.Context) ([]models.Order, error)
}

// ProductSales accumulates per-product totals across all orders.
type ProductSales struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	Image         string  `json:"image,omitempty"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
	OrderCount    int     `json:"orderCount"`
}

// Summary is the full sales report.
type Summary struct {
	TotalSales   float64        `json:"totalSales"`
	TotalOrders  int            `json:"totalOrders"`
	ProductSales []ProductSales `json:"productSales"`
}

type Service struct {
	orders OrderSource
}

func NewService(orders OrderSource) *Service {
	return &Service{orders: orders}
}

// ComputeSalesSummary scans every order and folds per-product quantity,
// revenue and distinct-order counts. Output is sorted by revenue, highest
// first.
func (s *Service) ComputeSalesSummary(ctx context.Context) (*Summary, error) {
	orders, err := s.orders.FindAllOrders(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{TotalOrders: len(orders)}
	byProduct := make(map[string]*ProductSales)

	for _, order := range orders {
		summary.TotalSales += order.Amount

		// A product may appear on several lines of one order (e.g. two
		// sizes); it still counts as one order for that product.
		seen := make(map[string]bool)
		for _, item := range order.Items {
			ps, ok := byProduct[item.ProductID]
			if !ok {
				ps = &ProductSales{
					ProductID:   item.ProductID,
					ProductName: item.Name,
					Image:       item.Image,
				}
				byProduct[item.ProductID] = ps
			}
			ps.TotalQuantity += item.Quantity
			ps.TotalRevenue += item.Price * float64(item.Quantity)
			if !seen[item.ProductID] {
				ps.OrderCount++
				seen[item.ProductID] = true
			}
		}
	}

	summary.ProductSales = make([]ProductSales, 0, len(byProduct))
	for _, ps := range byProduct {
		summary.ProductSales = append(summary.ProductSales, *ps)
	}
	sort.Slice(summary.ProductSales, func(i, j int) bool {
		return summary.ProductSales[i].TotalRevenue > summary.ProductSales[j].TotalRevenue
	})

	return summary, nil
}
