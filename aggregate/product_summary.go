package aggregate

import "github.com/velamode/orderdesk/models"

// Stock status classifications.
const (
	StatusInStock    = "in_stock"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

// DefaultLowStockThreshold applies when a variant has no stock record.
const DefaultLowStockThreshold = 10

// StockRecord is one row of the product/stock snapshot the summaries
// are computed against.
type StockRecord struct {
	VariantID         uint `json:"variant_id"`
	StockQuantity     int  `json:"stock_quantity"`
	LowStockThreshold int  `json:"low_stock_threshold"`
}

// StockRecords extracts the snapshot rows from catalog variants.
func StockRecords(variants []models.ProductVariant) []StockRecord {
	records := make([]StockRecord, 0, len(variants))
	for _, v := range variants {
		records = append(records, StockRecord{
			VariantID:         v.ID,
			StockQuantity:     v.StockQuantity,
			LowStockThreshold: v.LowStockThreshold,
		})
	}
	return records
}

// ClientShare is one client's contribution to a variant's demand,
// summed across that client's orders.
type ClientShare struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	CompanyName string `json:"company_name"`
	Quantity    int    `json:"quantity"`
}

// ProductSummary rolls up one variant's demand across every order.
type ProductSummary struct {
	VariantID         uint          `json:"variant_id"`
	ProductID         uint          `json:"product_id"`
	ProductName       string        `json:"product_name"`
	VariantName       string        `json:"variant_name"`
	ImageURL          string        `json:"image_url"`
	TotalQuantity     int           `json:"total_quantity"`
	MTOQuantity       int           `json:"mto_quantity"`
	StockQuantity     int           `json:"stock_quantity"`
	LowStockThreshold int           `json:"low_stock_threshold"`
	ClientOrders      []ClientShare `json:"client_orders"`
}

// Remaining is the stock left after non-MTO demand. Make-to-order
// quantities are produced, not drawn from stock, so they never deplete
// it.
func (s ProductSummary) Remaining() int {
	return s.StockQuantity - (s.TotalQuantity - s.MTOQuantity)
}

// Status classifies the variant's stock position against demand.
func (s ProductSummary) Status() string {
	return StockStatus(s.StockQuantity, s.LowStockThreshold, s.TotalQuantity-s.MTOQuantity)
}

// StockStatus classifies stock after subtracting the non-MTO ordered
// quantity: remaining <= 0 is out of stock, remaining within the
// threshold is low stock, anything above is in stock.
func StockStatus(stockQuantity, lowStockThreshold, ordered int) string {
	remaining := stockQuantity - ordered
	switch {
	case remaining <= 0:
		return StatusOutOfStock
	case remaining <= lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// SummarizeByProduct folds an order list and a stock snapshot into one
// summary per ordered variant. It is a pure function: inputs are never
// mutated and every call builds an independent result, so it is safe to
// recompute against a fresh order list at any time. Output order is the
// order variants were first encountered and carries no meaning.
func SummarizeByProduct(orders []models.Order, stock []StockRecord) []ProductSummary {
	summaries := make(map[uint]*ProductSummary)
	var keys []uint

	for _, order := range orders {
		for _, item := range order.OrderItems {
			summary, ok := summaries[item.VariantID]
			if !ok {
				stockQty, threshold := lookupStock(stock, item.VariantID)
				summary = &ProductSummary{
					VariantID:         item.VariantID,
					ProductID:         item.ProductID,
					ProductName:       item.ProductName,
					VariantName:       item.VariantName,
					ImageURL:          item.ImageURL,
					StockQuantity:     stockQty,
					LowStockThreshold: threshold,
				}
				summaries[item.VariantID] = summary
				keys = append(keys, item.VariantID)
			}

			summary.TotalQuantity += item.Quantity
			if item.IsMakeToOrder {
				summary.MTOQuantity += item.Quantity
			}
			addClientShare(summary, order, item.Quantity)
		}
	}

	result := make([]ProductSummary, 0, len(keys))
	for _, key := range keys {
		result = append(result, *summaries[key])
	}
	return result
}

// lookupStock finds the snapshot row for a variant; first match wins.
// Variants without a row default to zero stock and the default
// threshold.
func lookupStock(stock []StockRecord, variantID uint) (int, int) {
	for _, record := range stock {
		if record.VariantID == variantID {
			return record.StockQuantity, record.LowStockThreshold
		}
	}
	return 0, DefaultLowStockThreshold
}

// addClientShare accumulates the item quantity under the order's
// client, appending a new share on first sight. Client display fields
// come from the order's denormalized client snapshot.
func addClientShare(summary *ProductSummary, order models.Order, quantity int) {
	for i := range summary.ClientOrders {
		if summary.ClientOrders[i].ClientID == order.ClientID {
			summary.ClientOrders[i].Quantity += quantity
			return
		}
	}
	summary.ClientOrders = append(summary.ClientOrders, ClientShare{
		ClientID:    order.ClientID,
		ClientName:  order.Client.User.Name,
		CompanyName: order.Client.CompanyName,
		Quantity:    quantity,
	})
}
