package aggregate

import "github.com/velamode/orderdesk/models"

// ClientItem is one ordered line in a client's flattened item list.
type ClientItem struct {
	OrderID       uint   `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	VariantID     uint   `json:"variant_id"`
	ProductName   string `json:"product_name"`
	VariantName   string `json:"variant_name"`
	Quantity      int    `json:"quantity"`
	IsMakeToOrder bool   `json:"is_make_to_order"`
}

// ClientSummary groups one client's orders with a flattened item list.
type ClientSummary struct {
	ClientID    uint           `json:"client_id"`
	ClientName  string         `json:"client_name"`
	CompanyName string         `json:"company_name"`
	Orders      []models.Order `json:"orders"`
	Items       []ClientItem   `json:"items"`
	TotalItems  int            `json:"total_items"`
}

// SummarizeByClient groups the order list by client. The first-seen
// order supplies the display name and company; TotalItems sums item
// quantities across all of the client's orders, MTO or not. Pure, like
// SummarizeByProduct.
func SummarizeByClient(orders []models.Order) []ClientSummary {
	summaries := make(map[uint]*ClientSummary)
	var keys []uint

	for _, order := range orders {
		summary, ok := summaries[order.ClientID]
		if !ok {
			summary = &ClientSummary{
				ClientID:    order.ClientID,
				ClientName:  order.Client.User.Name,
				CompanyName: order.Client.CompanyName,
			}
			summaries[order.ClientID] = summary
			keys = append(keys, order.ClientID)
		}

		summary.Orders = append(summary.Orders, order)
		for _, item := range order.OrderItems {
			summary.Items = append(summary.Items, ClientItem{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				VariantID:     item.VariantID,
				ProductName:   item.ProductName,
				VariantName:   item.VariantName,
				Quantity:      item.Quantity,
				IsMakeToOrder: item.IsMakeToOrder,
			})
			summary.TotalItems += item.Quantity
		}
	}

	result := make([]ClientSummary, 0, len(keys))
	for _, key := range keys {
		result = append(result, *summaries[key])
	}
	return result
}
