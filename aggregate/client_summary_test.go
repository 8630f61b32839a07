package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velamode/orderdesk/aggregate"
	"github.com/velamode/orderdesk/models"
)

func TestSummarizeByClientGroupsOrders(t *testing.T) {
	orders := []models.Order{
		order(1, "Alice", "Acme", item(7, 4, false)),
		order(2, "Bob", "Beta Ltd", item(7, 6, true)),
		order(1, "Alice", "Acme", item(8, 2, true)),
	}

	summaries := aggregate.SummarizeByClient(orders)
	assert.Len(t, summaries, 2)

	alice := summaries[0]
	assert.Equal(t, uint(1), alice.ClientID)
	assert.Equal(t, "Alice", alice.ClientName)
	assert.Equal(t, "Acme", alice.CompanyName)
	assert.Len(t, alice.Orders, 2)
	assert.Len(t, alice.Items, 2)
	// Total items sums quantities unconditionally, MTO or not.
	assert.Equal(t, 6, alice.TotalItems)
	assert.True(t, alice.Items[1].IsMakeToOrder)

	bob := summaries[1]
	assert.Equal(t, uint(2), bob.ClientID)
	assert.Len(t, bob.Orders, 1)
	assert.Equal(t, 6, bob.TotalItems)
}

func TestSummarizeByClientEmptyInput(t *testing.T) {
	assert.Empty(t, aggregate.SummarizeByClient(nil))
}
