package cart

import (
	"sort"
	"sync"

	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
)

// LineItem is one cart entry. Display fields are captured when the item
// is first added so the cart renders without re-fetching the catalog.
type LineItem struct {
	VariantID     uint    `json:"variant_id"`
	ProductName   string  `json:"product_name"`
	ProductImage  string  `json:"product_image"`
	VariantName   string  `json:"variant_name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	IsMakeToOrder bool    `json:"is_make_to_order"`
}

// Store holds what one client session intends to order: at most one
// LineItem per variant, quantities always positive. Every mutation is
// written through to the Persister; persistence failures are logged and
// the store keeps working in memory.
type Store struct {
	mu      sync.Mutex
	items   map[uint]LineItem
	persist Persister
}

// NewStore builds a store backed by p and loads whatever p has saved.
// A corrupt or unreadable snapshot yields an empty cart, never an error.
func NewStore(p Persister) *Store {
	s := &Store{
		items:   make(map[uint]LineItem),
		persist: p,
	}
	if p == nil {
		return s
	}
	items, err := p.Load()
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("cart: discarding saved cart: %v", err)
		}
		return s
	}
	for _, item := range items {
		if item.Quantity > 0 {
			s.items[item.VariantID] = item
		}
	}
	return s
}

// Add applies delta (positive or negative) to the quantity for the
// variant, creating the entry on first add. A resulting quantity of zero
// or less removes the entry. The make-to-order flag is OR'd with any
// existing flag: once a variant is flagged it stays flagged until it is
// removed from the cart.
func (s *Store) Add(productName, productImage string, variant models.ProductVariant, delta int, isMakeToOrder bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[variant.ID]
	if !ok {
		item = LineItem{
			VariantID:    variant.ID,
			ProductName:  productName,
			ProductImage: productImage,
			VariantName:  variant.Name,
			Price:        variant.Price,
		}
	}
	item.Quantity += delta
	item.IsMakeToOrder = item.IsMakeToOrder || isMakeToOrder

	if item.Quantity <= 0 {
		delete(s.items, variant.ID)
	} else {
		s.items[variant.ID] = item
	}
	s.save()
}

// SetQuantity overwrites the quantity for an existing entry. Zero or
// less removes it. Unknown variants are a no-op.
func (s *Store) SetQuantity(variantID uint, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[variantID]
	if !ok {
		return
	}
	if quantity <= 0 {
		delete(s.items, variantID)
	} else {
		item.Quantity = quantity
		s.items[variantID] = item
	}
	s.save()
}

// Remove deletes the entry for the variant; no-op if absent.
func (s *Store) Remove(variantID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, variantID)
	s.save()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[uint]LineItem)
	s.save()
}

// ItemCount is the sum of quantities across all entries.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// MTOItemCount is the sum of quantities across make-to-order entries.
func (s *Store) MTOItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		if item.IsMakeToOrder {
			total += item.Quantity
		}
	}
	return total
}

// Len is the number of distinct variants in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot returns a copy of the line items, sorted by variant ID so
// callers get a stable view. Mutating the result does not touch the
// store.
func (s *Store) Snapshot() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].VariantID < items[j].VariantID
	})
	return items
}

// Get returns the entry for a variant, if present.
func (s *Store) Get(variantID uint) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[variantID]
	return item, ok
}

// save writes the current items through to the persister. Callers must
// hold s.mu. Failures are logged, never returned: the cart keeps
// working in memory for the rest of the session.
func (s *Store) save() {
	if s.persist == nil {
		return
	}
	items := make([]LineItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].VariantID < items[j].VariantID
	})
	if err := s.persist.Save(items); err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("cart: persist failed: %v", err)
		}
	}
}
