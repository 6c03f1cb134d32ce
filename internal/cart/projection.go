package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
)

// ItemView is the transport shape of one cart line.
type ItemView struct {
	ItemID            uuid.UUID `json:"item_id"`
	ProductID         uuid.UUID `json:"product_id"`
	VendorID          uuid.UUID `json:"vendor_id"`
	ProductName       string    `json:"product_name"`
	Quantity          int       `json:"quantity"`
	UnitPriceCents    int64     `json:"unit_price_cents"`
	LineSubtotalCents int64     `json:"line_subtotal_cents"`
	ImageURL          *string   `json:"image_url,omitempty"`
	AddedAt           time.Time `json:"added_at"`
}

// Projection is the public read model. Totals are always derived from the
// item list handed in, never taken from the cached columns, so the returned
// totals can never disagree with the returned items.
type Projection struct {
	Items      []ItemView  `json:"items"`
	ItemCount  int         `json:"item_count"`
	TotalCents int64       `json:"total_cents"`
	Total      string      `json:"total"`
	Vendors    []uuid.UUID `json:"vendors"`
}

// Project derives the public view of a cart. A nil cart projects as empty.
func Project(cart *models.Cart) Projection {
	if cart == nil {
		return emptyProjection()
	}

	items := make([]ItemView, 0, len(cart.Items))
	vendors := make([]uuid.UUID, 0, len(cart.Items))
	seen := make(map[uuid.UUID]struct{}, len(cart.Items))
	itemCount := 0
	var totalCents int64

	for i := range cart.Items {
		item := &cart.Items[i]
		line := item.LineSubtotalCents()
		itemCount += item.Quantity
		totalCents += line
		if _, ok := seen[item.VendorID]; !ok {
			seen[item.VendorID] = struct{}{}
			vendors = append(vendors, item.VendorID)
		}
		items = append(items, ItemView{
			ItemID:            item.ID,
			ProductID:         item.ProductID,
			VendorID:          item.VendorID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			UnitPriceCents:    item.UnitPriceCents,
			LineSubtotalCents: line,
			ImageURL:          item.ImageURL,
			AddedAt:           item.CreatedAt,
		})
	}

	return Projection{
		Items:      items,
		ItemCount:  itemCount,
		TotalCents: totalCents,
		Total:      renderCents(totalCents),
		Vendors:    vendors,
	}
}

func emptyProjection() Projection {
	return Projection{
		Items:   []ItemView{},
		Total:   renderCents(0),
		Vendors: []uuid.UUID{},
	}
}

func renderCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
