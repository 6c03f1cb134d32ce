package product

import (
	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	"github.com/adaezeodina/beautyhub-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Category *enums.ProductCategory `json:"category,omitempty"`
	VendorID *uuid.UUID             `json:"vendor_id,omitempty"`
}

// ListInput captures the inputs needed to paginate the public catalog.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// ListResult is one cursor page of listings.
type ListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}
