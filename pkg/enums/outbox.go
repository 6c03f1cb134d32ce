package enums

// OutboxAggregateType names the aggregate a domain event belongs to.
type OutboxAggregateType string

const (
	AggregateUser    OutboxAggregateType = "user"
	AggregateProduct OutboxAggregateType = "product"
	AggregateCart    OutboxAggregateType = "cart"
	AggregateMedia   OutboxAggregateType = "media"
)

// OutboxEventType names a published domain event.
type OutboxEventType string

const (
	EventVendorVerified   OutboxEventType = "vendor.verified"
	EventVendorRejected   OutboxEventType = "vendor.rejected"
	EventProductPublished OutboxEventType = "product.published"
	EventMediaUploaded    OutboxEventType = "media.uploaded"
	EventCartCleared      OutboxEventType = "cart.cleared"
)
