package dto

// PublishEventRequest represents a publish event request. Price is only
// expected on purchase events.
type PublishEventRequest struct {
	EventType string   `json:"event_type" binding:"required" example:"view"`
	UserID    string   `json:"user_id" binding:"required" example:"user_123"`
	Timestamp int64    `json:"timestamp" binding:"required" example:"1723475612"`
	Price     *float64 `json:"price,omitempty" example:"129.99"`
}

// PublishEventsBulkRequest represents a publish bulk event request
type PublishEventsBulkRequest struct {
	Events []PublishEventRequest `json:"events" binding:"required,min=1,max=1000,dive"`
}

// GetAttributionReportRequest selects the event window the attribution
// models are run over
type GetAttributionReportRequest struct {
	From int64 `form:"from" binding:"required" example:"1723475612"`
	To   int64 `form:"to" binding:"required" example:"1723562012"`
}
