package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"event_type is required"`
}

// PublishEventResponse represents a successful event ingestion response
type PublishEventResponse struct {
	EventID string `json:"event_id" example:"evt_1a2b3c4d5e6f"`
	Status  string `json:"status" example:"accepted"`
}

// PublishBulkEventsResponse represents a successful bulk event ingestion response
type PublishBulkEventsResponse struct {
	Accepted int      `json:"accepted" example:"5"`
	Rejected int      `json:"rejected" example:"0"`
	EventIDs []string `json:"event_ids,omitempty" example:"evt_1,evt_2,evt_3"`
	Errors   []string `json:"errors,omitempty" example:"validation error on event 3"`
}

// TouchpointShares holds one model's percentage share of the revenue pool
// per canonical touchpoint type
type TouchpointShares struct {
	View     float64 `json:"view" example:"34.2"`
	Cart     float64 `json:"cart" example:"48.1"`
	Purchase float64 `json:"purchase" example:"17.7"`
}

// ModelScores holds the fixed editorial ratings of one attribution model
type ModelScores struct {
	Accuracy      int `json:"accuracy" example:"8"`
	Fairness      int `json:"fairness" example:"9"`
	BusinessValue int `json:"business_value" example:"8"`
}

// ReportMeta describes the analyzed event window
type ReportMeta struct {
	TotalEvents    int  `json:"total_events" example:"183520"`
	TotalUsers     int  `json:"total_users" example:"12489"`
	AnalysisSample int  `json:"analysis_sample" example:"1342"`
	BotFiltered    bool `json:"bot_filtered" example:"true"`
}

// JourneyStatsData aggregates the analyzed purchase journeys
type JourneyStatsData struct {
	AvgTouchpoints        float64 `json:"avg_touchpoints" example:"3.4"`
	AvgDays               float64 `json:"avg_days" example:"1.8"`
	TotalJourneysAnalyzed int     `json:"total_journeys_analyzed" example:"1342"`
	TotalRevenue          float64 `json:"total_revenue" example:"419553.28"`
}

// AttributionReportResponse is the dashboard-facing attribution report:
// per-model revenue shares, journey statistics, and the qualitative model
// comparison
type AttributionReportResponse struct {
	Meta              ReportMeta                  `json:"meta"`
	AttributionModels map[string]TouchpointShares `json:"attribution_models"`
	JourneyStats      JourneyStatsData            `json:"journey_stats"`
	ModelComparison   map[string]ModelScores      `json:"model_comparison"`
}
