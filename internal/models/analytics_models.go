package models

// DailyRevenue is one day's aggregated revenue and order count.
type DailyRevenue struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// TopItem aggregates quantity and revenue per snapshotted item name.
type TopItem struct {
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// BreakdownEntry is a generic label/count/amount aggregation row, used for
// order-type, source, and hourly breakdowns.
type BreakdownEntry struct {
	Label  string  `json:"label"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// AnalyticsSummary is the dashboard payload for one restaurant and range.
type AnalyticsSummary struct {
	TotalRevenue    float64          `json:"total_revenue"`
	TotalOrders     int64            `json:"total_orders"`
	AvgOrderValue   float64          `json:"avg_order_value"`
	RevenueByDay    []DailyRevenue   `json:"revenue_by_day"`
	TopItems        []TopItem        `json:"top_items"`
	ByOrderType     []BreakdownEntry `json:"by_order_type"`
	BySource        []BreakdownEntry `json:"by_source"`
	ByHour          []BreakdownEntry `json:"by_hour"`
	FeedbackStats   *FeedbackStats   `json:"feedback_stats,omitempty"`
}

// AnalyticsRange bounds an analytics query, dates in YYYY-MM-DD.
type AnalyticsRange struct {
	From string `form:"from"`
	To   string `form:"to"`
}
