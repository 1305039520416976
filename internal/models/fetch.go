package models

// FetchRequest is the body POSTed to the metrics webhook. The query texts are
// opaque here: the webhook substitutes its own parameters and runs them; their
// only local role is contributing to the cache key.
type FetchRequest struct {
	DaysBack           int    `json:"days_back"`
	MonthStart         string `json:"month_start,omitempty"`
	DashboardQuery     string `json:"dashboard_query,omitempty"`
	DocumentationQuery string `json:"documentation_query,omitempty"`
}
