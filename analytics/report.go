package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// The dashboard's report contract is fixed: a 30-day trailing window of
// active users and screen page views broken down by date.
type reportRequest struct {
	DateRanges []dateRange `json:"dateRanges"`
	Metrics    []metric    `json:"metrics"`
	Dimensions []dimension `json:"dimensions"`
}

type dateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type metric struct {
	Name string `json:"name"`
}

type dimension struct {
	Name string `json:"name"`
}

func dashboardReportRequest() reportRequest {
	return reportRequest{
		DateRanges: []dateRange{{StartDate: "30daysAgo", EndDate: "today"}},
		Metrics:    []metric{{Name: "activeUsers"}, {Name: "screenPageViews"}},
		Dimensions: []dimension{{Name: "date"}},
	}
}

// RunReport relays the Data API report for the given property, e.g.
// "properties/123456". The caller resolves any property fallback before
// invoking this.
func (c *Client) RunReport(ctx context.Context, propertyID string) (json.RawMessage, error) {
	payload, err := json.Marshal(dashboardReportRequest())
	if err != nil {
		return nil, fmt.Errorf("encoding report request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:runReport", c.dataBaseURL, propertyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, "report run")
}
