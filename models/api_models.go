// models/api_models.go
package models

// ReportRequest is the expected JSON body for the /api/dashboard/report endpoint.
//
// Filters maps a discrete dimension key to the set of admissible values.
// A key that is absent leaves that dimension unfiltered; a key that is present
// with an empty list matches zero records (multi-select semantics: deselecting
// everything means "show nothing", not "show everything").
// Dates maps a date dimension key to an inclusive [from, to] bound.
type ReportRequest struct {
	Filters map[string][]string  `json:"filters"`
	Dates   map[string]DateRange `json:"dates"`
}

// DateRange is an inclusive calendar-date bound, "YYYY-MM-DD" at both ends.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DimensionOptions describes one filterable dimension as offered to the UI.
// Discrete dimensions carry Values; date dimensions carry Min/Max. A date
// dimension whose observed min and max coincide is flagged Fixed so the UI
// shows it as an informational value instead of a degenerate range control.
type DimensionOptions struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Kind   string   `json:"kind"` // "discrete" or "date"
	Values []string `json:"values,omitempty"`
	Min    string   `json:"min,omitempty"`
	Max    string   `json:"max,omitempty"`
	Fixed  bool     `json:"fixed,omitempty"`
}

// OptionsResponse is the payload of /api/dashboard/options.
type OptionsResponse struct {
	Dimensions []DimensionOptions `json:"dimensions"`
	Total      int                `json:"total"`
	LoadedAt   string             `json:"loaded_at,omitempty"`
	Warning    string             `json:"warning,omitempty"`
}

// CountEntry is one bucket of a grouped count aggregation.
type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ReportResponse is the payload of /api/dashboard/report: the three summary
// aggregations plus the detail table over the filtered record set. On a load
// failure everything is empty and Warning carries the user-visible message.
type ReportResponse struct {
	Total               int          `json:"total"`
	Matched             int          `json:"matched"`
	OperatorCounts      []CountEntry `json:"operator_counts"`
	ContentDistribution []CountEntry `json:"content_distribution"`
	DailyArrivals       []CountEntry `json:"daily_arrivals"`
	Columns             []string     `json:"columns"`
	Rows                [][]string   `json:"rows"`
	Warning             string       `json:"warning,omitempty"`
}
