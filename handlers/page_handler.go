// handlers/page_handler.go
package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed dashboard.html
var dashboardPage []byte

// DashboardPageHandler serves the single-page dashboard. The page is a thin
// consumer of the JSON API; all filtering and aggregation happens server-side.
func DashboardPageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(dashboardPage)
}
