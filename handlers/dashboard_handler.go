// handlers/dashboard_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/puertodata/contenedores/backend/models"
	"github.com/puertodata/contenedores/backend/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Handler ERROR: Marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("Handler API Error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// DashboardHandler serves the reporting API over the cached snapshot.
type DashboardHandler struct {
	Cache *services.SnapshotCache
}

func NewDashboardHandler(cache *services.SnapshotCache) *DashboardHandler {
	return &DashboardHandler{Cache: cache}
}

// loadWarning converts a load failure into the user-visible banner text. The
// pipeline short-circuits to an empty-state render; the database error itself
// stays in the server log.
func loadWarning(err error) string {
	return fmt.Sprintf("No se pudieron cargar los datos: %v. Revisa la configuración de la base de datos.", err)
}

// GetOptionsHandler returns the filter options for the current snapshot.
// Expects GET to /api/dashboard/options.
func (h *DashboardHandler) GetOptionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	snap, err := h.Cache.GetOrRefresh()
	if err != nil {
		// Empty state, not a 5xx: the page renders a warning banner and stops.
		respondWithJSON(w, http.StatusOK, models.OptionsResponse{
			Dimensions: []models.DimensionOptions{},
			Warning:    loadWarning(err),
		})
		return
	}

	enriched := services.Enrich(snap.Records, snap.Lookups)
	dims := services.BuildOptions(enriched)
	if dims == nil {
		dims = []models.DimensionOptions{}
	}
	respondWithJSON(w, http.StatusOK, models.OptionsResponse{
		Dimensions: dims,
		Total:      len(enriched),
		LoadedAt:   snap.LoadedAt.Format("2006-01-02 15:04:05"),
	})
}

// GetReportHandler runs one full recompute pass for the posted selections.
// Expects POST to /api/dashboard/report with a models.ReportRequest body.
func (h *DashboardHandler) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	snap, err := h.Cache.GetOrRefresh()
	if err != nil {
		respondWithJSON(w, http.StatusOK, emptyReport(loadWarning(err)))
		return
	}

	report := services.BuildReport(snap, req)
	log.Printf("Handler: Report built, showing %d of %d records", report.Matched, report.Total)
	respondWithJSON(w, http.StatusOK, report)
}

// ExportCSVHandler streams the filtered detail table as a CSV download.
// Expects POST to /api/dashboard/export with a models.ReportRequest body.
func (h *DashboardHandler) ExportCSVHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	snap, err := h.Cache.GetOrRefresh()
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, loadWarning(err))
		return
	}

	out, err := services.ExportCSV(snap, req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to export CSV: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="movimiento_contenedores.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// RefreshDataHandler drops the cached snapshot and reloads it immediately.
// Expects POST to /api/admin/refresh-data.
func (h *DashboardHandler) RefreshDataHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	log.Println("Handler: Manual data refresh requested")
	h.Cache.Invalidate()
	snap, err := h.Cache.GetOrRefresh()
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, loadWarning(err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Snapshot reloaded",
		"records": len(snap.Records),
	})
}

// HealthHandler reports process liveness and snapshot age.
// Expects GET to /api/health.
func (h *DashboardHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	payload := map[string]interface{}{"status": "ok"}
	if age, ok := h.Cache.Age(); ok {
		payload["snapshot_age_seconds"] = int(age.Seconds())
	} else {
		payload["snapshot_age_seconds"] = nil
	}
	respondWithJSON(w, http.StatusOK, payload)
}

func emptyReport(warning string) models.ReportResponse {
	return models.ReportResponse{
		OperatorCounts:      []models.CountEntry{},
		ContentDistribution: []models.CountEntry{},
		DailyArrivals:       []models.CountEntry{},
		Columns:             services.DetailHeaders(),
		Rows:                [][]string{},
		Warning:             warning,
	}
}
