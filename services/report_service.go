// services/report_service.go
package services

import (
	"sort"
	"time"

	"github.com/puertodata/contenedores/backend/models"
)

// detailColumn pairs a display header with the accessor that produces the
// cell value from an enriched record. Coded columns show their resolved
// descriptions; nil dates render as the empty string, never a null marker.
type detailColumn struct {
	Header string
	Cell   func(r *models.MovementRecord) string
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}

// detailColumns is the fixed, ordered projection of the detail table, in the
// column order the dashboard has always shown.
var detailColumns = []detailColumn{
	{"Operador", func(r *models.MovementRecord) string { return r.Operator }},
	{"Puerto Carga", func(r *models.MovementRecord) string { return r.LoadingPortName }},
	{"Puerto Descarga", func(r *models.MovementRecord) string { return r.DischargePortName }},
	{"Fch. Llegada", func(r *models.MovementRecord) string { return formatDate(r.ArrivalDate) }},
	{"Hr. Llegada", func(r *models.MovementRecord) string { return r.ArrivalTime }},
	{"Fch. Salida", func(r *models.MovementRecord) string { return formatDate(r.DepartureDate) }},
	{"Hr. Salida", func(r *models.MovementRecord) string { return r.DepartureTime }},
	{"Estatus", func(r *models.MovementRecord) string { return r.StatusDesc }},
	{"Contenido", func(r *models.MovementRecord) string { return r.ContentDesc }},
	{"Pto. Registro", func(r *models.MovementRecord) string { return r.PortRegisterName }},
	{"Nombre Navio", func(r *models.MovementRecord) string { return r.ShipName }},
	{"No. Contenedor", func(r *models.MovementRecord) string { return r.ContainerNumber }},
	{"Tamaño", func(r *models.MovementRecord) string { return r.Size }},
	{"Tipo", func(r *models.MovementRecord) string { return r.Type }},
	{"Temperatura", func(r *models.MovementRecord) string { return r.Temperature }},
	{"Descripción", func(r *models.MovementRecord) string { return r.Description }},
	{"Cód. DGN", func(r *models.MovementRecord) string { return r.DgnCode }},
	{"IMO", func(r *models.MovementRecord) string { return r.Imo }},
	{"Distintivo", func(r *models.MovementRecord) string { return r.CallSign }},
	{"No. Viaje", func(r *models.MovementRecord) string { return r.TripNumber }},
	{"Pto. Entrega", func(r *models.MovementRecord) string { return r.DeliveryPort }},
	{"Muelle", func(r *models.MovementRecord) string { return r.Dock }},
	{"No. Visita", func(r *models.MovementRecord) string { return r.VisitNo }},
	{"Eqd-Qual", func(r *models.MovementRecord) string { return r.EqdQualDesc }},
}

// DetailHeaders returns the display headers of the detail table, in order.
func DetailHeaders() []string {
	headers := make([]string, len(detailColumns))
	for i, col := range detailColumns {
		headers[i] = col.Header
	}
	return headers
}

// DetailRows projects records onto the detail table.
func DetailRows(records []models.MovementRecord) [][]string {
	rows := make([][]string, len(records))
	for i := range records {
		row := make([]string, len(detailColumns))
		for j, col := range detailColumns {
			row[j] = col.Cell(&records[i])
		}
		rows[i] = row
	}
	return rows
}

// OperatorCounts groups records by operator and counts, sorted by count
// descending then label, so the bar chart reads largest-first.
func OperatorCounts(records []models.MovementRecord) []models.CountEntry {
	return countBy(records, func(r *models.MovementRecord) (string, bool) {
		return r.Operator, true
	}, byCountDesc)
}

// ContentDistribution groups records by their resolved full/empty description.
func ContentDistribution(records []models.MovementRecord) []models.CountEntry {
	return countBy(records, func(r *models.MovementRecord) (string, bool) {
		return r.ContentDesc, true
	}, byCountDesc)
}

// DailyArrivals counts records per arrival date, ascending by date. Records
// with no parsed arrival date are excluded: they cannot appear in a per-day
// trend, so the series may sum to less than the filtered total.
func DailyArrivals(records []models.MovementRecord) []models.CountEntry {
	return countBy(records, func(r *models.MovementRecord) (string, bool) {
		if r.ArrivalDate == nil {
			return "", false
		}
		return r.ArrivalDate.Format(dateLayout), true
	}, byLabelAsc)
}

type countOrder int

const (
	byCountDesc countOrder = iota
	byLabelAsc
)

func countBy(records []models.MovementRecord, keyOf func(r *models.MovementRecord) (string, bool), order countOrder) []models.CountEntry {
	counts := make(map[string]int)
	for i := range records {
		key, ok := keyOf(&records[i])
		if !ok {
			continue
		}
		counts[key]++
	}
	entries := make([]models.CountEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, models.CountEntry{Label: label, Count: count})
	}
	switch order {
	case byCountDesc:
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Count != entries[j].Count {
				return entries[i].Count > entries[j].Count
			}
			return entries[i].Label < entries[j].Label
		})
	case byLabelAsc:
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Label < entries[j].Label
		})
	}
	return entries
}

// BuildReport runs the full recompute pass for one request: enrich the
// snapshot, apply the selections, aggregate, project. Pure with respect to
// the snapshot; every call re-derives from the loaded records.
func BuildReport(snap *models.Snapshot, req models.ReportRequest) models.ReportResponse {
	enriched := Enrich(snap.Records, snap.Lookups)
	filtered := Apply(enriched, req.Filters, req.Dates)

	return models.ReportResponse{
		Total:               len(enriched),
		Matched:             len(filtered),
		OperatorCounts:      OperatorCounts(filtered),
		ContentDistribution: ContentDistribution(filtered),
		DailyArrivals:       DailyArrivals(filtered),
		Columns:             DetailHeaders(),
		Rows:                DetailRows(filtered),
	}
}
