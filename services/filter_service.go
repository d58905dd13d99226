// services/filter_service.go
package services

import (
	"sort"
	"time"

	"github.com/puertodata/contenedores/backend/models"
)

// DimensionKind tags how a filter dimension behaves: discrete dimensions
// filter by set membership over stringified values, date dimensions by an
// inclusive calendar-date range.
type DimensionKind int

const (
	Discrete DimensionKind = iota
	Date
)

// Dimension describes one filterable field of an enriched movement record.
// ValueOf and DateOf read the field; exactly one of them is set, matching
// the Kind.
type Dimension struct {
	Key     string
	Label   string
	Kind    DimensionKind
	ValueOf func(r *models.MovementRecord) string
	DateOf  func(r *models.MovementRecord) *time.Time
}

// Dimensions is the fixed set of filter dimensions the dashboard offers,
// in sidebar order. Discrete dimensions filter on the resolved descriptions,
// not the raw codes, so the options the user sees are the values the table
// shows.
var Dimensions = []Dimension{
	{Key: "operator", Label: "Operador", Kind: Discrete,
		ValueOf: func(r *models.MovementRecord) string { return r.Operator }},
	{Key: "loading_port", Label: "Puerto Carga", Kind: Discrete,
		ValueOf: func(r *models.MovementRecord) string { return r.LoadingPortName }},
	{Key: "discharge_port", Label: "Puerto Descarga", Kind: Discrete,
		ValueOf: func(r *models.MovementRecord) string { return r.DischargePortName }},
	{Key: "arrival_date", Label: "Fch. Llegada", Kind: Date,
		DateOf: func(r *models.MovementRecord) *time.Time { return r.ArrivalDate }},
	{Key: "departure_date", Label: "Fch. Salida", Kind: Date,
		DateOf: func(r *models.MovementRecord) *time.Time { return r.DepartureDate }},
	{Key: "status", Label: "Estatus", Kind: Discrete,
		ValueOf: func(r *models.MovementRecord) string { return r.StatusDesc }},
	{Key: "content", Label: "Contenido", Kind: Discrete,
		ValueOf: func(r *models.MovementRecord) string { return r.ContentDesc }},
	{Key: "port_register", Label: "Pto. Registro", Kind: Discrete,
		ValueOf: func(r *models.MovementRecord) string { return r.PortRegisterName }},
}

const dateLayout = "2006-01-02"

// BuildOptions computes the filter options offered for a set of enriched
// records: per discrete dimension the sorted distinct values, per date
// dimension the observed [min, max]. A date dimension with no valid dates at
// all is omitted; one where min == max is flagged Fixed so the UI presents a
// single informational value instead of a collapsed range slider.
func BuildOptions(records []models.MovementRecord) []models.DimensionOptions {
	var out []models.DimensionOptions
	for _, dim := range Dimensions {
		switch dim.Kind {
		case Discrete:
			seen := make(map[string]struct{})
			for i := range records {
				seen[dim.ValueOf(&records[i])] = struct{}{}
			}
			values := make([]string, 0, len(seen))
			for v := range seen {
				values = append(values, v)
			}
			sort.Strings(values)
			out = append(out, models.DimensionOptions{
				Key: dim.Key, Label: dim.Label, Kind: "discrete", Values: values,
			})
		case Date:
			var min, max *time.Time
			for i := range records {
				d := dim.DateOf(&records[i])
				if d == nil {
					continue
				}
				if min == nil || d.Before(*min) {
					min = d
				}
				if max == nil || d.After(*max) {
					max = d
				}
			}
			if min == nil {
				// No valid dates for this dimension; nothing to offer.
				continue
			}
			out = append(out, models.DimensionOptions{
				Key: dim.Key, Label: dim.Label, Kind: "date",
				Min:   min.Format(dateLayout),
				Max:   max.Format(dateLayout),
				Fixed: min.Equal(*max),
			})
		}
	}
	return out
}

// Apply reduces records to those matching every selected constraint.
//
// Discrete dimensions use multi-select semantics: a key absent from filters
// leaves the dimension unfiltered, a present key keeps a record only if its
// value is in the selected set — so an empty selection matches nothing.
// Date dimensions keep a record only if its date is inside the inclusive
// [from, to] bound; a record with no parsed date fails every date filter.
// Constraints combine with AND. The input is never mutated.
func Apply(records []models.MovementRecord, filters map[string][]string, dates map[string]models.DateRange) []models.MovementRecord {
	discreteSets := make(map[string]map[string]struct{}, len(filters))
	for key, values := range filters {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		discreteSets[key] = set
	}

	type dateBound struct {
		from, to time.Time
	}
	dateBounds := make(map[string]dateBound, len(dates))
	for key, rng := range dates {
		from, errF := time.Parse(dateLayout, rng.From)
		to, errT := time.Parse(dateLayout, rng.To)
		if errF != nil || errT != nil {
			// An unparseable bound cannot admit any record.
			dateBounds[key] = dateBound{from: time.Time{}, to: time.Time{}.Add(-time.Hour)}
			continue
		}
		dateBounds[key] = dateBound{from: from, to: to}
	}

	filtered := make([]models.MovementRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		keep := true
		for _, dim := range Dimensions {
			switch dim.Kind {
			case Discrete:
				set, ok := discreteSets[dim.Key]
				if !ok {
					continue
				}
				if _, member := set[dim.ValueOf(r)]; !member {
					keep = false
				}
			case Date:
				bound, ok := dateBounds[dim.Key]
				if !ok {
					continue
				}
				d := dim.DateOf(r)
				if d == nil || d.Before(bound.from) || d.After(bound.to) {
					keep = false
				}
			}
			if !keep {
				break
			}
		}
		if keep {
			filtered = append(filtered, records[i])
		}
	}
	return filtered
}
