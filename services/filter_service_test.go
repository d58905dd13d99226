package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/puertodata/contenedores/backend/models"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func filterRecords() []models.MovementRecord {
	return []models.MovementRecord{
		{ID: 3, Operator: "A", LoadingPortName: "Veracruz", StatusDesc: "En Tránsito", ContentDesc: "Lleno", ArrivalDate: date(2024, 1, 5)},
		{ID: 2, Operator: "A", LoadingPortName: "Houston", StatusDesc: "Descargado", ContentDesc: "Vacío", ArrivalDate: date(2024, 1, 7)},
		{ID: 1, Operator: "B", LoadingPortName: "Veracruz", StatusDesc: "En Tránsito", ContentDesc: "Lleno", ArrivalDate: nil},
	}
}

func TestBuildOptionsDiscreteSortedDistinct(t *testing.T) {
	opts := BuildOptions(filterRecords())

	var operator *models.DimensionOptions
	for i := range opts {
		if opts[i].Key == "operator" {
			operator = &opts[i]
		}
	}
	if operator == nil {
		t.Fatal("operator dimension missing from options")
	}
	if !reflect.DeepEqual(operator.Values, []string{"A", "B"}) {
		t.Errorf("operator values: got %v, want [A B]", operator.Values)
	}
}

func TestBuildOptionsDateRange(t *testing.T) {
	opts := BuildOptions(filterRecords())

	var arrival *models.DimensionOptions
	for i := range opts {
		if opts[i].Key == "arrival_date" {
			arrival = &opts[i]
		}
	}
	if arrival == nil {
		t.Fatal("arrival_date dimension missing from options")
	}
	if arrival.Min != "2024-01-05" || arrival.Max != "2024-01-07" {
		t.Errorf("arrival bounds: got [%s, %s], want [2024-01-05, 2024-01-07]", arrival.Min, arrival.Max)
	}
	if arrival.Fixed {
		t.Error("arrival_date with distinct min/max must not be fixed")
	}
}

func TestBuildOptionsSingleDateIsFixed(t *testing.T) {
	records := []models.MovementRecord{
		{Operator: "A", ArrivalDate: date(2024, 1, 5)},
		{Operator: "B", ArrivalDate: date(2024, 1, 5)},
		{Operator: "C", ArrivalDate: nil},
	}
	opts := BuildOptions(records)
	for _, o := range opts {
		if o.Key == "arrival_date" {
			if !o.Fixed {
				t.Error("min == max date dimension must be flagged fixed")
			}
			if o.Min != "2024-01-05" || o.Max != "2024-01-05" {
				t.Errorf("fixed bounds: got [%s, %s]", o.Min, o.Max)
			}
			return
		}
	}
	t.Fatal("arrival_date dimension missing from options")
}

func TestBuildOptionsOmitsDateDimensionWithNoValidDates(t *testing.T) {
	records := []models.MovementRecord{{Operator: "A"}, {Operator: "B"}}
	for _, o := range BuildOptions(records) {
		if o.Key == "arrival_date" || o.Key == "departure_date" {
			t.Errorf("date dimension %s offered despite having no valid dates", o.Key)
		}
	}
}

func TestApplyDiscreteSelection(t *testing.T) {
	got := Apply(filterRecords(), map[string][]string{"operator": {"A"}}, nil)
	if len(got) != 2 {
		t.Fatalf("filtered count: got %d, want 2", len(got))
	}
	for _, r := range got {
		if r.Operator != "A" {
			t.Errorf("unexpected operator %q in filtered set", r.Operator)
		}
	}
}

func TestApplyEmptySelectionMatchesNothing(t *testing.T) {
	// Deselecting every value in a multi-select means "show nothing",
	// not "dimension unfiltered".
	got := Apply(filterRecords(), map[string][]string{"operator": {}}, nil)
	if len(got) != 0 {
		t.Errorf("empty selection: got %d records, want 0", len(got))
	}
}

func TestApplyFullSelectionLeavesSetUnchanged(t *testing.T) {
	records := filterRecords()
	got := Apply(records, map[string][]string{"operator": {"A", "B"}}, nil)
	if !reflect.DeepEqual(got, records) {
		t.Errorf("full selection changed the set: got %v", got)
	}
}

func TestApplyAbsentKeyLeavesDimensionUnfiltered(t *testing.T) {
	got := Apply(filterRecords(), map[string][]string{}, nil)
	if len(got) != 3 {
		t.Errorf("no selections: got %d records, want 3", len(got))
	}
}

func TestApplyDateRangeInclusiveBounds(t *testing.T) {
	records := filterRecords()
	dates := map[string]models.DateRange{
		"arrival_date": {From: "2024-01-05", To: "2024-01-07"},
	}
	got := Apply(records, nil, dates)
	if len(got) != 2 {
		t.Fatalf("inclusive range: got %d records, want 2", len(got))
	}

	// Exactly the lower bound.
	dates["arrival_date"] = models.DateRange{From: "2024-01-05", To: "2024-01-05"}
	got = Apply(records, nil, dates)
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("lower bound: got %v, want the 2024-01-05 record", got)
	}

	// Exactly the upper bound.
	dates["arrival_date"] = models.DateRange{From: "2024-01-07", To: "2024-01-07"}
	got = Apply(records, nil, dates)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("upper bound: got %v, want the 2024-01-07 record", got)
	}
}

func TestApplyNilDateFailsDateFilter(t *testing.T) {
	dates := map[string]models.DateRange{
		"arrival_date": {From: "2000-01-01", To: "2100-01-01"},
	}
	got := Apply(filterRecords(), nil, dates)
	for _, r := range got {
		if r.ArrivalDate == nil {
			t.Error("record with nil arrival date survived a date filter")
		}
	}
	if len(got) != 2 {
		t.Errorf("got %d records, want 2", len(got))
	}
}

func TestApplyCombinesWithAND(t *testing.T) {
	got := Apply(filterRecords(),
		map[string][]string{
			"operator":     {"A", "B"},
			"loading_port": {"Veracruz"},
		},
		map[string]models.DateRange{
			"arrival_date": {From: "2024-01-01", To: "2024-01-31"},
		})
	// Only ID 3 is operator A/B AND Veracruz AND has a January arrival date.
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("AND semantics: got %v, want only record 3", got)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	filters := map[string][]string{"operator": {"A"}}
	dates := map[string]models.DateRange{"arrival_date": {From: "2024-01-05", To: "2024-01-07"}}

	once := Apply(filterRecords(), filters, dates)
	twice := Apply(once, filters, dates)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering is not idempotent: %v vs %v", once, twice)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	records := filterRecords()
	_ = Apply(records, map[string][]string{"operator": {"A"}}, nil)
	if len(records) != 3 {
		t.Errorf("Apply mutated its input: %d records left", len(records))
	}
}
