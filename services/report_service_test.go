package services

import (
	"testing"
	"time"

	"github.com/puertodata/contenedores/backend/models"
)

func reportSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Records: []models.MovementRecord{
			{ID: 3, Operator: "A", Status: "1", FullEmpty: "F", ArrivalDate: date(2024, 1, 6), LoadingPort: "MXVER"},
			{ID: 2, Operator: "A", Status: "2", FullEmpty: "E", ArrivalDate: date(2024, 1, 5), LoadingPort: "ZZZ99"},
			{ID: 1, Operator: "B", Status: "1", FullEmpty: "F", ArrivalDate: nil, LoadingPort: ""},
		},
		Lookups:  sampleLookups(),
		LoadedAt: time.Now(),
	}
}

func TestOperatorCountsScenario(t *testing.T) {
	// 3 records with operators [A, A, B], selection {A} => 2 records, {A:2}.
	snap := reportSnapshot()
	rep := BuildReport(snap, models.ReportRequest{
		Filters: map[string][]string{"operator": {"A"}},
	})

	if rep.Total != 3 {
		t.Errorf("Total: got %d, want 3", rep.Total)
	}
	if rep.Matched != 2 {
		t.Errorf("Matched: got %d, want 2", rep.Matched)
	}
	if len(rep.OperatorCounts) != 1 {
		t.Fatalf("OperatorCounts: got %v, want single entry", rep.OperatorCounts)
	}
	if rep.OperatorCounts[0].Label != "A" || rep.OperatorCounts[0].Count != 2 {
		t.Errorf("OperatorCounts: got %+v, want {A 2}", rep.OperatorCounts[0])
	}
}

func TestContentDistributionUsesResolvedDescriptions(t *testing.T) {
	rep := BuildReport(reportSnapshot(), models.ReportRequest{})

	counts := map[string]int{}
	for _, e := range rep.ContentDistribution {
		counts[e.Label] = e.Count
	}
	if counts["Lleno"] != 2 || counts["Vacío"] != 1 {
		t.Errorf("ContentDistribution: got %v, want Lleno:2 Vacío:1", counts)
	}
}

func TestDailyArrivalsExcludesNilDatesAndSortsAscending(t *testing.T) {
	rep := BuildReport(reportSnapshot(), models.ReportRequest{})

	if len(rep.DailyArrivals) != 2 {
		t.Fatalf("DailyArrivals: got %v, want 2 buckets", rep.DailyArrivals)
	}
	if rep.DailyArrivals[0].Label != "2024-01-05" || rep.DailyArrivals[1].Label != "2024-01-06" {
		t.Errorf("DailyArrivals order: got %v, want ascending dates", rep.DailyArrivals)
	}
	sum := 0
	for _, e := range rep.DailyArrivals {
		sum += e.Count
	}
	if sum > rep.Matched {
		t.Errorf("DailyArrivals sum %d exceeds matched count %d", sum, rep.Matched)
	}
}

func TestDailyArrivalsFixedSingleDate(t *testing.T) {
	// min == max == 2024-01-05: filtering by that single day keeps every
	// record dated exactly that day and drops nil dates.
	snap := &models.Snapshot{
		Records: []models.MovementRecord{
			{ID: 1, Operator: "A", ArrivalDate: date(2024, 1, 5)},
			{ID: 2, Operator: "B", ArrivalDate: date(2024, 1, 5)},
			{ID: 3, Operator: "C", ArrivalDate: nil},
		},
		Lookups:  sampleLookups(),
		LoadedAt: time.Now(),
	}

	opts := BuildOptions(Enrich(snap.Records, snap.Lookups))
	for _, o := range opts {
		if o.Key == "arrival_date" && !o.Fixed {
			t.Error("single-date dimension must be exposed as fixed")
		}
	}

	rep := BuildReport(snap, models.ReportRequest{
		Dates: map[string]models.DateRange{"arrival_date": {From: "2024-01-05", To: "2024-01-05"}},
	})
	if rep.Matched != 2 {
		t.Errorf("Matched: got %d, want 2 (nil date excluded)", rep.Matched)
	}
}

func TestDetailTableHeadersAndOrder(t *testing.T) {
	headers := DetailHeaders()
	want := []string{
		"Operador", "Puerto Carga", "Puerto Descarga", "Fch. Llegada", "Hr. Llegada",
		"Fch. Salida", "Hr. Salida", "Estatus", "Contenido", "Pto. Registro",
		"Nombre Navio", "No. Contenedor", "Tamaño", "Tipo", "Temperatura",
		"Descripción", "Cód. DGN", "IMO", "Distintivo", "No. Viaje",
		"Pto. Entrega", "Muelle", "No. Visita", "Eqd-Qual",
	}
	if len(headers) != len(want) {
		t.Fatalf("header count: got %d, want %d", len(headers), len(want))
	}
	for i := range want {
		if headers[i] != want[i] {
			t.Errorf("header[%d]: got %q, want %q", i, headers[i], want[i])
		}
	}
}

func TestDetailRowsResolveAndBlankOutNulls(t *testing.T) {
	rep := BuildReport(reportSnapshot(), models.ReportRequest{})

	// Rows come back most-recent-first (snapshot order). Record ID 2 has the
	// unmapped port code ZZZ99: it must appear verbatim, not as a placeholder.
	row := rep.Rows[1]
	if row[1] != "ZZZ99" {
		t.Errorf("unmapped port in detail table: got %q, want %q", row[1], "ZZZ99")
	}

	// Record ID 1 has no arrival date and an empty loading port: both render
	// as empty strings, never a null marker.
	row = rep.Rows[2]
	if row[1] != "" {
		t.Errorf("empty port: got %q, want empty string", row[1])
	}
	if row[3] != "" {
		t.Errorf("nil arrival date: got %q, want empty string", row[3])
	}
	if row[7] != "En Tránsito" {
		t.Errorf("resolved status: got %q, want %q", row[7], "En Tránsito")
	}
}

func TestUnmappedPortVerbatimInFilterOptions(t *testing.T) {
	snap := reportSnapshot()
	opts := BuildOptions(Enrich(snap.Records, snap.Lookups))
	for _, o := range opts {
		if o.Key != "loading_port" {
			continue
		}
		found := false
		for _, v := range o.Values {
			if v == "ZZZ99" {
				found = true
			}
			if v == UnknownCode {
				t.Errorf("port options must not contain the %q placeholder", UnknownCode)
			}
		}
		if !found {
			t.Errorf("loading_port options %v missing verbatim unmapped code ZZZ99", o.Values)
		}
		return
	}
	t.Fatal("loading_port dimension missing from options")
}
