// services/enrich_service.go
package services

import (
	"github.com/puertodata/contenedores/backend/models"
)

// UnknownCode is the placeholder shown when a status, content or equipment
// code has no entry in its lookup table.
const UnknownCode = "Desconocido"

// resolveCode maps a coded value through its lookup table, falling back to
// the placeholder. Applies to status, content and equipment-qualifier codes:
// these columns only ever hold codes, so an unmapped one carries no meaning
// on its own.
func resolveCode(code string, lookup map[string]string) string {
	if code == "" {
		return UnknownCode
	}
	if desc, ok := lookup[code]; ok {
		return desc
	}
	return UnknownCode
}

// resolvePort maps a port code through the international ports table, falling
// back to the raw value. Port columns frequently hold free text that was never
// a code, so replacing an unmapped value with a placeholder would destroy
// information. An empty code resolves to the empty string.
func resolvePort(code string, lookup map[string]string) string {
	if code == "" {
		return ""
	}
	if desc, ok := lookup[code]; ok {
		return desc
	}
	return code
}

// Enrich fills the derived description fields of every record from the lookup
// tables. It returns a new slice and never mutates its input; the snapshot a
// load produced stays immutable.
func Enrich(records []models.MovementRecord, lookups models.Lookups) []models.MovementRecord {
	enriched := make([]models.MovementRecord, len(records))
	for i, r := range records {
		r.StatusDesc = resolveCode(r.Status, lookups.Status)
		r.ContentDesc = resolveCode(r.FullEmpty, lookups.Content)
		r.EqdQualDesc = resolveCode(r.EqdQual, lookups.Equipment)
		r.LoadingPortName = resolvePort(r.LoadingPort, lookups.Port)
		r.DischargePortName = resolvePort(r.DischargePort, lookups.Port)
		r.DeliveryPortName = resolvePort(r.DeliveryPort, lookups.Port)
		r.PortRegisterName = resolvePort(r.PortRegister, lookups.Port)
		enriched[i] = r
	}
	return enriched
}
