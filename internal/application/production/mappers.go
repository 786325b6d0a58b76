package production

import (
	"sort"

	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// applyScalars escribe solo los campos informados.
func applyScalars(s *entity.DailySession, in dto.ScalarFields) {
	setDecimal(&s.Butanier, in.Butanier)
	setDecimal(&s.Recuperation, in.Recuperation)
	setDecimal(&s.ApproSAR, in.ApproSAR)
	setDecimal(&s.Ngabou, in.Ngabou)
	setDecimal(&s.Exports, in.Exports)
	setDecimal(&s.Divers, in.Divers)
	if in.Observations != nil {
		s.Observations = *in.Observations
	}
	if in.HeureDebut != nil {
		v := *in.HeureDebut
		s.StartTime = &v
	}
	if in.HeureFin != nil {
		v := *in.HeureFin
		s.EndTime = &v
	}
	if in.DensiteAmbiante != nil {
		v := *in.DensiteAmbiante
		s.SharedAmbientDensity = &v
	}
	if in.Arrets != nil {
		s.DowntimeMinutes = *in.Arrets
	}
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func tankInputToReading(sessionID string, in dto.TankInput) entity.TankReading {
	return entity.TankReading{
		SessionID:        sessionID,
		Name:             in.Name,
		TankConfigID:     in.TankConfigID,
		Height:           in.Height,
		Temperature:      in.Temperature,
		VaporTemperature: in.VaporTemperature,
		LiquidVolume:     in.LiquidVolume,
		InternalPressure: in.InternalPressure,
		DensityAt15C:     in.DensityAt15C,
		FillPercentage:   in.FillPercentage,
		LiquidWeight:     in.LiquidWeight,
	}
}

func bottleInputs(sessionID string, in []dto.BottleInput) []entity.BottleEntry {
	out := make([]entity.BottleEntry, 0, len(in))
	for _, b := range in {
		out = append(out, entity.BottleEntry{SessionID: sessionID, Type: b.Type, Quantity: b.Quantity})
	}
	return out
}

// fieldIndex índice nombre → campo para un tipo (APPRO o SORTIE).
func fieldIndex(fields []entity.DynamicField, kind string) map[string]entity.DynamicField {
	idx := make(map[string]entity.DynamicField)
	for _, f := range fields {
		if f.Kind == kind {
			idx[f.Name] = f
		}
	}
	return idx
}

// resolveDynamic traduce nombre → valor a valores con field_id. Los nombres no registrados
// se devuelven aparte para registrarlos en el log; no son error.
func resolveDynamic(sessionID, kind string, values map[string]decimal.Decimal, idx map[string]entity.DynamicField) (resolved []entity.DynamicValue, unknown []string) {
	for _, name := range sortedKeys(values) {
		f, ok := idx[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		resolved = append(resolved, entity.DynamicValue{
			SessionID: sessionID,
			FieldID:   f.ID,
			FieldName: f.Name,
			Kind:      kind,
			Value:     values[name],
		})
	}
	return resolved, unknown
}

func sortedKeys(values map[string]decimal.Decimal) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mergeDynamic aplica upserts en memoria sobre los valores existentes (por field_id).
func mergeDynamic(current, upserts []entity.DynamicValue) []entity.DynamicValue {
	out := make([]entity.DynamicValue, len(current))
	copy(out, current)
	for _, u := range upserts {
		replaced := false
		for i := range out {
			if out[i].FieldID == u.FieldID {
				out[i] = u
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, u)
		}
	}
	return out
}

func toTankResponse(r entity.TankReading, warnings []string) dto.TankReadingResponse {
	return dto.TankReadingResponse{
		Name:                   r.Name,
		TankConfigID:           r.TankConfigID,
		Mode:                   r.Mode,
		Height:                 r.Height,
		Temperature:            r.Temperature,
		VaporTemperature:       r.VaporTemperature,
		LiquidVolume:           r.LiquidVolume,
		InternalPressure:       r.InternalPressure,
		DensityAt15C:           r.DensityAt15C,
		FillPercentage:         r.FillPercentage,
		LiquidCorrectionFactor: r.LiquidCorrectionFactor,
		VaporCorrectionFactor:  r.VaporCorrectionFactor,
		AmbientDensity:         r.AmbientDensity,
		LiquidWeight:           r.LiquidWeight,
		VaporWeight:            r.VaporWeight,
		TotalWeight:            r.TotalWeight,
		Warnings:               warnings,
	}
}

func toDynamicResponses(values []entity.DynamicValue) []dto.DynamicValueResponse {
	out := make([]dto.DynamicValueResponse, 0, len(values))
	for _, v := range values {
		out = append(out, dto.DynamicValueResponse{FieldID: v.FieldID, Name: v.FieldName, Value: v.Value})
	}
	return out
}

// ToSessionResponse convierte la sesión completa a su DTO de salida.
func ToSessionResponse(s *entity.DailySession) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	tanks := make([]dto.TankReadingResponse, 0, len(s.Tanks))
	for _, t := range s.Tanks {
		tanks = append(tanks, toTankResponse(t, nil))
	}
	bottles := make([]dto.BottleEntryResponse, 0, len(s.Bottles))
	for _, b := range s.Bottles {
		bottles = append(bottles, dto.BottleEntryResponse{Type: b.Type, Quantity: b.Quantity, Tonnage: b.Tonnage})
	}
	return &dto.SessionResponse{
		ID:                    s.ID,
		CenterID:              s.CenterID,
		Date:                  s.Date.Format(dateLayout),
		Status:                s.Status,
		InitialPhysicalStock:  s.InitialPhysicalStock,
		Butanier:              s.Butanier,
		Recuperation:          s.Recuperation,
		ApproSAR:              s.ApproSAR,
		Ngabou:                s.Ngabou,
		Exports:               s.Exports,
		Divers:                s.Divers,
		Observations:          s.Observations,
		StartTime:             s.StartTime,
		EndTime:               s.EndTime,
		TotalMinutes:          s.TotalMinutes,
		DowntimeMinutes:       s.DowntimeMinutes,
		UsefulMinutes:         s.UsefulMinutes,
		YieldPercent:          s.YieldPercent,
		SharedAmbientDensity:  s.SharedAmbientDensity,
		TotalAppro:            s.TotalAppro,
		TotalBulkSorties:      s.TotalBulkSorties,
		TotalBottleTonnage:    s.TotalBottleTonnage,
		CumulSortie:           s.CumulSortie,
		TheoreticalFinalStock: s.TheoreticalFinalStock,
		PhysicalFinalStock:    s.PhysicalFinalStock,
		Variance:              s.Variance,
		VariancePercent:       s.VariancePercent,
		TotalBottlesProduced:  s.TotalBottlesProduced,
		Tanks:                 tanks,
		Bottles:               bottles,
		Appros:                toDynamicResponses(s.Appros),
		Sorties:               toDynamicResponses(s.Sorties),
		StartedBy:             s.StartedBy,
		StartedAt:             s.StartedAt,
		ClosedBy:              s.ClosedBy,
		ClosedAt:              s.ClosedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func toSummary(s *entity.DailySession) dto.SessionSummaryResponse {
	return dto.SessionSummaryResponse{
		ID:                    s.ID,
		Date:                  s.Date.Format(dateLayout),
		Status:                s.Status,
		TheoreticalFinalStock: s.TheoreticalFinalStock,
		PhysicalFinalStock:    s.PhysicalFinalStock,
		Variance:              s.Variance,
		YieldPercent:          s.YieldPercent,
		TotalBottlesProduced:  s.TotalBottlesProduced,
	}
}
