package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartSessionRequest body para POST /api/sessions.
type StartSessionRequest struct {
	Date                 string           `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	InitialPhysicalStock *decimal.Decimal `json:"stockInitial,omitempty"`
}

// BottleInput entrada de botellas llenadas.
type BottleInput struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// TankInput lectura cruda de un reservorio.
type TankInput struct {
	Name             string           `json:"name"`
	TankConfigID     string           `json:"tankConfigId"`
	Height           *decimal.Decimal `json:"height,omitempty"`
	Temperature      *decimal.Decimal `json:"temperature,omitempty"`
	VaporTemperature *decimal.Decimal `json:"vaporTemperature,omitempty"`
	LiquidVolume     *decimal.Decimal `json:"liquidVolume,omitempty"`
	InternalPressure *decimal.Decimal `json:"internalPressure,omitempty"`
	DensityAt15C     *decimal.Decimal `json:"densityAt15C,omitempty"`
	FillPercentage   *decimal.Decimal `json:"fillPercentage,omitempty"`
	LiquidWeight     *decimal.Decimal `json:"liquidWeight,omitempty"` // solo MANUAL
}

// ScalarFields campos escalares comunes a autosave y cierre. Solo se escriben los informados.
type ScalarFields struct {
	Butanier        *decimal.Decimal `json:"butanier,omitempty"`
	Recuperation    *decimal.Decimal `json:"recuperation,omitempty"`
	ApproSAR        *decimal.Decimal `json:"approSAR,omitempty"`
	Ngabou          *decimal.Decimal `json:"ngabou,omitempty"`
	Exports         *decimal.Decimal `json:"exports,omitempty"`
	Divers          *decimal.Decimal `json:"divers,omitempty"`
	Observations    *string          `json:"observations,omitempty"`
	HeureDebut      *string          `json:"heureDebut,omitempty"`
	HeureFin        *string          `json:"heureFin,omitempty"`
	DensiteAmbiante *decimal.Decimal `json:"densiteAmbiante,omitempty"`
	Arrets          *int             `json:"arrets,omitempty"` // minutos de parada
}

// AutosaveRequest body para PATCH /api/sessions/:id/autosave (actualización parcial).
// Bouteilles/Reservoirs nil = no informados; si vienen, reemplazan la colección completa.
type AutosaveRequest struct {
	ScalarFields
	Appros     map[string]decimal.Decimal `json:"appros,omitempty"`
	Sorties    map[string]decimal.Decimal `json:"sorties,omitempty"`
	Bouteilles []BottleInput              `json:"bouteilles"`
	Reservoirs []TankInput                `json:"reservoirs"`
}

// AutosaveResponse respuesta del autosave.
type AutosaveResponse struct {
	SavedAt time.Time `json:"saved_at"`
}

// CloseSessionRequest body para POST /api/sessions/:id/close (envío completo).
type CloseSessionRequest struct {
	ScalarFields
	Appros     map[string]decimal.Decimal `json:"appros,omitempty"`
	Sorties    map[string]decimal.Decimal `json:"sorties,omitempty"`
	Bouteilles []BottleInput              `json:"bouteilles"`
	Reservoirs []TankInput                `json:"reservoirs"`
}

// TankReadingResponse lectura con salidas calculadas (nil si es borrador).
type TankReadingResponse struct {
	Name                   string           `json:"name"`
	TankConfigID           string           `json:"tank_config_id"`
	Mode                   string           `json:"mode"`
	Height                 *decimal.Decimal `json:"height,omitempty"`
	Temperature            *decimal.Decimal `json:"temperature,omitempty"`
	VaporTemperature       *decimal.Decimal `json:"vapor_temperature,omitempty"`
	LiquidVolume           *decimal.Decimal `json:"liquid_volume,omitempty"`
	InternalPressure       *decimal.Decimal `json:"internal_pressure,omitempty"`
	DensityAt15C           *decimal.Decimal `json:"density_at_15c,omitempty"`
	FillPercentage         *decimal.Decimal `json:"fill_percentage,omitempty"`
	LiquidCorrectionFactor *decimal.Decimal `json:"liquid_correction_factor,omitempty"`
	VaporCorrectionFactor  *decimal.Decimal `json:"vapor_correction_factor,omitempty"`
	AmbientDensity         *decimal.Decimal `json:"ambient_density,omitempty"`
	LiquidWeight           *decimal.Decimal `json:"liquid_weight,omitempty"`
	VaporWeight            *decimal.Decimal `json:"vapor_weight,omitempty"`
	TotalWeight            *decimal.Decimal `json:"total_weight,omitempty"`
	Warnings               []string         `json:"warnings,omitempty"`
}

// BottleEntryResponse botellas con tonelaje.
type BottleEntryResponse struct {
	Type     string          `json:"type"`
	Quantity int             `json:"quantity"`
	Tonnage  decimal.Decimal `json:"tonnage"`
}

// DynamicValueResponse valor de un campo dinámico.
type DynamicValueResponse struct {
	FieldID string          `json:"field_id"`
	Name    string          `json:"name"`
	Value   decimal.Decimal `json:"value"`
}

// SessionResponse sesión diaria completa.
type SessionResponse struct {
	ID                    string                 `json:"id"`
	CenterID              string                 `json:"center_id"`
	Date                  string                 `json:"date"`
	Status                string                 `json:"status"`
	InitialPhysicalStock  decimal.Decimal        `json:"initial_physical_stock"`
	Butanier              decimal.Decimal        `json:"butanier"`
	Recuperation          decimal.Decimal        `json:"recuperation"`
	ApproSAR              decimal.Decimal        `json:"appro_sar"`
	Ngabou                decimal.Decimal        `json:"ngabou"`
	Exports               decimal.Decimal        `json:"exports"`
	Divers                decimal.Decimal        `json:"divers"`
	Observations          string                 `json:"observations"`
	StartTime             *string                `json:"start_time,omitempty"`
	EndTime               *string                `json:"end_time,omitempty"`
	TotalMinutes          int                    `json:"total_minutes"`
	DowntimeMinutes       int                    `json:"downtime_minutes"`
	UsefulMinutes         int                    `json:"useful_minutes"`
	YieldPercent          decimal.Decimal        `json:"yield_percent"`
	SharedAmbientDensity  *decimal.Decimal       `json:"shared_ambient_density,omitempty"`
	TotalAppro            decimal.Decimal        `json:"total_appro"`
	TotalBulkSorties      decimal.Decimal        `json:"total_bulk_sorties"`
	TotalBottleTonnage    decimal.Decimal        `json:"total_bottle_tonnage"`
	CumulSortie           decimal.Decimal        `json:"cumul_sortie"`
	TheoreticalFinalStock decimal.Decimal        `json:"theoretical_final_stock"`
	PhysicalFinalStock    decimal.Decimal        `json:"physical_final_stock"`
	Variance              decimal.Decimal        `json:"variance"`
	VariancePercent       decimal.Decimal        `json:"variance_percent"`
	TotalBottlesProduced  int                    `json:"total_bottles_produced"`
	Tanks                 []TankReadingResponse  `json:"tanks"`
	Bottles               []BottleEntryResponse  `json:"bottles"`
	Appros                []DynamicValueResponse `json:"appros"`
	Sorties               []DynamicValueResponse `json:"sorties"`
	StartedBy             string                 `json:"started_by"`
	StartedAt             time.Time              `json:"started_at"`
	ClosedBy              string                 `json:"closed_by,omitempty"`
	ClosedAt              *time.Time             `json:"closed_at,omitempty"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

// SessionSummaryResponse fila de listado.
type SessionSummaryResponse struct {
	ID                    string          `json:"id"`
	Date                  string          `json:"date"`
	Status                string          `json:"status"`
	TheoreticalFinalStock decimal.Decimal `json:"theoretical_final_stock"`
	PhysicalFinalStock    decimal.Decimal `json:"physical_final_stock"`
	Variance              decimal.Decimal `json:"variance"`
	YieldPercent          decimal.Decimal `json:"yield_percent"`
	TotalBottlesProduced  int             `json:"total_bottles_produced"`
}

// SessionListResponse lista paginada de sesiones.
type SessionListResponse struct {
	Items []SessionSummaryResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// TankCalculateRequest body para POST /api/tanks/:id/calculate.
type TankCalculateRequest struct {
	TankInput
	DensiteAmbiante *decimal.Decimal `json:"densiteAmbiante,omitempty"`
}

// TankVolumeRequest body para POST /api/tanks/:id/volume.
type TankVolumeRequest struct {
	Height decimal.Decimal `json:"height"` // mm
}

// TankVolumeResponse volumen estimado.
type TankVolumeResponse struct {
	TankConfigID string          `json:"tank_config_id"`
	Height       decimal.Decimal `json:"height"`
	LiquidVolume decimal.Decimal `json:"liquid_volume"`
}

// CorrectionFactorsResponse respuesta de GET /api/correction-factors?temperature=.
type CorrectionFactorsResponse struct {
	Temperature decimal.Decimal `json:"temperature"`
	Liquid      decimal.Decimal `json:"liquid_factor"`
	Vapor       decimal.Decimal `json:"vapor_factor"`
	Clamped     bool            `json:"clamped"`
}
