package production

import (
	"context"
	"fmt"

	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
)

// ReportUseCase genera el informe PDF de una sesión cerrada.
type ReportUseCase struct {
	sessionRepo repository.SessionRepository
	centerRepo  repository.CenterRepository
	generator   SessionReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(sessionRepo repository.SessionRepository, centerRepo repository.CenterRepository, generator SessionReportGenerator) *ReportUseCase {
	return &ReportUseCase{sessionRepo: sessionRepo, centerRepo: centerRepo, generator: generator}
}

// SessionPDF devuelve el PDF y un nombre de archivo sugerido.
func (uc *ReportUseCase) SessionPDF(ctx context.Context, centerID, sessionID string) ([]byte, string, error) {
	s, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if err := checkScope(s, centerID); err != nil {
		return nil, "", err
	}
	if s.Status != entity.SessionStatusClosed && s.Status != entity.SessionStatusArchived {
		return nil, "", fmt.Errorf("%w: el informe solo existe para sesiones cerradas (estado %s)", domain.ErrInvalidInput, s.Status)
	}
	center, err := uc.centerRepo.GetByID(ctx, s.CenterID)
	if err != nil {
		return nil, "", err
	}
	if center == nil {
		center = &entity.Center{ID: s.CenterID, Name: s.CenterID}
	}
	pdf, err := uc.generator.GenerateSessionPDF(ctx, center, s)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("produccion_%s_%s.pdf", center.Code, s.Date.Format(dateLayout))
	if center.Code == "" {
		name = fmt.Sprintf("produccion_%s.pdf", s.Date.Format(dateLayout))
	}
	return pdf, name, nil
}
