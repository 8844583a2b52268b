// Package rates orquesta el cambio masivo de tarifas por cliente: sesiones de
// selección, preview del producto cruzado artículos × clientes y apply con
// tolerancia a fallos parciales (una escritura por par, sin transacción
// cruzada ni rollback).
package rates

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
	domrates "github.com/jhoicas/Despacho-api/internal/domain/rates"
)

// sessionTTL tiempo de vida de una sesión abandonada antes de purgarla.
const sessionTTL = 30 * time.Minute

// Resultados agregados del apply.
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
)

// BulkRateUseCase administra las sesiones de cambio masivo y ejecuta el apply
// contra la persistencia.
type BulkRateUseCase struct {
	mu       sync.Mutex
	sessions map[string]*Session

	articleRepo  repository.ArticleRepository
	customerRepo repository.CustomerRepository
	rateRepo     repository.CustomerRateRepository
}

// NewBulkRateUseCase construye el caso de uso.
func NewBulkRateUseCase(
	articleRepo repository.ArticleRepository,
	customerRepo repository.CustomerRepository,
	rateRepo repository.CustomerRateRepository,
) *BulkRateUseCase {
	return &BulkRateUseCase{
		sessions:     make(map[string]*Session),
		articleRepo:  articleRepo,
		customerRepo: customerRepo,
		rateRepo:     rateRepo,
	}
}

// StartSession carga el universo de artículos y clientes de la sucursal y
// abre una sesión nueva en estado selection.
func (uc *BulkRateUseCase) StartSession(branchID, userID string) (*dto.BulkSessionResponse, error) {
	articles, err := uc.articleRepo.ListAllByBranch(branchID)
	if err != nil {
		return nil, err
	}
	customers, err := uc.customerRepo.ListAllByBranch(branchID)
	if err != nil {
		return nil, err
	}
	overridden, err := uc.rateRepo.OverriddenArticleIDs(branchID)
	if err != nil {
		return nil, err
	}

	session := newSession(uuid.New().String(), branchID, userID, articles, customers, overridden, uc.rateRepo.ListByArticle)

	uc.mu.Lock()
	uc.pruneLocked()
	uc.sessions[session.ID] = session
	uc.mu.Unlock()

	return toSessionResponse(session), nil
}

// pruneLocked elimina sesiones abandonadas. Requiere uc.mu tomado.
func (uc *BulkRateUseCase) pruneLocked() {
	cutoff := time.Now().Add(-sessionTTL)
	for id, s := range uc.sessions {
		if s.createdAt.Before(cutoff) {
			delete(uc.sessions, id)
		}
	}
}

// session busca la sesión y verifica que pertenezca a la sucursal.
func (uc *BulkRateUseCase) session(branchID, sessionID string) (*Session, error) {
	uc.mu.Lock()
	s, ok := uc.sessions[sessionID]
	uc.mu.Unlock()
	if !ok || s.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// GetSession devuelve el estado observable de la sesión.
func (uc *BulkRateUseCase) GetSession(branchID, sessionID string) (*dto.BulkSessionResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// CancelSession descarta la sesión. Los fetches en vuelo terminan solos y su
// resultado simplemente no se consulta más.
func (uc *BulkRateUseCase) CancelSession(branchID, sessionID string) error {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return err
	}
	uc.mu.Lock()
	delete(uc.sessions, s.ID)
	uc.mu.Unlock()
	return nil
}

// ToggleArticle alterna un artículo de la selección.
func (uc *BulkRateUseCase) ToggleArticle(branchID, sessionID, articleID string) (*dto.BulkSessionResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.ToggleArticle(articleID); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// ToggleCustomer alterna un cliente de la selección.
func (uc *BulkRateUseCase) ToggleCustomer(branchID, sessionID, customerID string) (*dto.BulkSessionResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.ToggleCustomer(customerID); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// SetFilters cambia los filtros de búsqueda.
func (uc *BulkRateUseCase) SetFilters(branchID, sessionID string, in dto.SelectionFiltersRequest) (*dto.BulkSessionResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	f := SelectionFilters{
		ArticleQuery:  in.ArticleQuery,
		RateFilter:    RateFilter(in.RateFilter),
		CustomerQuery: in.CustomerQuery,
	}
	if err := s.SetFilters(f); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// SelectAllArticles selecciona todos los artículos filtrados.
func (uc *BulkRateUseCase) SelectAllArticles(branchID, sessionID string) (*dto.BulkSessionResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.SelectAllArticles(); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// SelectAllCustomers selecciona todos los clientes filtrados.
func (uc *BulkRateUseCase) SelectAllCustomers(branchID, sessionID string) (*dto.BulkSessionResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.SelectAllCustomers(); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// ClearArticles vacía la selección de artículos.
func (uc *BulkRateUseCase) ClearArticles(branchID, sessionID string) (*dto.BulkSessionResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.ClearArticles(); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// ClearCustomers vacía la selección de clientes.
func (uc *BulkRateUseCase) ClearCustomers(branchID, sessionID string) (*dto.BulkSessionResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.ClearCustomers(); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// Configure fija la operación masiva a partir del request HTTP.
func (uc *BulkRateUseCase) Configure(branchID, sessionID string, in dto.BulkConfigRequest) (*dto.BulkSessionResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	cfg, err := toBulkConfig(in)
	if err != nil {
		return nil, err
	}
	if err := s.Configure(cfg); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// Preview calcula y devuelve la lista de cambios pendientes.
func (uc *BulkRateUseCase) Preview(branchID, sessionID string) (*dto.BulkPreviewResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	changes, err := s.Preview()
	if err != nil {
		return nil, err
	}
	return toPreviewResponse(s.ID, changes), nil
}

// Apply persiste los cambios: un upsert por par, secuencial, con aislamiento
// por cambio (un fallo no aborta ni revierte a los demás). Al terminar
// invalida y recarga la caché de los artículos afectados para que un preview
// posterior refleje lo persistido.
func (uc *BulkRateUseCase) Apply(branchID, sessionID string) (*dto.BulkApplyResponse, error) {
	s, err := uc.session(branchID, sessionID)
	if err != nil {
		return nil, err
	}
	changes, err := s.BeginApply()
	if err != nil {
		return nil, err
	}

	var failed []dto.FailedChangeResponse
	successCount := 0
	affected := make(map[string]struct{})
	for _, ch := range changes {
		affected[ch.ArticleID] = struct{}{}
		if err := uc.rateRepo.Upsert(branchID, ch.CustomerID, ch.ArticleID, ch.NewRate); err != nil {
			log.Warn().Err(err).
				Str("session", s.ID).
				Str("article", ch.ArticleID).
				Str("customer", ch.CustomerID).
				Msg("fallo al persistir cambio de tarifa")
			failed = append(failed, dto.FailedChangeResponse{
				ArticleID:  ch.ArticleID,
				CustomerID: ch.CustomerID,
				Error:      err.Error(),
			})
			continue
		}
		successCount++
	}

	// Refrescar la caché de los artículos tocados. Con éxito parcial también:
	// "suficientemente bueno para refrescar".
	if successCount > 0 {
		ids := make([]string, 0, len(affected))
		for id := range affected {
			ids = append(ids, id)
		}
		s.cache.Invalidate(ids...)
		s.prefetchRates(ids)
	}

	errorCount := len(failed)
	s.FinishApply(errorCount)

	outcome := OutcomeSuccess
	switch {
	case errorCount > 0 && successCount > 0:
		outcome = OutcomePartial
	case errorCount > 0:
		outcome = OutcomeFailed
	}
	log.Info().
		Str("session", s.ID).
		Int("success", successCount).
		Int("errors", errorCount).
		Str("outcome", outcome).
		Msg("cambio masivo de tarifas aplicado")

	return &dto.BulkApplyResponse{
		SessionID:    s.ID,
		Outcome:      outcome,
		SuccessCount: successCount,
		ErrorCount:   errorCount,
		Failed:       failed,
	}, nil
}

// ── Conversiones ──────────────────────────────────────────────────────────────

// toBulkConfig convierte el request plano en la variante de operación del dominio.
func toBulkConfig(in dto.BulkConfigRequest) (domrates.BulkConfig, error) {
	var op domrates.Operation
	switch in.Operation {
	case domrates.OpPercentage:
		op = domrates.Percentage{Value: in.Value}
	case domrates.OpFixedAmount:
		op = domrates.FixedAmount{Value: in.Value}
	case domrates.OpSetRate:
		op = domrates.SetRate{Value: in.Value}
	case domrates.OpCopyFrom:
		op = domrates.CopyFrom{SourceArticleID: in.SourceArticleID}
	default:
		return domrates.BulkConfig{}, domain.ErrInvalidInput
	}
	cfg := domrates.BulkConfig{
		Op:          op,
		ApplyToBase: in.ApplyToBase,
		MinRate:     in.MinRate,
		MaxRate:     in.MaxRate,
		RoundTo:     in.RoundTo,
	}
	return cfg, cfg.Validate()
}

func toSessionResponse(s *Session) *dto.BulkSessionResponse {
	state, selArticles, selCustomers, fArticles, fCustomers := s.Snapshot()
	return &dto.BulkSessionResponse{
		ID:                s.ID,
		State:             string(state),
		SelectedArticles:  selArticles,
		SelectedCustomers: selCustomers,
		FilteredArticles:  fArticles,
		FilteredCustomers: fCustomers,
		Warnings:          s.Warnings(),
	}
}

func toPreviewResponse(sessionID string, changes []RateChange) *dto.BulkPreviewResponse {
	out := &dto.BulkPreviewResponse{
		SessionID: sessionID,
		Changes:   make([]dto.RateChangeResponse, 0, len(changes)),
	}
	for _, ch := range changes {
		if ch.OldRate == nil {
			out.Creates++
		} else {
			out.Updates++
		}
		if ch.SourceMissing {
			out.Warnings++
		}
		out.Changes = append(out.Changes, dto.RateChangeResponse{
			ArticleID:     ch.ArticleID,
			ArticleName:   ch.ArticleName,
			CustomerID:    ch.CustomerID,
			CustomerName:  ch.CustomerName,
			OldRate:       ch.OldRate,
			NewRate:       ch.NewRate,
			Operation:     ch.Operation,
			Value:         ch.Value,
			Status:        ch.Status(),
			AbsDelta:      ch.AbsDelta,
			PctDelta:      ch.PctDelta,
			SourceMissing: ch.SourceMissing,
		})
	}
	return out
}
