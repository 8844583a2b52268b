package rates

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	domrates "github.com/jhoicas/Despacho-api/internal/domain/rates"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeArticleRepo struct {
	articles []*entity.Article
}

func (r *fakeArticleRepo) Create(*entity.Article) error { return nil }
func (r *fakeArticleRepo) GetByID(string) (*entity.Article, error) { return nil, nil }
func (r *fakeArticleRepo) GetByBranchAndName(string, string) (*entity.Article, error) {
	return nil, nil
}
func (r *fakeArticleRepo) Update(*entity.Article) error { return nil }
func (r *fakeArticleRepo) ListByBranch(string, int, int) ([]*entity.Article, error) {
	return r.articles, nil
}
func (r *fakeArticleRepo) ListAllByBranch(string) ([]*entity.Article, error) {
	return r.articles, nil
}
func (r *fakeArticleRepo) Delete(string) error { return nil }

type fakeCustomerRepo struct {
	customers []*entity.Customer
}

func (r *fakeCustomerRepo) Create(*entity.Customer) error { return nil }
func (r *fakeCustomerRepo) GetByID(string) (*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) ListByBranch(string, int, int) ([]*entity.Customer, error) {
	return r.customers, nil
}
func (r *fakeCustomerRepo) ListAllByBranch(string) ([]*entity.Customer, error) {
	return r.customers, nil
}
func (r *fakeCustomerRepo) Update(*entity.Customer) error { return nil }
func (r *fakeCustomerRepo) Delete(string) error { return nil }

// fakeRateRepo guarda overrides en memoria y permite forzar fallos de Upsert
// por par customer|article.
type fakeRateRepo struct {
	mu        sync.Mutex
	overrides map[string]map[string]decimal.Decimal // articleID -> customerID -> rate
	failPairs map[string]bool                       // "customerID|articleID" -> falla
	upserts   int
}

func newFakeRateRepo() *fakeRateRepo {
	return &fakeRateRepo{
		overrides: make(map[string]map[string]decimal.Decimal),
		failPairs: make(map[string]bool),
	}
}

func (r *fakeRateRepo) set(articleID, customerID string, rate decimal.Decimal) {
	if r.overrides[articleID] == nil {
		r.overrides[articleID] = make(map[string]decimal.Decimal)
	}
	r.overrides[articleID][customerID] = rate
}

func (r *fakeRateRepo) ListByArticle(articleID string) ([]*entity.CustomerRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CustomerRate
	for customerID, rate := range r.overrides[articleID] {
		out = append(out, &entity.CustomerRate{ArticleID: articleID, CustomerID: customerID, Rate: rate})
	}
	return out, nil
}

func (r *fakeRateRepo) GetByCustomerAndArticle(customerID, articleID string) (*entity.CustomerRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rate, ok := r.overrides[articleID][customerID]
	if !ok {
		return nil, nil
	}
	return &entity.CustomerRate{ArticleID: articleID, CustomerID: customerID, Rate: rate}, nil
}

func (r *fakeRateRepo) Upsert(branchID, customerID, articleID string, rate decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.failPairs[customerID+"|"+articleID] {
		return errors.New("violación de conexión simulada")
	}
	r.set(articleID, customerID, rate)
	return nil
}

func (r *fakeRateRepo) OverriddenArticleIDs(string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for articleID, m := range r.overrides {
		if len(m) > 0 {
			out = append(out, articleID)
		}
	}
	return out, nil
}

func (r *fakeRateRepo) CountOverriddenArticles(string) (int64, error) {
	ids, _ := r.OverriddenArticleIDs("")
	return int64(len(ids)), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Armado
// ─────────────────────────────────────────────────────────────────────────────

const (
	branchID = "b1"
	userID   = "u1"
)

func setupUseCase(t *testing.T, nArticles, nCustomers int) (*BulkRateUseCase, *fakeRateRepo, *dto.BulkSessionResponse) {
	t.Helper()
	var articles []*entity.Article
	for i := 1; i <= nArticles; i++ {
		articles = append(articles, &entity.Article{
			ID:       fmt.Sprintf("a%d", i),
			BranchID: branchID,
			Name:     fmt.Sprintf("Artículo %d", i),
			BaseRate: decimal.NewFromInt(int64(100 * i)),
		})
	}
	var customers []*entity.Customer
	for i := 1; i <= nCustomers; i++ {
		customers = append(customers, &entity.Customer{
			ID:       fmt.Sprintf("c%d", i),
			BranchID: branchID,
			Name:     fmt.Sprintf("Cliente %d", i),
		})
	}
	rateRepo := newFakeRateRepo()
	uc := NewBulkRateUseCase(&fakeArticleRepo{articles: articles}, &fakeCustomerRepo{customers: customers}, rateRepo)

	session, err := uc.StartSession(branchID, userID)
	require.NoError(t, err)
	return uc, rateRepo, session
}

func selectAll(t *testing.T, uc *BulkRateUseCase, sessionID string) {
	t.Helper()
	_, err := uc.SelectAllArticles(branchID, sessionID)
	require.NoError(t, err)
	_, err = uc.SelectAllCustomers(branchID, sessionID)
	require.NoError(t, err)
}

func configurePercent(t *testing.T, uc *BulkRateUseCase, sessionID string, pct int64) {
	t.Helper()
	_, err := uc.Configure(branchID, sessionID, dto.BulkConfigRequest{
		Operation:   domrates.OpPercentage,
		Value:       decimal.NewFromInt(pct),
		ApplyToBase: true,
	})
	require.NoError(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Sesión y selección
// ─────────────────────────────────────────────────────────────────────────────

func TestStartSession_CargaUniversoYArrancaEnSelection(t *testing.T) {
	_, _, session := setupUseCase(t, 3, 2)

	assert.Equal(t, string(StateSelection), session.State)
	assert.Empty(t, session.SelectedArticles)
	assert.Len(t, session.FilteredArticles, 3)
	assert.Len(t, session.FilteredCustomers, 2)
}

func TestGetSession_OtraSucursalNoVeLaSesion(t *testing.T) {
	uc, _, session := setupUseCase(t, 1, 1)

	_, err := uc.GetSession("otra-sucursal", session.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelSession_LaSesionDejaDeExistir(t *testing.T) {
	uc, _, session := setupUseCase(t, 1, 1)

	require.NoError(t, uc.CancelSession(branchID, session.ID))
	_, err := uc.GetSession(branchID, session.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToggleArticle_AlternaSeleccion(t *testing.T) {
	uc, _, session := setupUseCase(t, 2, 1)

	resp, err := uc.ToggleArticle(branchID, session.ID, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, resp.SelectedArticles)

	resp, err = uc.ToggleArticle(branchID, session.ID, "a1")
	require.NoError(t, err)
	assert.Empty(t, resp.SelectedArticles)
}

func TestSelectAllArticles_RespetaElFiltroVigente(t *testing.T) {
	uc, rateRepo, _ := setupUseCase(t, 3, 1)
	rateRepo.set("a2", "c1", decimal.NewFromInt(50))

	// Reabrir sesión para que OverriddenArticleIDs vea el override.
	s2, err := uc.StartSession(branchID, userID)
	require.NoError(t, err)
	_, err = uc.SetFilters(branchID, s2.ID, dto.SelectionFiltersRequest{RateFilter: string(RateFilterWithRates)})
	require.NoError(t, err)

	resp, err := uc.SelectAllArticles(branchID, s2.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"a2"}, resp.SelectedArticles)
}

// ─────────────────────────────────────────────────────────────────────────────
// Preview
// ─────────────────────────────────────────────────────────────────────────────

func TestPreview_ProductoCruzadoCompleto(t *testing.T) {
	uc, _, session := setupUseCase(t, 3, 2)
	selectAll(t, uc, session.ID)
	configurePercent(t, uc, session.ID, 10)

	preview, err := uc.Preview(branchID, session.ID)
	require.NoError(t, err)

	assert.Len(t, preview.Changes, 6, "3 artículos × 2 clientes")
	assert.Equal(t, 6, preview.Creates)
	assert.Equal(t, 0, preview.Updates)
	// BaseRate de a1 es 100; +10% sobre base = 110.
	assert.True(t, preview.Changes[0].NewRate.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, ChangeStatusNew, preview.Changes[0].Status)
}

func TestPreview_DistingueAltasDeActualizaciones(t *testing.T) {
	uc, rateRepo, _ := setupUseCase(t, 2, 2)
	rateRepo.set("a1", "c1", decimal.NewFromInt(80))

	session, err := uc.StartSession(branchID, userID)
	require.NoError(t, err)
	selectAll(t, uc, session.ID)
	configurePercent(t, uc, session.ID, 10)

	preview, err := uc.Preview(branchID, session.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, preview.Updates)
	assert.Equal(t, 3, preview.Creates)
	for _, ch := range preview.Changes {
		if ch.ArticleID == "a1" && ch.CustomerID == "c1" {
			require.NotNil(t, ch.OldRate)
			assert.True(t, ch.OldRate.Equal(decimal.NewFromInt(80)))
			assert.Equal(t, ChangeStatusUpdate, ch.Status)
		}
	}
}

func TestPreview_EsIdempotente(t *testing.T) {
	uc, _, session := setupUseCase(t, 2, 2)
	selectAll(t, uc, session.ID)
	configurePercent(t, uc, session.ID, 25)

	first, err := uc.Preview(branchID, session.ID)
	require.NoError(t, err)
	second, err := uc.Preview(branchID, session.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Changes, second.Changes)
}

func TestPreview_SinConfiguracionFalla(t *testing.T) {
	uc, _, session := setupUseCase(t, 1, 1)
	selectAll(t, uc, session.ID)

	_, err := uc.Preview(branchID, session.ID)

	assert.ErrorIs(t, err, domrates.ErrNoOperation)
}

func TestPreview_SeleccionVaciaFalla(t *testing.T) {
	uc, _, session := setupUseCase(t, 2, 2)
	configurePercent(t, uc, session.ID, 10)
	// Solo artículos, ningún cliente.
	_, err := uc.ToggleArticle(branchID, session.ID, "a1")
	require.NoError(t, err)

	_, err = uc.Preview(branchID, session.ID)

	assert.ErrorIs(t, err, domain.ErrEmptySelection)
}

func TestPreview_CopyFromSinOrigenMarcaSourceMissing(t *testing.T) {
	uc, _, session := setupUseCase(t, 2, 1)
	selectAll(t, uc, session.ID)
	_, err := uc.Configure(branchID, session.ID, dto.BulkConfigRequest{
		Operation:       domrates.OpCopyFrom,
		SourceArticleID: "no-existe",
	})
	require.NoError(t, err)

	preview, err := uc.Preview(branchID, session.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, preview.Warnings)
	for _, ch := range preview.Changes {
		assert.True(t, ch.SourceMissing)
	}
}

func TestConfigure_OperacionDesconocidaFalla(t *testing.T) {
	uc, _, session := setupUseCase(t, 1, 1)

	_, err := uc.Configure(branchID, session.ID, dto.BulkConfigRequest{Operation: "duplicar"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Apply
// ─────────────────────────────────────────────────────────────────────────────

func TestApply_TodoExitosoCierraEnDone(t *testing.T) {
	uc, rateRepo, session := setupUseCase(t, 2, 2)
	selectAll(t, uc, session.ID)
	configurePercent(t, uc, session.ID, 10)

	result, err := uc.Apply(branchID, session.ID)
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, 4, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 4, rateRepo.upserts)

	resp, err := uc.GetSession(branchID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateDone), resp.State)
}

func TestApply_FalloParcialNoAbortaYCuenta(t *testing.T) {
	uc, rateRepo, _ := setupUseCase(t, 5, 1)
	rateRepo.failPairs["c1|a2"] = true
	rateRepo.failPairs["c1|a4"] = true

	session, err := uc.StartSession(branchID, userID)
	require.NoError(t, err)
	selectAll(t, uc, session.ID)
	configurePercent(t, uc, session.ID, 10)

	result, err := uc.Apply(branchID, session.ID)
	require.NoError(t, err)

	assert.Equal(t, OutcomePartial, result.Outcome)
	assert.Equal(t, 3, result.SuccessCount)
	assert.Equal(t, 2, result.ErrorCount)
	assert.Len(t, result.Failed, 2)
	assert.Equal(t, 5, rateRepo.upserts, "el fallo de un cambio no aborta los siguientes")

	// Los exitosos quedaron persistidos; los fallidos no.
	assert.NotEmpty(t, rateRepo.overrides["a1"])
	assert.Empty(t, rateRepo.overrides["a2"])
	assert.NotEmpty(t, rateRepo.overrides["a5"])

	resp, err := uc.GetSession(branchID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StatePartiallyDone), resp.State)
}

func TestApply_TodoFallidoReportaFailed(t *testing.T) {
	uc, rateRepo, _ := setupUseCase(t, 2, 1)
	rateRepo.failPairs["c1|a1"] = true
	rateRepo.failPairs["c1|a2"] = true

	session, err := uc.StartSession(branchID, userID)
	require.NoError(t, err)
	selectAll(t, uc, session.ID)
	configurePercent(t, uc, session.ID, 10)

	result, err := uc.Apply(branchID, session.ID)
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 2, result.ErrorCount)
}

func TestApply_LaSesionNoAdmiteMasEdiciones(t *testing.T) {
	uc, _, session := setupUseCase(t, 1, 1)
	selectAll(t, uc, session.ID)
	configurePercent(t, uc, session.ID, 10)

	_, err := uc.Apply(branchID, session.ID)
	require.NoError(t, err)

	_, err = uc.ToggleArticle(branchID, session.ID, "a1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Apply(branchID, session.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestApply_RefrescaLaCacheConLoPersistido(t *testing.T) {
	uc, _, session := setupUseCase(t, 1, 1)
	selectAll(t, uc, session.ID)
	configurePercent(t, uc, session.ID, 10)

	_, err := uc.Apply(branchID, session.ID)
	require.NoError(t, err)

	// Una sesión nueva ve el override recién persistido como update.
	s2, err := uc.StartSession(branchID, userID)
	require.NoError(t, err)
	selectAll(t, uc, s2.ID)
	configurePercent(t, uc, s2.ID, 10)

	preview, err := uc.Preview(branchID, s2.ID)
	require.NoError(t, err)
	require.Len(t, preview.Changes, 1)
	assert.Equal(t, ChangeStatusUpdate, preview.Changes[0].Status)
	// 110 (persistido) +10% sobre base (100) = 110 de nuevo.
	require.NotNil(t, preview.Changes[0].OldRate)
	assert.True(t, preview.Changes[0].OldRate.Equal(decimal.NewFromInt(110)))
}
