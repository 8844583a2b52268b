package rates

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	domrates "github.com/jhoicas/Despacho-api/internal/domain/rates"
)

// Estados de una sesión de cambio masivo. Las transiciones hacia atrás
// (preview → configuration → selection) están permitidas; una vez iniciado el
// apply la sesión solo avanza a done o partially_done.
type State string

const (
	StateSelection     State = "selection"
	StateConfiguration State = "configuration"
	StatePreview       State = "preview"
	StateApplying      State = "applying"
	StateDone          State = "done"
	StatePartiallyDone State = "partially_done"
)

// Session es una sesión efímera de cambio masivo de tarifas: selección de
// artículos y clientes, configuración de la operación, preview y apply.
// Se descarta al aplicar o cancelar; nada se persiste antes de StateApplying.
type Session struct {
	ID       string
	BranchID string
	UserID   string

	mu        sync.Mutex
	state     State
	articles  *OrderedSet
	customers *OrderedSet
	filters   SelectionFilters
	cfg       *domrates.BulkConfig

	articleByID  map[string]*entity.Article
	articleList  []*entity.Article
	customerByID map[string]*entity.Customer
	customerList []*entity.Customer
	overridden   map[string]struct{}

	cache    *RateCache
	warnings []string

	createdAt time.Time
}

// newSession arma la sesión con el universo ya cargado.
func newSession(id, branchID, userID string, articles []*entity.Article, customers []*entity.Customer, overriddenIDs []string, fetch FetchFunc) *Session {
	articleByID := make(map[string]*entity.Article, len(articles))
	for _, a := range articles {
		articleByID[a.ID] = a
	}
	customerByID := make(map[string]*entity.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.ID] = c
	}
	overridden := make(map[string]struct{}, len(overriddenIDs))
	for _, id := range overriddenIDs {
		overridden[id] = struct{}{}
	}
	return &Session{
		ID:           id,
		BranchID:     branchID,
		UserID:       userID,
		state:        StateSelection,
		articles:     NewOrderedSet(),
		customers:    NewOrderedSet(),
		filters:      SelectionFilters{RateFilter: RateFilterAll},
		articleByID:  articleByID,
		articleList:  articles,
		customerByID: customerByID,
		customerList: customers,
		overridden:   overridden,
		cache:        NewRateCache(fetch),
		createdAt:    time.Now(),
	}
}

// State devuelve el estado actual.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// editable verifica que la sesión acepte ediciones de selección/configuración.
func (s *Session) editable() error {
	switch s.state {
	case StateApplying, StateDone, StatePartiallyDone:
		return domain.ErrConflict
	}
	return nil
}

// ToggleArticle alterna un artículo en la selección. Al seleccionarlo por
// primera vez dispara el fetch de sus overrides (cacheado, con dedup); el
// fallo del fetch no es fatal: queda como advertencia y se asume sin tarifas.
func (s *Session) ToggleArticle(id string) error {
	s.mu.Lock()
	if err := s.editable(); err != nil {
		s.mu.Unlock()
		return err
	}
	selected := s.articles.Toggle(id)
	s.state = StateSelection
	needFetch := selected && !s.cache.Cached(id)
	s.mu.Unlock()

	if needFetch {
		if _, err := s.cache.GetOrFetch(id); err != nil {
			s.addWarning(fmt.Sprintf("no se pudieron cargar las tarifas del artículo %s; se asume sin overrides", id))
		}
	}
	return nil
}

// ToggleCustomer alterna un cliente en la selección (sin efectos colaterales:
// los overrides se consultan por artículo, no por cliente).
func (s *Session) ToggleCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	s.customers.Toggle(id)
	s.state = StateSelection
	return nil
}

// SetFilters reemplaza los filtros de búsqueda de la sesión.
func (s *Session) SetFilters(f SelectionFilters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	if f.RateFilter == "" {
		f.RateFilter = RateFilterAll
	}
	s.filters = f
	return nil
}

// SelectAllArticles reemplaza la selección de artículos por todos los que
// pasan el filtro vigente (no el universo completo) y trae sus overrides en
// paralelo, deduplicando contra la caché.
func (s *Session) SelectAllArticles() error {
	s.mu.Lock()
	if err := s.editable(); err != nil {
		s.mu.Unlock()
		return err
	}
	filtered := FilterArticles(s.articleList, s.filters, s.overridden)
	ids := make([]string, 0, len(filtered))
	for _, a := range filtered {
		ids = append(ids, a.ID)
	}
	s.articles.Replace(ids)
	s.state = StateSelection
	s.mu.Unlock()

	s.prefetchRates(ids)
	return nil
}

// SelectAllCustomers reemplaza la selección de clientes por los filtrados.
func (s *Session) SelectAllCustomers() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	filtered := FilterCustomers(s.customerList, s.filters)
	ids := make([]string, 0, len(filtered))
	for _, c := range filtered {
		ids = append(ids, c.ID)
	}
	s.customers.Replace(ids)
	s.state = StateSelection
	return nil
}

// ClearArticles vacía la selección de artículos.
func (s *Session) ClearArticles() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	s.articles.Clear()
	s.state = StateSelection
	return nil
}

// ClearCustomers vacía la selección de clientes.
func (s *Session) ClearCustomers() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	s.customers.Clear()
	s.state = StateSelection
	return nil
}

// prefetchRates trae los overrides de los artículos no cacheados en paralelo.
// Las cargas son independientes entre claves; la caché deduplica fetches en
// vuelo del mismo artículo.
func (s *Session) prefetchRates(ids []string) {
	var pending []string
	for _, id := range ids {
		if !s.cache.Cached(id) {
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return
	}
	var wg sync.WaitGroup
	for _, id := range pending {
		wg.Add(1)
		go func(articleID string) {
			defer wg.Done()
			if _, err := s.cache.GetOrFetch(articleID); err != nil {
				s.addWarning(fmt.Sprintf("no se pudieron cargar las tarifas del artículo %s; se asume sin overrides", articleID))
			}
		}(id)
	}
	wg.Wait()
}

func (s *Session) addWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = append(s.warnings, msg)
}

// Warnings devuelve y limpia las advertencias acumuladas.
func (s *Session) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.warnings
	s.warnings = nil
	return out
}

// Configure fija la operación masiva de la sesión. Valida la configuración
// pero no exige selección: eso es precondición del preview/apply.
func (s *Session) Configure(cfg domrates.BulkConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = &cfg
	s.state = StateConfiguration
	return nil
}

// checkPreconditions aplica las reglas que bloquean preview y apply: ambas
// selecciones no vacías y configuración presente y válida.
func (s *Session) checkPreconditions() error {
	if s.cfg == nil {
		return domrates.ErrNoOperation
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	if s.articles.Len() == 0 || s.customers.Len() == 0 {
		return domain.ErrEmptySelection
	}
	return nil
}

// Preview calcula la lista de cambios para la selección y configuración
// vigentes. Sin I/O; se puede repetir cuantas veces cambien selección o
// configuración y el resultado es idéntico para entradas idénticas.
func (s *Session) Preview() ([]RateChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, err
	}
	if err := s.checkPreconditions(); err != nil {
		return nil, err
	}
	changes := s.computeChangesLocked()
	s.state = StatePreview
	return changes, nil
}

// computeChangesLocked arma el producto cruzado con la caché vigente.
// Requiere s.mu tomado.
func (s *Session) computeChangesLocked() []RateChange {
	ratesFor := func(articleID string) map[string]decimal.Decimal {
		overrides, ok := s.cache.Peek(articleID)
		if !ok {
			return nil // fetch fallido o nunca disparado: sin overrides conocidos
		}
		m := make(map[string]decimal.Decimal, len(overrides))
		for _, r := range overrides {
			m[r.CustomerID] = r.Rate
		}
		return m
	}
	return buildChanges(s.articles.IDs(), s.customers.IDs(), s.articleByID, s.customerByID, ratesFor, *s.cfg)
}

// BeginApply valida precondiciones, recalcula los cambios y pasa la sesión a
// StateApplying. A partir de aquí no hay vuelta a preview.
func (s *Session) BeginApply() ([]RateChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateApplying:
		return nil, domain.ErrConflict
	case StateDone, StatePartiallyDone:
		return nil, domain.ErrConflict
	}
	if err := s.checkPreconditions(); err != nil {
		return nil, err
	}
	changes := s.computeChangesLocked()
	s.state = StateApplying
	return changes, nil
}

// FinishApply cierra la sesión según el tally de errores.
func (s *Session) FinishApply(errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if errorCount == 0 {
		s.state = StateDone
	} else {
		s.state = StatePartiallyDone
	}
}

// Snapshot devuelve el estado observable para la capa HTTP.
func (s *Session) Snapshot() (state State, selectedArticles, selectedCustomers, filteredArticles, filteredCustomers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state = s.state
	selectedArticles = s.articles.IDs()
	selectedCustomers = s.customers.IDs()
	for _, a := range FilterArticles(s.articleList, s.filters, s.overridden) {
		filteredArticles = append(filteredArticles, a.ID)
	}
	for _, c := range FilterCustomers(s.customerList, s.filters) {
		filteredCustomers = append(filteredCustomers, c.ID)
	}
	return
}
