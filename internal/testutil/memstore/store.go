// Package memstore implementa los puertos de repositorio en memoria para pruebas.
// Store.Run serializa las transacciones y restaura el estado previo si la función falla.
package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

// ErrInjected error de infraestructura simulado por FailNext.
var ErrInjected = errors.New("memstore: falla inyectada")

// Store guarda bienes, solicitudes, movimientos y usuarios.
type Store struct {
	mu        sync.Mutex
	assets    map[int64]*entity.Asset
	requests  map[int64]*entity.Request
	movements []*entity.Movement
	users     map[int64]*entity.User
	nextID    int64
	failOn    string
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		assets:   map[int64]*entity.Asset{},
		requests: map[int64]*entity.Request{},
		users:    map[int64]*entity.User{},
	}
}

// FailNext hace fallar la próxima llamada a la operación indicada (p. ej. "movements.Create").
func (s *Store) FailNext(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn = op
}

func (s *Store) fail(op string) error {
	if s.failOn == op {
		s.failOn = ""
		return ErrInjected
	}
	return nil
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// ── Acceso directo (fixtures y aserciones) ────────────────────────────────────

// PutAsset inserta o reemplaza un bien y le asigna ID si no tiene.
func (s *Store) PutAsset(a *entity.Asset) *entity.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.id()
	}
	s.assets[a.ID] = cloneAsset(a)
	return a
}

// PutRequest inserta o reemplaza una solicitud.
func (s *Store) PutRequest(r *entity.Request) *entity.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.id()
	}
	s.requests[r.ID] = cloneRequest(r)
	return r
}

// PutUser inserta o reemplaza un usuario.
func (s *Store) PutUser(u *entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	cp := *u
	s.users[u.ID] = &cp
	return u
}

// Asset retorna una copia del bien o nil.
func (s *Store) Asset(id int64) *entity.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.assets[id]; ok {
		return cloneAsset(a)
	}
	return nil
}

// Request retorna una copia de la solicitud o nil.
func (s *Store) Request(id int64) *entity.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.requests[id]; ok {
		return cloneRequest(r)
	}
	return nil
}

// Movements retorna copias de los movimientos en orden de inserción.
func (s *Store) Movements() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Movement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, *m)
	}
	return out
}

// ── Puertos ───────────────────────────────────────────────────────────────────

// Assets retorna el repositorio de bienes fuera de transacción.
func (s *Store) Assets() repository.AssetRepository { return &assetRepo{s: s} }

// Requests retorna el repositorio de solicitudes fuera de transacción.
func (s *Store) Requests() repository.RequestRepository { return &requestRepo{s: s} }

// MovementRepo retorna el repositorio de movimientos fuera de transacción.
func (s *Store) MovementRepo() repository.MovementRepository { return &movementRepo{s: s} }

// Users retorna el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Dashboard retorna el repositorio de consultas del tablero.
func (s *Store) Dashboard() repository.DashboardRepository { return &dashboardRepo{s: s} }

// Run ejecuta fn con el store bloqueado; si fn falla, restaura el estado anterior.
func (s *Store) Run(ctx context.Context, fn func(
	assets repository.AssetRepository,
	requests repository.RequestRepository,
	movements repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapAssets := make(map[int64]*entity.Asset, len(s.assets))
	for k, v := range s.assets {
		snapAssets[k] = cloneAsset(v)
	}
	snapRequests := make(map[int64]*entity.Request, len(s.requests))
	for k, v := range s.requests {
		snapRequests[k] = cloneRequest(v)
	}
	snapMovements := len(s.movements)
	snapID := s.nextID

	err := fn(&assetRepo{s: s, tx: true}, &requestRepo{s: s, tx: true}, &movementRepo{s: s, tx: true})
	if err != nil {
		s.assets = snapAssets
		s.requests = snapRequests
		s.movements = s.movements[:snapMovements]
		s.nextID = snapID
	}
	return err
}

// lock toma el mutex salvo dentro de Run, que ya lo tiene.
func (s *Store) lock(tx bool) func() {
	if tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ── Assets ────────────────────────────────────────────────────────────────────

type assetRepo struct {
	s  *Store
	tx bool
}

func (r *assetRepo) Create(_ context.Context, a *entity.Asset) error {
	defer r.s.lock(r.tx)()
	if err := r.s.fail("assets.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.assets {
		if strings.EqualFold(existing.SerialNumber, a.SerialNumber) ||
			strings.EqualFold(existing.InventoryNumber, a.InventoryNumber) {
			return domain.ErrDuplicate
		}
	}
	a.ID = r.s.id()
	r.s.assets[a.ID] = cloneAsset(a)
	return nil
}

func (r *assetRepo) GetByID(_ context.Context, id int64) (*entity.Asset, error) {
	defer r.s.lock(r.tx)()
	if a, ok := r.s.assets[id]; ok {
		return cloneAsset(a), nil
	}
	return nil, nil
}

func (r *assetRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Asset, error) {
	return r.GetByID(ctx, id)
}

func (r *assetRepo) List(_ context.Context) ([]*entity.Asset, error) {
	defer r.s.lock(r.tx)()
	out := make([]*entity.Asset, 0, len(r.s.assets))
	for _, a := range r.s.assets {
		out = append(out, cloneAsset(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *assetRepo) UpdateCustody(_ context.Context, a *entity.Asset) error {
	defer r.s.lock(r.tx)()
	if err := r.s.fail("assets.UpdateCustody"); err != nil {
		return err
	}
	if _, ok := r.s.assets[a.ID]; !ok {
		return domain.ErrAssetNotFound
	}
	if !a.HasConsistentAssignment() {
		return errors.New("memstore: custodia inconsistente con el estado")
	}
	r.s.assets[a.ID] = cloneAsset(a)
	return nil
}

// ── Requests ──────────────────────────────────────────────────────────────────

type requestRepo struct {
	s  *Store
	tx bool
}

func (r *requestRepo) Create(_ context.Context, req *entity.Request) error {
	defer r.s.lock(r.tx)()
	if err := r.s.fail("requests.Create"); err != nil {
		return err
	}
	req.ID = r.s.id()
	r.s.requests[req.ID] = cloneRequest(req)
	return nil
}

func (r *requestRepo) GetByID(_ context.Context, id int64) (*entity.Request, error) {
	defer r.s.lock(r.tx)()
	if req, ok := r.s.requests[id]; ok {
		return cloneRequest(req), nil
	}
	return nil, nil
}

func (r *requestRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Request, error) {
	return r.GetByID(ctx, id)
}

func (r *requestRepo) List(_ context.Context) ([]repository.RequestWithAsset, error) {
	defer r.s.lock(r.tx)()
	out := make([]repository.RequestWithAsset, 0, len(r.s.requests))
	for _, req := range r.s.requests {
		row := repository.RequestWithAsset{Request: *cloneRequest(req)}
		if a, ok := r.s.assets[req.AssetID]; ok {
			row.Asset = summary(a)
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestDate.Equal(out[j].RequestDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].RequestDate.After(out[j].RequestDate)
	})
	return out, nil
}

func (r *requestRepo) UpdateDecision(_ context.Context, req *entity.Request) error {
	defer r.s.lock(r.tx)()
	if err := r.s.fail("requests.UpdateDecision"); err != nil {
		return err
	}
	if _, ok := r.s.requests[req.ID]; !ok {
		return domain.ErrRequestNotFound
	}
	r.s.requests[req.ID] = cloneRequest(req)
	return nil
}

func (r *requestRepo) SetActualReturnDate(_ context.Context, id int64, date time.Time) error {
	defer r.s.lock(r.tx)()
	req, ok := r.s.requests[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	d := date
	req.ActualReturnDate = &d
	return nil
}

func (r *requestRepo) FindOpenApprovedByAsset(_ context.Context, assetID int64) (*entity.Request, error) {
	defer r.s.lock(r.tx)()
	var found *entity.Request
	for _, req := range r.s.requests {
		if req.AssetID != assetID || req.Status != entity.RequestStatusApproved || req.ActualReturnDate != nil {
			continue
		}
		if found == nil || req.ApprovalDate != nil && found.ApprovalDate != nil && req.ApprovalDate.After(*found.ApprovalDate) {
			found = req
		}
	}
	if found == nil {
		return nil, nil
	}
	return cloneRequest(found), nil
}

// ── Movements ─────────────────────────────────────────────────────────────────

type movementRepo struct {
	s  *Store
	tx bool
}

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	defer r.s.lock(r.tx)()
	if err := r.s.fail("movements.Create"); err != nil {
		return err
	}
	m.ID = r.s.id()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id int64) (*repository.MovementWithAsset, error) {
	defer r.s.lock(r.tx)()
	for _, m := range r.s.movements {
		if m.ID == id {
			row := r.withAsset(m)
			return &row, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]repository.MovementWithAsset, error) {
	defer r.s.lock(r.tx)()
	out := make([]repository.MovementWithAsset, 0, len(r.s.movements))
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.AssetID != 0 && m.AssetID != f.AssetID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		out = append(out, r.withAsset(m))
	}
	return out, nil
}

func (r *movementRepo) withAsset(m *entity.Movement) repository.MovementWithAsset {
	row := repository.MovementWithAsset{Movement: *m}
	if a, ok := r.s.assets[m.AssetID]; ok {
		row.Asset = summary(a)
	}
	return row
}

// ── Users ─────────────────────────────────────────────────────────────────────

type userRepo struct {
	s *Store
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	defer r.s.lock(false)()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.s.lock(false)()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) List(_ context.Context) ([]*entity.User, error) {
	defer r.s.lock(false)()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

type dashboardRepo struct {
	s *Store
}

func (r *dashboardRepo) CountAssets(_ context.Context) (repository.AssetCounts, error) {
	defer r.s.lock(false)()
	var c repository.AssetCounts
	var priced int64
	for _, a := range r.s.assets {
		c.Total++
		switch a.Status {
		case entity.AssetStatusAvailable:
			c.Available++
		case entity.AssetStatusAssigned:
			c.Assigned++
		case entity.AssetStatusMaintenance:
			c.Maintenance++
		case entity.AssetStatusRetired:
			c.Retired++
		}
		if a.CurrentValue != nil {
			c.TotalValue = c.TotalValue.Add(*a.CurrentValue)
			priced++
		}
	}
	if priced > 0 {
		c.AvgValue = c.TotalValue.Div(decimal.NewFromInt(priced)).Round(2)
	}
	return c, nil
}

func (r *dashboardRepo) CountRequests(_ context.Context) (repository.RequestCounts, error) {
	defer r.s.lock(false)()
	var c repository.RequestCounts
	for _, req := range r.s.requests {
		c.Total++
		switch req.Status {
		case entity.RequestStatusPending:
			c.Pending++
		case entity.RequestStatusApproved:
			c.Approved++
		case entity.RequestStatusRejected:
			c.Rejected++
		}
	}
	return c, nil
}

func (r *dashboardRepo) CountMovements(_ context.Context) (int64, error) {
	defer r.s.lock(false)()
	return int64(len(r.s.movements)), nil
}

func (r *dashboardRepo) ListExpiring(_ context.Context, until time.Time) ([]repository.ExpiringAssetResult, error) {
	defer r.s.lock(false)()
	var out []repository.ExpiringAssetResult
	for _, a := range r.s.assets {
		if a.Status != entity.AssetStatusAssigned || a.Assignment == nil {
			continue
		}
		if a.Assignment.ExpectedReturnDate.After(until) {
			continue
		}
		out = append(out, repository.ExpiringAssetResult{
			AssetID:            a.ID,
			Name:               a.Name,
			SerialNumber:       a.SerialNumber,
			InventoryNumber:    a.InventoryNumber,
			Brand:              a.Brand,
			Model:              a.Model,
			Location:           a.Location,
			AssignedTo:         a.Assignment.AssignedTo,
			AssignmentDate:     a.Assignment.AssignmentDate,
			ExpectedReturnDate: a.Assignment.ExpectedReturnDate,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpectedReturnDate.Before(out[j].ExpectedReturnDate) })
	return out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cloneAsset(a *entity.Asset) *entity.Asset {
	cp := *a
	if a.Assignment != nil {
		asg := *a.Assignment
		if a.Assignment.RequestID != nil {
			id := *a.Assignment.RequestID
			asg.RequestID = &id
		}
		cp.Assignment = &asg
	}
	return &cp
}

func cloneRequest(r *entity.Request) *entity.Request {
	cp := *r
	return &cp
}

func summary(a *entity.Asset) repository.AssetSummary {
	return repository.AssetSummary{
		Name:            a.Name,
		SerialNumber:    a.SerialNumber,
		InventoryNumber: a.InventoryNumber,
		Brand:           a.Brand,
		Model:           a.Model,
		Category:        a.Category,
		Status:          a.Status,
		Location:        a.Location,
		Condition:       a.Condition,
	}
}
