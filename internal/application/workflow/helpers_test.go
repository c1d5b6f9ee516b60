package workflow_test

import (
	"sync/atomic"
	"testing"

	"github.com/jhoicas/cuentadante-api/internal/application/workflow"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/testutil/memstore"
	"github.com/jhoicas/cuentadante-api/pkg/logger"
)

const testLoanDays = 15

type countingInvalidator struct{ n atomic.Int32 }

func (c *countingInvalidator) Invalidate() { c.n.Add(1) }

type fixture struct {
	store    *memstore.Store
	inv      *countingInvalidator
	intake   *workflow.IntakeUseCase
	approval *workflow.ApprovalUseCase
	custody  *workflow.CustodyUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	inv := &countingInvalidator{}
	log := logger.Nop()
	return &fixture{
		store:    store,
		inv:      inv,
		intake:   workflow.NewIntakeUseCase(store, store.Requests(), inv, testLoanDays, log),
		approval: workflow.NewApprovalUseCase(store, inv, testLoanDays, log),
		custody:  workflow.NewCustodyUseCase(store, inv, log),
	}
}

// pendingOn registra un bien disponible y una solicitud pendiente sobre él.
func (f *fixture) pendingOn() (*entity.Asset, *entity.Request) {
	asset := f.store.PutAsset(memstore.FakeAsset())
	req := f.store.PutRequest(memstore.FakePendingRequest(asset.ID))
	return asset, req
}

func actor(role entity.Role) workflow.Actor {
	return workflow.Actor{UserID: 1, Name: "Usuario " + string(role), Role: role}
}

var (
	cuentadante   = actor(entity.RoleCuentadante)
	gerente       = actor(entity.RoleGerente)
	administrador = actor(entity.RoleAdministrador)
	celador       = actor(entity.RoleCelador)
	instructor    = actor(entity.RoleInstructor)
)
