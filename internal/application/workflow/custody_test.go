package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentadante-api/internal/application/workflow"
	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/testutil/memstore"
)

func TestReturn_CierraLaSolicitudDeOrigen(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()
	ctx := context.Background()

	_, err := f.approval.Approve(ctx, cuentadante, req.ID, workflow.ApproveInput{})
	require.NoError(t, err)

	out, err := f.custody.Return(ctx, cuentadante, asset.ID, workflow.ReturnInput{
		ReturnedBy: "Laura Cuentadante",
		Notes:      "Sin novedad",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusAvailable, out.Status)
	assert.Nil(t, out.AssignedTo)
	assert.Nil(t, out.CurrentRequestID)

	got := f.store.Asset(asset.ID)
	assert.Nil(t, got.Assignment)
	assert.True(t, got.HasConsistentAssignment())

	closed := f.store.Request(req.ID)
	require.NotNil(t, closed.ActualReturnDate)
	assert.Equal(t, time.Now().Format("2006-01-02"), closed.ActualReturnDate.Format("2006-01-02"))

	movs := f.store.Movements()
	require.Len(t, movs, 2)
	ret := movs[1]
	assert.Equal(t, entity.MovementTypeReturn, ret.Type)
	assert.Equal(t, req.ApplicantName, ret.FromPerson)
	assert.Equal(t, "Laura Cuentadante", ret.AuthorizedBy)
	assert.Equal(t, "Sin novedad", ret.Notes)
	require.NotNil(t, ret.RequestID)
	assert.Equal(t, req.ID, *ret.RequestID)
}

// Bienes asignados sin referencia a la solicitud se enlazan con la última aprobada abierta.
func TestReturn_EnlazaSolicitudSinReferencia(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()
	now := time.Now()

	r := f.store.Request(req.ID)
	r.Approve("Laura", "", now)
	f.store.PutRequest(r)

	a := f.store.Asset(asset.ID)
	a.Assign(req.ApplicantName, now, now.AddDate(0, 0, 5), nil)
	f.store.PutAsset(a)

	_, err := f.custody.Return(context.Background(), administrador, asset.ID, workflow.ReturnInput{})
	require.NoError(t, err)

	assert.NotNil(t, f.store.Request(req.ID).ActualReturnDate)
	movs := f.store.Movements()
	require.Len(t, movs, 1)
	require.NotNil(t, movs[0].RequestID)
	assert.Equal(t, req.ID, *movs[0].RequestID)
	assert.Equal(t, administrador.Name, movs[0].AuthorizedBy)
}

func TestReturn_BienNoAsignado(t *testing.T) {
	f := newFixture(t)
	asset := f.store.PutAsset(memstore.FakeAsset())

	_, err := f.custody.Return(context.Background(), cuentadante, asset.ID, workflow.ReturnInput{})
	require.ErrorIs(t, err, domain.ErrAssetNotAssigned)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, f.store.Movements())
}

func TestReturn_RolNoAutorizadoYBienInexistente(t *testing.T) {
	f := newFixture(t)
	asset := f.store.PutAsset(memstore.FakeAsset())

	_, err := f.custody.Return(context.Background(), instructor, asset.ID, workflow.ReturnInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.custody.Return(context.Background(), cuentadante, 555, workflow.ReturnInput{})
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestReturn_RollbackSiFallaMovimiento(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()
	ctx := context.Background()
	_, err := f.approval.Approve(ctx, cuentadante, req.ID, workflow.ApproveInput{})
	require.NoError(t, err)

	f.store.FailNext("movements.Create")
	_, err = f.custody.Return(ctx, cuentadante, asset.ID, workflow.ReturnInput{})
	require.ErrorIs(t, err, memstore.ErrInjected)

	got := f.store.Asset(asset.ID)
	assert.Equal(t, entity.AssetStatusAssigned, got.Status)
	assert.NotNil(t, got.Assignment)
	assert.Nil(t, f.store.Request(req.ID).ActualReturnDate)
	assert.Len(t, f.store.Movements(), 1)
}

func TestMaintenanceCycle(t *testing.T) {
	f := newFixture(t)
	asset := f.store.PutAsset(memstore.FakeAsset())
	ctx := context.Background()

	out, err := f.custody.SendToMaintenance(ctx, cuentadante, asset.ID, workflow.MaintenanceInput{Reason: "Pantalla rota"})
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusMaintenance, out.Status)

	_, err = f.custody.SendToMaintenance(ctx, cuentadante, asset.ID, workflow.MaintenanceInput{})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), "un bien en mantenimiento no puede reenviarse")

	out, err = f.custody.CompleteRepair(ctx, administrador, asset.ID, workflow.MaintenanceInput{AuthorizedBy: "Taller"})
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusAvailable, out.Status)

	movs := f.store.Movements()
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeMaintenance, movs[0].Type)
	assert.Equal(t, "Pantalla rota", movs[0].Reason)
	assert.Equal(t, cuentadante.Name, movs[0].AuthorizedBy)
	assert.Equal(t, entity.MovementTypeRepair, movs[1].Type)
	assert.Equal(t, "Reparación completada", movs[1].Reason)
	assert.Equal(t, "Taller", movs[1].AuthorizedBy)
	assert.EqualValues(t, 2, f.inv.n.Load())
}

func TestMaintenance_BienAsignado(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()
	ctx := context.Background()
	_, err := f.approval.Approve(ctx, cuentadante, req.ID, workflow.ApproveInput{})
	require.NoError(t, err)

	_, err = f.custody.SendToMaintenance(ctx, cuentadante, asset.ID, workflow.MaintenanceInput{})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, entity.AssetStatusAssigned, f.store.Asset(asset.ID).Status)

	_, err = f.custody.CompleteRepair(ctx, cuentadante, asset.ID, workflow.MaintenanceInput{})
	assert.True(t, domain.IsValidation(err))

	_, err = f.custody.SendToMaintenance(ctx, gerente, asset.ID, workflow.MaintenanceInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
