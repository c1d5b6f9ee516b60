package workflow_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentadante-api/internal/application/workflow"
	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/testutil/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aprobador único
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_AsignaBienYRegistraMovimiento(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()

	out, err := f.approval.Approve(context.Background(), cuentadante, req.ID, workflow.ApproveInput{
		ApprovedBy: "Laura Cuentadante",
		Notes:      "Entregar con cargador",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, out.Status)
	assert.Equal(t, "Laura Cuentadante", out.ApprovedBy)
	assert.NotNil(t, out.ApprovalDate)

	got := f.store.Asset(asset.ID)
	assert.Equal(t, entity.AssetStatusAssigned, got.Status)
	require.NotNil(t, got.Assignment)
	assert.Equal(t, req.ApplicantName, got.Assignment.AssignedTo)
	assert.Equal(t, req.ID, *got.Assignment.RequestID)
	assert.True(t, got.Assignment.ExpectedReturnDate.Equal(*req.ExpectedReturnDate))
	assert.True(t, got.HasConsistentAssignment())

	movs := f.store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAssignment, movs[0].Type)
	assert.Equal(t, req.ApplicantName, movs[0].ToPerson)
	assert.Equal(t, "Laura Cuentadante", movs[0].AuthorizedBy)
	assert.Equal(t, req.ID, *movs[0].RequestID)
	assert.EqualValues(t, 1, f.inv.n.Load())
}

func TestApprove_AprobadorPorDefectoEsElActor(t *testing.T) {
	f := newFixture(t)
	_, req := f.pendingOn()

	out, err := f.approval.Approve(context.Background(), administrador, req.ID, workflow.ApproveInput{})
	require.NoError(t, err)
	assert.Equal(t, administrador.Name, out.ApprovedBy)
}

func TestApprove_RolNoAutorizado(t *testing.T) {
	f := newFixture(t)
	_, req := f.pendingOn()

	for _, a := range []workflow.Actor{instructor, gerente, celador} {
		_, err := f.approval.Approve(context.Background(), a, req.ID, workflow.ApproveInput{})
		assert.ErrorIs(t, err, domain.ErrForbidden, string(a.Role))
	}
	assert.Equal(t, entity.RequestStatusPending, f.store.Request(req.ID).Status)
}

func TestApprove_SolicitudYaProcesada(t *testing.T) {
	f := newFixture(t)
	_, req := f.pendingOn()

	_, err := f.approval.Approve(context.Background(), cuentadante, req.ID, workflow.ApproveInput{})
	require.NoError(t, err)

	_, err = f.approval.Approve(context.Background(), cuentadante, req.ID, workflow.ApproveInput{})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	_, err = f.approval.Reject(context.Background(), cuentadante, req.ID, workflow.RejectInput{Reason: "tarde"})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Len(t, f.store.Movements(), 1)
}

func TestApprove_BienYaNoDisponible(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()
	a := f.store.Asset(asset.ID)
	a.Status = entity.AssetStatusMaintenance
	f.store.PutAsset(a)

	_, err := f.approval.Approve(context.Background(), cuentadante, req.ID, workflow.ApproveInput{})
	assert.ErrorIs(t, err, domain.ErrAssetNotAvailable)
	assert.Equal(t, entity.RequestStatusPending, f.store.Request(req.ID).Status)
	assert.Empty(t, f.store.Movements())
}

func TestApprove_SolicitudInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.approval.Approve(context.Background(), cuentadante, 77, workflow.ApproveInput{})
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

// Si falla el registro del movimiento, la aprobación y la asignación se deshacen.
func TestApprove_RollbackSiFallaMovimiento(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()
	f.store.FailNext("movements.Create")

	_, err := f.approval.Approve(context.Background(), cuentadante, req.ID, workflow.ApproveInput{})
	require.ErrorIs(t, err, memstore.ErrInjected)

	assert.Equal(t, entity.RequestStatusPending, f.store.Request(req.ID).Status)
	got := f.store.Asset(asset.ID)
	assert.Equal(t, entity.AssetStatusAvailable, got.Status)
	assert.Nil(t, got.Assignment)
	assert.Empty(t, f.store.Movements())
	assert.Zero(t, f.inv.n.Load())
}

// Dos solicitudes sobre el mismo bien aprobadas a la vez: sólo una gana.
func TestApprove_Concurrente_UnSoloGanador(t *testing.T) {
	f := newFixture(t)
	asset := f.store.PutAsset(memstore.FakeAsset())
	const n = 8
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = f.store.PutRequest(memstore.FakePendingRequest(asset.ID)).ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.approval.Approve(context.Background(), cuentadante, id, workflow.ApproveInput{})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, domain.ErrAssetNotAvailable):
				conflicts++
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, f.store.Movements(), 1)
	assert.Equal(t, entity.AssetStatusAssigned, f.store.Asset(asset.ID).Status)
}

func TestReject_NoModificaElBien(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()

	out, err := f.approval.Reject(context.Background(), cuentadante, req.ID, workflow.RejectInput{
		RejectedBy: "Laura",
		Reason:     "Bien reservado para inventario",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRejected, out.Status)
	assert.Equal(t, "Bien reservado para inventario", out.RejectionReason)
	assert.NotNil(t, out.RejectionDate)

	assert.Equal(t, entity.AssetStatusAvailable, f.store.Asset(asset.ID).Status)
	assert.Empty(t, f.store.Movements())
}

func TestReject_MotivoRequerido(t *testing.T) {
	f := newFixture(t)
	_, req := f.pendingOn()

	_, err := f.approval.Reject(context.Background(), cuentadante, req.ID, workflow.RejectInput{Reason: " "})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación por roles
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveAsRole_CuatroRolesAsignanElBien(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()
	ctx := context.Background()

	for _, a := range []workflow.Actor{cuentadante, gerente, administrador} {
		out, err := f.approval.ApproveAsRole(ctx, a, req.ID, string(a.Role), "")
		require.NoError(t, err)
		assert.Equal(t, entity.RequestStatusPending, out.Status)
		assert.Equal(t, entity.AssetStatusAvailable, f.store.Asset(asset.ID).Status)
	}

	out, err := f.approval.ApproveAsRole(ctx, celador, req.ID, "celador", "Salida verificada")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, out.Status)
	assert.Equal(t, entity.RequestStatusApproved, out.FinalStatus)
	assert.Equal(t, entity.RequestStatusApproved, out.StatusWorkflow.Cuentadante)
	assert.Equal(t, entity.RequestStatusApproved, out.StatusWorkflow.Celador)

	got := f.store.Asset(asset.ID)
	assert.Equal(t, entity.AssetStatusAssigned, got.Status)
	assert.Equal(t, req.ApplicantName, got.AssignedTo())

	movs := f.store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAssignment, movs[0].Type)
	assert.Equal(t, celador.Name, movs[0].AuthorizedBy)
}

func TestRejectAsRole_RechazaDeInmediato(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()
	ctx := context.Background()

	_, err := f.approval.ApproveAsRole(ctx, cuentadante, req.ID, "Cuentadante", "")
	require.NoError(t, err)

	out, err := f.approval.RejectAsRole(ctx, gerente, req.ID, "Gerente", "No corresponde al programa")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRejected, out.Status)
	assert.Equal(t, "Gerente", out.RejectedByRole)
	assert.Equal(t, "No corresponde al programa", out.RejectionReason)

	_, err = f.approval.ApproveAsRole(ctx, celador, req.ID, "Celador", "")
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Equal(t, entity.AssetStatusAvailable, f.store.Asset(asset.ID).Status)
}

func TestApproveAsRole_RolYaDecidio(t *testing.T) {
	f := newFixture(t)
	_, req := f.pendingOn()
	ctx := context.Background()

	_, err := f.approval.ApproveAsRole(ctx, gerente, req.ID, "Gerente", "")
	require.NoError(t, err)

	_, err = f.approval.ApproveAsRole(ctx, gerente, req.ID, "Gerente", "")
	assert.ErrorIs(t, err, domain.ErrRoleAlreadyDecided)

	_, err = f.approval.RejectAsRole(ctx, gerente, req.ID, "Gerente", "cambio de opinión")
	assert.ErrorIs(t, err, domain.ErrRoleAlreadyDecided)
}

func TestApproveAsRole_AutorizacionDelRol(t *testing.T) {
	f := newFixture(t)
	_, req := f.pendingOn()
	ctx := context.Background()

	_, err := f.approval.ApproveAsRole(ctx, gerente, req.ID, "Celador", "")
	assert.ErrorIs(t, err, domain.ErrForbidden, "el rol del cuerpo debe coincidir con el del token")

	_, err = f.approval.ApproveAsRole(ctx, instructor, req.ID, "Instructor", "")
	assert.ErrorIs(t, err, domain.ErrForbidden, "instructor no es aprobador")

	_, err = f.approval.ApproveAsRole(ctx, gerente, req.ID, "Rector", "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = f.approval.RejectAsRole(ctx, gerente, req.ID, "Gerente", "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), "el rechazo por rol exige motivo")

	assert.False(t, f.store.Request(req.ID).Approvals.Started())
}

func TestApprove_ConflictoConFlujoPorRoles(t *testing.T) {
	f := newFixture(t)
	_, req := f.pendingOn()
	ctx := context.Background()

	_, err := f.approval.ApproveAsRole(ctx, gerente, req.ID, "Gerente", "")
	require.NoError(t, err)

	_, err = f.approval.Approve(ctx, cuentadante, req.ID, workflow.ApproveInput{})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.approval.Reject(ctx, cuentadante, req.ID, workflow.RejectInput{Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// La última aprobación sobre un bien que dejó de estar disponible se deshace completa.
func TestApproveAsRole_UltimaAprobacionSinBienDisponible(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()
	ctx := context.Background()

	for _, a := range []workflow.Actor{cuentadante, gerente, administrador} {
		_, err := f.approval.ApproveAsRole(ctx, a, req.ID, string(a.Role), "")
		require.NoError(t, err)
	}
	a := f.store.Asset(asset.ID)
	a.Status = entity.AssetStatusRetired
	f.store.PutAsset(a)

	_, err := f.approval.ApproveAsRole(ctx, celador, req.ID, "Celador", "")
	assert.ErrorIs(t, err, domain.ErrAssetNotAvailable)
	assert.Equal(t, entity.RequestStatusPending, f.store.Request(req.ID).Approvals.Celador)
	assert.Equal(t, entity.RequestStatusPending, f.store.Request(req.ID).Status)
}
