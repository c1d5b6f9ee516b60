package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/testutil/memstore"
)

func ptr[T any](v T) *T { return &v }

func TestIntake_Create_SolicitudPendiente(t *testing.T) {
	f := newFixture(t)
	asset := f.store.PutAsset(memstore.FakeAsset())

	out, err := f.intake.Create(context.Background(), instructor, dto.CreateRequestRequest{
		AssetID:       ptr(asset.ID),
		ApplicantName: "Ana Instructora",
		Reason:        "Formación en redes",
		Priority:      entity.PriorityHigh,
	})
	require.NoError(t, err)

	assert.NotZero(t, out.ID)
	assert.Equal(t, entity.RequestStatusPending, out.Status)
	assert.Equal(t, entity.RequestStatusPending, out.StatusWorkflow.Celador)
	assert.Equal(t, entity.PriorityHigh, out.Priority)

	want := entity.DateOnly(time.Now()).AddDate(0, 0, testLoanDays).Format(dto.DateLayout)
	require.NotNil(t, out.ExpectedReturnDate)
	assert.Equal(t, want, *out.ExpectedReturnDate, "sin fecha se aplica el plazo por defecto")

	assert.Equal(t, entity.AssetStatusAvailable, f.store.Asset(asset.ID).Status, "el bien no cambia hasta la aprobación")
	assert.Empty(t, f.store.Movements())
	assert.EqualValues(t, 1, f.inv.n.Load())
}

func TestIntake_Create_SolicitanteDelToken(t *testing.T) {
	f := newFixture(t)
	asset := f.store.PutAsset(memstore.FakeAsset())

	out, err := f.intake.Create(context.Background(), instructor, dto.CreateRequestRequest{
		AssetID: ptr(asset.ID),
		Reason:  "Práctica",
	})
	require.NoError(t, err)
	assert.Equal(t, instructor.Name, out.ApplicantName)
	assert.Equal(t, entity.PriorityMedium, out.Priority)
}

func TestIntake_Create_FechaDeHoyEsValida(t *testing.T) {
	f := newFixture(t)
	asset := f.store.PutAsset(memstore.FakeAsset())
	today := time.Now().Format(dto.DateLayout)

	out, err := f.intake.Create(context.Background(), instructor, dto.CreateRequestRequest{
		AssetID:            ptr(asset.ID),
		Reason:             "Práctica",
		ExpectedReturnDate: today,
	})
	require.NoError(t, err)
	assert.Equal(t, today, *out.ExpectedReturnDate)
}

func TestIntake_Create_Validaciones(t *testing.T) {
	f := newFixture(t)
	asset := f.store.PutAsset(memstore.FakeAsset())
	yesterday := time.Now().AddDate(0, 0, -2).Format(dto.DateLayout)

	cases := []struct {
		name string
		in   dto.CreateRequestRequest
	}{
		{"sin asset_id", dto.CreateRequestRequest{Reason: "x"}},
		{"asset_id cero", dto.CreateRequestRequest{AssetID: ptr(int64(0)), Reason: "x"}},
		{"sin motivo", dto.CreateRequestRequest{AssetID: ptr(asset.ID), Reason: "  "}},
		{"prioridad inválida", dto.CreateRequestRequest{AssetID: ptr(asset.ID), Reason: "x", Priority: "Urgente"}},
		{"fecha mal formada", dto.CreateRequestRequest{AssetID: ptr(asset.ID), Reason: "x", ExpectedReturnDate: "15/06/2026"}},
		{"fecha pasada", dto.CreateRequestRequest{AssetID: ptr(asset.ID), Reason: "x", ExpectedReturnDate: yesterday}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.intake.Create(context.Background(), instructor, tc.in)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), "se esperaba error de validación: %v", err)
		})
	}
	list, err := f.intake.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIntake_Create_BienNoDisponible(t *testing.T) {
	f := newFixture(t)
	a := memstore.FakeAsset()
	a.Status = entity.AssetStatusMaintenance
	asset := f.store.PutAsset(a)

	_, err := f.intake.Create(context.Background(), instructor, dto.CreateRequestRequest{
		AssetID: ptr(asset.ID),
		Reason:  "Práctica",
	})
	require.ErrorIs(t, err, domain.ErrAssetNotAvailable)
	assert.Contains(t, err.Error(), asset.Name)
	assert.Contains(t, err.Error(), asset.SerialNumber)
	assert.Contains(t, err.Error(), entity.AssetStatusMaintenance)
	assert.Zero(t, f.inv.n.Load())

	list, err := f.intake.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "no debe quedar solicitud para un bien no disponible")
}

func TestIntake_Create_BienInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.intake.Create(context.Background(), instructor, dto.CreateRequestRequest{
		AssetID: ptr(int64(999)),
		Reason:  "Práctica",
	})
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestIntake_Create_FallaDePersistencia(t *testing.T) {
	f := newFixture(t)
	asset := f.store.PutAsset(memstore.FakeAsset())
	f.store.FailNext("requests.Create")

	_, err := f.intake.Create(context.Background(), instructor, dto.CreateRequestRequest{
		AssetID: ptr(asset.ID),
		Reason:  "Práctica",
	})
	require.ErrorIs(t, err, memstore.ErrInjected)

	list, err := f.intake.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIntake_ListAndGet(t *testing.T) {
	f := newFixture(t)
	asset, req := f.pendingOn()

	list, err := f.intake.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, req.ID, list[0].ID)
	assert.Equal(t, asset.Name, list[0].AssetName)
	assert.Equal(t, asset.SerialNumber, list[0].AssetSerial)

	got, err := f.intake.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ApplicantName, got.ApplicantName)

	_, err = f.intake.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}
