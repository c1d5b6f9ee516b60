package usecase_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/internal/application/usecase"
	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/testutil/memstore"
)

type invalidations struct{ n int }

func (i *invalidations) Invalidate() { i.n++ }

func validAsset() dto.CreateAssetRequest {
	price := decimal.NewFromInt(int64(gofakeit.Number(100_000, 9_000_000)))
	return dto.CreateAssetRequest{
		Name:            "Portátil " + gofakeit.Company(),
		SerialNumber:    gofakeit.Regex("SN[0-9]{8}"),
		InventoryNumber: gofakeit.Regex("INV[0-9]{8}"),
		Brand:           "Lenovo",
		PurchaseDate:    "2025-02-10",
		PurchasePrice:   &price,
	}
}

func TestAssetCreate_ValoresPorDefecto(t *testing.T) {
	store := memstore.New()
	inv := &invalidations{}
	uc := usecase.NewAssetUseCase(store.Assets(), inv)

	out, err := uc.Create(context.Background(), entity.RoleCuentadante, validAsset())
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, entity.AssetStatusAvailable, out.Status)
	assert.Equal(t, entity.DefaultAssetCategory, out.Category)
	assert.Equal(t, entity.DefaultAssetCondition, out.Condition)
	require.NotNil(t, out.PurchaseDate)
	assert.Equal(t, "2025-02-10", *out.PurchaseDate)
	assert.Nil(t, out.AssignedTo)
	assert.Equal(t, 1, inv.n)

	got, err := uc.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.SerialNumber, got.SerialNumber)
}

func TestAssetCreate_Duplicado(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewAssetUseCase(store.Assets(), nil)
	in := validAsset()

	_, err := uc.Create(context.Background(), entity.RoleAdministrador, in)
	require.NoError(t, err)

	dup := validAsset()
	dup.SerialNumber = in.SerialNumber
	_, err = uc.Create(context.Background(), entity.RoleAdministrador, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	dup = validAsset()
	dup.InventoryNumber = in.InventoryNumber
	_, err = uc.Create(context.Background(), entity.RoleAdministrador, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAssetCreate_RolNoAutorizado(t *testing.T) {
	uc := usecase.NewAssetUseCase(memstore.New().Assets(), nil)

	for _, role := range []entity.Role{entity.RoleInstructor, entity.RoleGerente, entity.RoleCelador, ""} {
		_, err := uc.Create(context.Background(), role, validAsset())
		assert.ErrorIs(t, err, domain.ErrForbidden, string(role))
	}
}

func TestAssetCreate_Validaciones(t *testing.T) {
	uc := usecase.NewAssetUseCase(memstore.New().Assets(), nil)
	neg := decimal.NewFromInt(-1)

	cases := map[string]func(*dto.CreateAssetRequest){
		"sin nombre":         func(in *dto.CreateAssetRequest) { in.Name = "" },
		"sin serie":          func(in *dto.CreateAssetRequest) { in.SerialNumber = " " },
		"sin inventario":     func(in *dto.CreateAssetRequest) { in.InventoryNumber = "" },
		"estado desconocido": func(in *dto.CreateAssetRequest) { in.Status = "Perdido" },
		"nace asignado":      func(in *dto.CreateAssetRequest) { in.Status = entity.AssetStatusAssigned },
		"fecha inválida":     func(in *dto.CreateAssetRequest) { in.PurchaseDate = "10-02-2025" },
		"garantía inválida":  func(in *dto.CreateAssetRequest) { in.WarrantyExpiry = "mañana" },
		"precio negativo":    func(in *dto.CreateAssetRequest) { in.PurchasePrice = &neg },
		"valor negativo":     func(in *dto.CreateAssetRequest) { in.CurrentValue = &neg },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validAsset()
			mutate(&in)
			_, err := uc.Create(context.Background(), entity.RoleCuentadante, in)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), err.Error())
		})
	}
}

func TestAssetCreate_EnMantenimiento(t *testing.T) {
	uc := usecase.NewAssetUseCase(memstore.New().Assets(), nil)
	in := validAsset()
	in.Status = entity.AssetStatusMaintenance

	out, err := uc.Create(context.Background(), entity.RoleCuentadante, in)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusMaintenance, out.Status)
}

func TestAssetList_OrdenadoPorNombre(t *testing.T) {
	store := memstore.New()
	for _, name := range []string{"Video beam", "Cámara", "Portátil"} {
		a := memstore.FakeAsset()
		a.Name = name
		store.PutAsset(a)
	}
	uc := usecase.NewAssetUseCase(store.Assets(), nil)

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Cámara", out[0].Name)
	assert.Equal(t, "Video beam", out[2].Name)

	_, err = uc.GetByID(context.Background(), 1234)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}
