package receipt_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentadante-api/internal/application/receipt"
	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/testutil/memstore"
)

type fakeGenerator struct {
	got receipt.Document
	err error
}

func (g *fakeGenerator) GenerateReceiptPDF(_ context.Context, doc receipt.Document) ([]byte, error) {
	g.got = doc
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestDownload(t *testing.T) {
	store := memstore.New()
	asset := store.PutAsset(memstore.FakeAsset())
	m := &entity.Movement{AssetID: asset.ID, Type: entity.MovementTypeReturn, FromPerson: "Ana", MovementDate: time.Now()}
	require.NoError(t, store.MovementRepo().Create(context.Background(), m))

	gen := &fakeGenerator{}
	uc := receipt.NewUseCase(store.MovementRepo(), gen, "")

	pdf, filename, err := uc.Download(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "acta_return_"+strconv.FormatInt(m.ID, 10)+".pdf", filename)

	assert.Equal(t, "ACTA DE DEVOLUCIÓN DE BIEN", gen.got.Title)
	assert.Equal(t, "SENA", gen.got.Institution)
	assert.Equal(t, asset.SerialNumber, gen.got.Movement.Asset.SerialNumber)
	assert.Equal(t, "Ana", gen.got.Movement.FromPerson)
}

func TestDownload_Errores(t *testing.T) {
	store := memstore.New()
	gen := &fakeGenerator{err: errors.New("sin fuentes")}
	uc := receipt.NewUseCase(store.MovementRepo(), gen, "SENA Regional")

	_, _, err := uc.Download(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)

	asset := store.PutAsset(memstore.FakeAsset())
	m := &entity.Movement{AssetID: asset.ID, Type: entity.MovementTypeAssignment, MovementDate: time.Now()}
	require.NoError(t, store.MovementRepo().Create(context.Background(), m))

	_, _, err = uc.Download(context.Background(), m.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sin fuentes")
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "ACTA DE ENTREGA DE BIEN", receipt.Title(entity.MovementTypeAssignment))
	assert.Equal(t, "ORDEN DE MANTENIMIENTO", receipt.Title(entity.MovementTypeMaintenance))
	assert.Equal(t, "CONSTANCIA DE REPARACIÓN", receipt.Title(entity.MovementTypeRepair))
	assert.Equal(t, "ACTA DE MOVIMIENTO", receipt.Title("OTRO"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "acta_maintenance_42.pdf", receipt.Filename(entity.Movement{ID: 42, Type: entity.MovementTypeMaintenance}))
}
