package memstore

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
)

// FakeAsset construye un bien disponible con datos aleatorios.
func FakeAsset() *entity.Asset {
	now := time.Now()
	price := decimal.NewFromInt(int64(gofakeit.Number(500_000, 5_000_000)))
	return &entity.Asset{
		Name:            gofakeit.Company() + " " + gofakeit.Noun(),
		Description:     gofakeit.Sentence(6),
		SerialNumber:    gofakeit.Regex("SN-[A-Z]{3}[0-9]{6}"),
		InventoryNumber: fmt.Sprintf("INV-%s", gofakeit.Regex("[0-9]{8}")),
		Brand:           gofakeit.Company(),
		Model:           gofakeit.Regex("[A-Z]{2}-[0-9]{3}"),
		Category:        entity.DefaultAssetCategory,
		Condition:       entity.DefaultAssetCondition,
		Location:        "Ambiente " + gofakeit.Regex("[0-9]{3}"),
		PurchasePrice:   &price,
		Status:          entity.AssetStatusAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// FakePendingRequest construye una solicitud pendiente sobre assetID.
func FakePendingRequest(assetID int64) *entity.Request {
	now := time.Now()
	req := entity.NewRequest(assetID, gofakeit.Name(), gofakeit.JobTitle(), gofakeit.Sentence(8), entity.PriorityMedium, now)
	expected := entity.DateOnly(now).AddDate(0, 0, 15)
	req.ExpectedReturnDate = &expected
	return req
}

// FakeUser construye un usuario activo con el rol y la contraseña dados.
func FakeUser(role entity.Role, password string) *entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &entity.User{
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		Role:         role,
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
	}
}
