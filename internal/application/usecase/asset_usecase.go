package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

// Invalidator descarta agregados en caché tras una escritura.
type Invalidator interface {
	Invalidate()
}

// AssetUseCase directorio de bienes: listado, consulta y registro.
// La custodia (asignación, devolución, mantenimiento) se maneja en el flujo de solicitudes.
type AssetUseCase struct {
	repo        repository.AssetRepository
	invalidator Invalidator
}

// NewAssetUseCase construye el caso de uso. invalidator puede ser nil.
func NewAssetUseCase(repo repository.AssetRepository, invalidator Invalidator) *AssetUseCase {
	return &AssetUseCase{repo: repo, invalidator: invalidator}
}

// List retorna todos los bienes ordenados por nombre.
func (uc *AssetUseCase) List(ctx context.Context) ([]dto.AssetResponse, error) {
	assets, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, dto.ToAssetResponse(a))
	}
	return out, nil
}

// GetByID obtiene un bien por ID.
func (uc *AssetUseCase) GetByID(ctx context.Context, id int64) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrAssetNotFound
	}
	out := dto.ToAssetResponse(asset)
	return &out, nil
}

// Create registra un bien. Serial e inventario duplicados retornan ErrDuplicate.
// Un bien nuevo no puede nacer asignado: no hay custodio ni solicitud que lo respalde.
func (uc *AssetUseCase) Create(ctx context.Context, role entity.Role, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if role != entity.RoleCuentadante && role != entity.RoleAdministrador {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	serial := strings.TrimSpace(in.SerialNumber)
	inventory := strings.TrimSpace(in.InventoryNumber)
	if name == "" || serial == "" || inventory == "" {
		return nil, domain.Invalid("name, serial_number e inventory_number son requeridos")
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.AssetStatusAvailable
	}
	if !entity.IsValidAssetStatus(status) {
		return nil, domain.Invalid(fmt.Sprintf("estado inválido: %s (Available, Assigned, Maintenance, Retired)", status))
	}
	if status == entity.AssetStatusAssigned {
		return nil, domain.Invalid("un bien no puede registrarse como Assigned; use el flujo de solicitudes")
	}

	purchaseDate, err := dto.ParseDate(strings.TrimSpace(in.PurchaseDate))
	if err != nil {
		return nil, domain.Invalid("purchase_date debe tener formato YYYY-MM-DD")
	}
	warranty, err := dto.ParseDate(strings.TrimSpace(in.WarrantyExpiry))
	if err != nil {
		return nil, domain.Invalid("warranty_expiry debe tener formato YYYY-MM-DD")
	}
	if (in.PurchasePrice != nil && in.PurchasePrice.IsNegative()) ||
		(in.CurrentValue != nil && in.CurrentValue.IsNegative()) {
		return nil, domain.Invalid("los valores del bien no pueden ser negativos")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.DefaultAssetCategory
	}
	condition := strings.TrimSpace(in.Condition)
	if condition == "" {
		condition = entity.DefaultAssetCondition
	}

	now := time.Now()
	asset := &entity.Asset{
		Name:            name,
		Description:     strings.TrimSpace(in.Description),
		SerialNumber:    serial,
		InventoryNumber: inventory,
		Brand:           strings.TrimSpace(in.Brand),
		Model:           strings.TrimSpace(in.Model),
		Category:        category,
		Condition:       condition,
		Location:        strings.TrimSpace(in.Location),
		PurchaseDate:    purchaseDate,
		WarrantyExpiry:  warranty,
		PurchasePrice:   in.PurchasePrice,
		CurrentValue:    in.CurrentValue,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, asset); err != nil {
		return nil, err
	}
	if uc.invalidator != nil {
		uc.invalidator.Invalidate()
	}
	out := dto.ToAssetResponse(asset)
	return &out, nil
}
