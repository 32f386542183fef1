package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tekeliveli/stoktakip/internal/application/dto"
	"github.com/tekeliveli/stoktakip/internal/application/inventory"
	"github.com/tekeliveli/stoktakip/internal/domain"
	"github.com/tekeliveli/stoktakip/internal/domain/entity"
	domaininv "github.com/tekeliveli/stoktakip/internal/domain/inventory"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

// MaterialUseCase registro de materiales. El stock se mueve solo vía libro y salidas.
type MaterialUseCase struct {
	repo     repository.MaterialRepository
	txRunner inventory.TxRunner
	cache    inventory.StockCache
}

// NewMaterialUseCase construye el caso de uso. cache puede ser nil.
func NewMaterialUseCase(repo repository.MaterialRepository, txRunner inventory.TxRunner, cache inventory.StockCache) *MaterialUseCase {
	if cache == nil {
		cache = inventory.NopStockCache{}
	}
	return &MaterialUseCase{repo: repo, txRunner: txRunner, cache: cache}
}

// Register crea un material nuevo; el ID lo asigna el almacenamiento.
func (uc *MaterialUseCase) Register(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.InitialStock == nil {
		return nil, fmt.Errorf("%w: initial_stock requerido", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	m := &entity.Material{
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Unit:         strings.TrimSpace(in.Unit),
		InitialStock: *in.InitialStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validateMaterial(m); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// List devuelve todos los materiales en orden de registro.
func (uc *MaterialUseCase) List(ctx context.Context) ([]dto.MaterialResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMaterialResponse(m))
	}
	return out, nil
}

// Get obtiene un material por ID.
func (uc *MaterialUseCase) Get(ctx context.Context, id int64) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: material %d", domain.ErrNotFound, id)
	}
	return toMaterialResponse(m), nil
}

// Update aplica una actualización parcial bajo el bloqueo del material.
// Un cambio de initial_stock no puede dejar el stock actual en negativo.
func (uc *MaterialUseCase) Update(ctx context.Context, id int64, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	var updated *entity.Material
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		movRepo repository.StockMovementRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error {
		m, err := materialRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("%w: material %d", domain.ErrNotFound, id)
		}
		if in.Name != nil {
			m.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			m.Description = strings.TrimSpace(*in.Description)
		}
		if in.Unit != nil {
			m.Unit = strings.TrimSpace(*in.Unit)
		}
		if in.InitialStock != nil {
			m.InitialStock = *in.InitialStock
		}
		if err := validateMaterial(m); err != nil {
			return err
		}
		if in.InitialStock != nil {
			produced, sold, err := movRepo.TotalsByMaterial(ctx, id)
			if err != nil {
				return err
			}
			withdrawn, err := withdrawalRepo.TotalByMaterial(ctx, id)
			if err != nil {
				return err
			}
			current := domaininv.CurrentStock(entity.StockBalance{
				Material: *m, TotalProduced: produced, TotalSold: sold, TotalWithdrawn: withdrawn,
			})
			if current < 0 {
				return fmt.Errorf("%w: initial_stock %d deja el stock actual en %d", domain.ErrInvalidInput, m.InitialStock, current)
			}
		}
		m.UpdatedAt = time.Now().UTC()
		if err := materialRepo.Update(ctx, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = inventory.InvalidateStock(ctx, uc.cache, id)
	return toMaterialResponse(updated), nil
}

func validateMaterial(m *entity.Material) error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	case m.Unit == "":
		return fmt.Errorf("%w: unit requerido", domain.ErrInvalidInput)
	case m.InitialStock < 0:
		return fmt.Errorf("%w: initial_stock debe ser >= 0", domain.ErrInvalidInput)
	case m.InitialStock > domaininv.MaxQuantity:
		return fmt.Errorf("%w: initial_stock no puede superar %d", domain.ErrInvalidInput, domaininv.MaxQuantity)
	case len([]rune(m.Name)) > entity.MaterialNameMaxLen:
		return fmt.Errorf("%w: name excede %d caracteres", domain.ErrInvalidInput, entity.MaterialNameMaxLen)
	case len([]rune(m.Description)) > entity.MaterialDescriptionMaxLen:
		return fmt.Errorf("%w: description excede %d caracteres", domain.ErrInvalidInput, entity.MaterialDescriptionMaxLen)
	case len([]rune(m.Unit)) > entity.MaterialUnitMaxLen:
		return fmt.Errorf("%w: unit excede %d caracteres", domain.ErrInvalidInput, entity.MaterialUnitMaxLen)
	}
	return nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		InitialStock: m.InitialStock,
		Unit:         m.Unit,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
