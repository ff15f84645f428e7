package converter

import (
	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/usecase"
)

// ProductInfoConverter преобразует снимки товара между usecase и моделью Redis.
type ProductInfoConverter interface {
	ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel
	ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo
	ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel
}

// CartLineConverter преобразует позиции корзины между domain и моделью Redis.
type CartLineConverter interface {
	ToArrRedisModel(entities []domain.CartLine) []CartLineRedisModel
	ToArrEntity(models []CartLineRedisModel) []domain.CartLine
}

// UserConverter преобразует пользователей между domain и моделью Redis.
type UserConverter interface {
	ToRedisModel(entity *domain.User) *UserRedisModel
	ToEntity(model *UserRedisModel) *domain.User
}

type ProductInfoConverterImpl struct{}

func (ProductInfoConverterImpl) ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel {
	if entity == nil {
		return nil
	}

	return &ProductInfoRedisModel{
		ID:            entity.ID,
		Name:          entity.Name,
		Description:   entity.Description,
		Image:         entity.Image,
		OriginalPrice: entity.OriginalPrice,
		CurrentPrice:  entity.CurrentPrice,
		Rating:        entity.Rating,
		Badge:         entity.Badge,
		Category:      entity.Category,
		InStock:       entity.InStock,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}
}

func (ProductInfoConverterImpl) ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo {
	if model == nil {
		return nil
	}

	return &usecase.ProductInfo{
		ID:            model.ID,
		Name:          model.Name,
		Description:   model.Description,
		Image:         model.Image,
		OriginalPrice: model.OriginalPrice,
		CurrentPrice:  model.CurrentPrice,
		Rating:        model.Rating,
		Badge:         model.Badge,
		Category:      model.Category,
		InStock:       model.InStock,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func (c ProductInfoConverterImpl) ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel {
	models := make([]ProductInfoRedisModel, 0, len(entities))
	for i := range entities {
		models = append(models, *c.ToRedisModel(&entities[i]))
	}

	return models
}

type CartLineConverterImpl struct {
	products ProductInfoConverterImpl
}

func (c CartLineConverterImpl) ToArrRedisModel(entities []domain.CartLine) []CartLineRedisModel {
	models := make([]CartLineRedisModel, 0, len(entities))
	for i := range entities {
		models = append(models, CartLineRedisModel{
			Product:  *c.products.ToRedisModel(usecase.ProductInfoFromDomain(&entities[i].Product)),
			Quantity: entities[i].Quantity,
		})
	}

	return models
}

func (c CartLineConverterImpl) ToArrEntity(models []CartLineRedisModel) []domain.CartLine {
	entities := make([]domain.CartLine, 0, len(models))
	for i := range models {
		entities = append(entities, domain.CartLine{
			Product:  *usecase.DomainFromProductInfo(c.products.ToUseCase(&models[i].Product)),
			Quantity: models[i].Quantity,
		})
	}

	return entities
}

type UserConverterImpl struct{}

func (UserConverterImpl) ToRedisModel(entity *domain.User) *UserRedisModel {
	if entity == nil {
		return nil
	}

	return &UserRedisModel{
		ID:             entity.ID,
		Name:           entity.Name,
		Email:          entity.Email,
		Role:           entity.Role,
		HashedPassword: entity.HashedPassword,
		CreatedAt:      entity.CreatedAt,
		UpdatedAt:      entity.UpdatedAt,
	}
}

func (UserConverterImpl) ToEntity(model *UserRedisModel) *domain.User {
	if model == nil {
		return nil
	}

	return &domain.User{
		ID:             model.ID,
		Name:           model.Name,
		Email:          model.Email,
		Role:           model.Role,
		HashedPassword: model.HashedPassword,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
