package services

import (
	"context"
	"encoding/json"
	"time"

	"orcado_server/database"
	"orcado_server/lib"
	"orcado_server/structs"
	"orcado_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

const productCacheKey = "catalog:products"

// ProductService serves the storefront catalog. The full list is cached in
// Redis since it changes rarely and is read on every storefront visit.
type ProductService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  *database.ProductRepository
	cache  *CacheService
}

func NewProductService(logger *gecho.Logger, cfg *structs.Config, store *database.ProductRepository, cache *CacheService) *ProductService {
	return &ProductService{
		logger: logger,
		cfg:    cfg,
		store:  store,
		cache:  cache,
	}
}

// ListProducts returns the catalog, from cache when possible. Cache failures
// fall back to the database.
func (ps *ProductService) ListProducts(ctx context.Context) ([]tables.Product, error) {
	if cached, err := ps.cache.Get(ctx, productCacheKey); err == nil && cached != "" {
		var products []tables.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
		ps.logger.Warn("Discarding corrupt product cache entry")
	}

	products, err := ps.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(products); err == nil {
		if err := ps.cache.Set(ctx, productCacheKey, string(encoded), ps.cfg.Cache.ProductTTL); err != nil {
			ps.logger.Warn("Failed to cache product list", gecho.Field("error", err))
		}
	}

	return products, nil
}

func (ps *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	return ps.store.GetByID(ctx, id)
}

// CreateProduct stores a new catalog entry and invalidates the list cache.
func (ps *ProductService) CreateProduct(ctx context.Context, request *structs.ProductRequest, createdBy *uuid.UUID) (*tables.Product, error) {
	product := &tables.Product{
		Id:           uuid.New(),
		Name:         request.Name,
		Description:  request.Description,
		PriceCents:   lib.ToCents(request.Price),
		Category:     request.Category,
		MainImageUrl: request.MainImageUrl,
		CreatedById:  createdBy,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := ps.store.Insert(ctx, product); err != nil {
		return nil, err
	}

	if err := ps.cache.Delete(ctx, productCacheKey); err != nil {
		ps.logger.Warn("Failed to invalidate product cache", gecho.Field("error", err))
	}

	ps.logger.Info("Product created",
		gecho.Field("product_id", product.Id),
		gecho.Field("name", product.Name))

	return product, nil
}
