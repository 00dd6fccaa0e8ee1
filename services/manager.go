package services

import (
	"orcado_server/database"
	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService    *AuthService
	CacheService   *CacheService
	EmailService   *EmailService
	HealthService  *HealthService
	ProductService *ProductService
	QuoteService   *QuoteService
	StateService   *StateService
	TokenService   *TokenService
	BlingService   *BlingService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	quoteRepo := database.NewQuoteRepository(db)
	tokenRepo := database.NewTokenRepository(db)
	userRepo := database.NewUserRepository(db)
	productRepo := database.NewProductRepository(db)

	cacheService := NewCacheService(logger, cfg)
	authService := NewAuthService(logger, cfg, userRepo)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, cfg, productRepo, cacheService)
	stateService := NewStateService(logger, cfg, cacheService)
	tokenService := NewTokenService(logger, cfg, tokenRepo)
	blingService := NewBlingService(logger, cfg, tokenService)
	contactService := NewContactService(logger, blingService)
	quoteService := NewQuoteService(logger, cfg, quoteRepo, contactService, blingService, emailService)

	return &ServiceManager{
		AuthService:    authService,
		CacheService:   cacheService,
		EmailService:   emailService,
		HealthService:  healthService,
		ProductService: productService,
		QuoteService:   quoteService,
		StateService:   stateService,
		TokenService:   tokenService,
		BlingService:   blingService,
	}
}
