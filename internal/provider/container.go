package provider

import (
	"github.com/land-deals/backend/internal/authz"
	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/queue"
	"github.com/land-deals/backend/internal/repository"
	"github.com/land-deals/backend/internal/service"
	"github.com/land-deals/backend/internal/storage"

	"gorm.io/gorm"
)

// Container wires repositories and services once, at startup.
type Container struct {
	Config *config.Config
	DB     *gorm.DB
	Store  *storage.LocalStore
	Queue  *queue.Client
	Authz  *authz.Service

	AuthService    *service.AuthService
	DealService    *service.DealService
	PaymentService *service.PaymentService
	LedgerService  *service.LedgerService
}

// NewContainer builds the dependency graph.
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	store := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxSize, cfg.Upload.AllowedExtensions, cfg.Upload.AllowedTypes)
	queueClient := queue.NewClient(cfg.Queue)

	authzService, err := authz.NewService(db)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	dealRepo := repository.NewDealRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	partyRepo := repository.NewPaymentPartyRepository(db)
	proofRepo := repository.NewPaymentProofRepository(db)

	return &Container{
		Config: cfg,
		DB:     db,
		Store:  store,
		Queue:  queueClient,
		Authz:  authzService,

		AuthService:    service.NewAuthService(userRepo, cfg.JWT),
		DealService:    service.NewDealService(dealRepo, userRepo, store, queueClient),
		PaymentService: service.NewPaymentService(paymentRepo, partyRepo, proofRepo, dealRepo, store, queueClient),
		LedgerService:  service.NewLedgerService(paymentRepo, partyRepo, proofRepo, dealRepo, store, cfg.Ledger),
	}, nil
}

// Close releases container resources.
func (c *Container) Close() {
	if c.Queue != nil {
		_ = c.Queue.Close()
	}
}
