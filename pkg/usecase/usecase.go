package usecase

import (
	"time"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model/config"
)

type UseCases struct {
	repo        interfaces.Repository
	store       interfaces.DocumentStore
	statusCodes *config.StatusCodes
	notifier    interfaces.Notifier
	clock       func() time.Time

	Sync   *SyncUseCase
	Status *StatusUseCase
	Auth   AuthUseCaseInterface
}

type Option func(*UseCases)

func WithStatusCodes(codes *config.StatusCodes) Option {
	return func(uc *UseCases) {
		uc.statusCodes = codes
	}
}

// WithNotifier is called after every failed reconciliation run
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

// WithAuth replaces the session based manager gate
func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

// WithClock replaces time.Now, used by tests to control timestamps
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, store interfaces.DocumentStore, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		store:       store,
		statusCodes: config.DefaultStatusCodes(),
		clock:       time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Status = NewStatusUseCase(repo, uc.statusCodes, uc.clock)
	uc.Sync = NewSyncUseCase(repo, store, uc.Status, uc.notifier, uc.clock)
	if uc.Auth == nil {
		uc.Auth = NewAuthUseCase(repo, uc.statusCodes.ManagerUserTypeID, WithAuthClock(uc.clock))
	}

	return uc
}

// StatusCodes returns the status code ids in use
func (uc *UseCases) StatusCodes() *config.StatusCodes {
	return uc.statusCodes
}

// Repository returns the primary store
func (uc *UseCases) Repository() interfaces.Repository {
	return uc.repo
}
