package services

import (
	portsrepo "github.com/SscSPs/collections_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil, in which case imports do not emit events.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.CollectionAgency = NewCollectionAgencyService(repos.CollectionAgencyRepo)
	container.Client = NewClientService(repos.ClientRepo, repos.CollectionAgencyRepo)
	container.Consumer = NewConsumerService(repos.ConsumerRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithClientReader(repos.ClientRepo),
		WithConsumerReader(repos.ConsumerRepo),
	)

	container.Import = NewImportService(ImportDeps{
		Agencies:  repos.CollectionAgencyRepo,
		Clients:   repos.ClientRepo,
		Consumers: repos.ConsumerRepo,
		Accounts:  repos.AccountRepo,
		Publisher: publisher,
	})

	return container
}
