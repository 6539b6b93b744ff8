package services

import (
	portsrepo "github.com/finage-app/finage_core/internal/core/ports/repositories"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
)

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Registry first: the ledger and scheduler consult it for point rules.
	// The method-removal cascade deletes through the record repository
	// directly; ledger observers are advisory, so bypassing them there is
	// acceptable.
	container.Registry = NewRegistryService(
		repos.SettingsRepo,
		WithRecordCascade(repos.RecordRepo),
	)

	container.Ledger = NewLedgerService(
		repos.RecordRepo,
		WithMethodLookup(container.Registry),
	)

	container.Reporting = NewReportingService(
		repos.RecordRepo,
		WithReportingRegistry(container.Registry),
	)

	container.Subscription = NewSubscriptionService(
		repos.SubscriptionRepo,
		WithChargeLedger(container.Ledger),
		WithSubscriptionRegistry(container.Registry),
	)

	return container
}
