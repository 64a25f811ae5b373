// Package mocks provides mock implementations for testing purposes.
package mocks

//go:generate go tool mockgen -destination=mock_persistence.go -package=mocks github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/persistence TransferRepository,OutboxRepository,UnitOfWork
//go:generate go tool mockgen -destination=mock_messaging.go -package=mocks github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/messaging Publisher
//go:generate go tool mockgen -destination=mock_platform.go -package=mocks github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/platform Clock,IDGenerator
