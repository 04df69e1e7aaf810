package ports

import "github.com/renova/storefront/internal/core/domain"

// SyncDispatcher runs remote mirror commands detached from the caller.
type SyncDispatcher interface {
	Enqueue(cmd domain.SyncCommand)
}

// OutcomeSink consumes the result of every executed SyncCommand.
type OutcomeSink interface {
	Record(outcome domain.SyncOutcome)
}

// StockNotifier receives clamp notices as they happen.
type StockNotifier interface {
	NotifyStock(notice domain.StockNotice)
}
