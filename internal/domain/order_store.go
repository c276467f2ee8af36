package domain

// OrderStore owns the pending-order map. Implementations must make Take
// atomic: concurrent Take calls for the same id return the order to at most
// one caller, which is what keeps duplicate webhook delivery idempotent.
type OrderStore interface {
	Put(order *PendingOrder)
	Get(id string) *PendingOrder
	Take(id string) *PendingOrder
	Len() int
}
