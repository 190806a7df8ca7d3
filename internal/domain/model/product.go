package model

// Product carries the stock counters reconciled on refunds.
type Product struct {
	ID           int64
	Name         string
	Price        float64
	Quantity     int
	SoldQuantity int
}
