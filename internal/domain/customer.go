package domain

import "time"

// Customer is a registered buyer. Orders reference customers by id only.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
