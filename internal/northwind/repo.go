// Package northwind provides read-only access to the Northwind sample database.
// Two Repository implementations answer the same questions: PGRepo with
// hand-written SQL over pgx, and GormRepo through the GORM query builder.
package northwind

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Include selects which associations OrdersWithFreightOver loads eagerly.
type Include uint8

const (
	IncludeCustomer Include = 1 << iota
	IncludeDetails
	// IncludeProducts loads each detail's product and implies IncludeDetails.
	IncludeProducts
)

func (i Include) Has(flag Include) bool {
	if flag == IncludeDetails && i&IncludeProducts != 0 {
		return true
	}
	return i&flag != 0
}

type Repository interface {
	OrdersWithFreightOver(ctx context.Context, threshold decimal.Decimal, include Include) ([]Order, error)
	OrderContactsWithFreightOver(ctx context.Context, threshold decimal.Decimal) ([]OrderContact, error)
	OrdersFromCities(ctx context.Context, cities ...string) ([]OrderCompany, error)
	CustomersInCities(ctx context.Context, cities ...string) ([]Customer, error)
	ProductsPackagedIn(ctx context.Context, needle string) ([]Product, error)
	ProductsPackagedInWithSupplier(ctx context.Context, needle string) ([]Product, error)
	ProductCountsByCategory(ctx context.Context) ([]CategoryCount, error)
	EmployeesInCountry(ctx context.Context, country string) ([]Employee, error)
	CountOrdersShippedTo(ctx context.Context, threshold decimal.Decimal, countries ...string) (int64, error)
}
