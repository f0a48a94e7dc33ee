package northwind

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRepo answers the same reports as PGRepo through GORM's query builder:
// preloads for eager loading, Joins for projections, Group/Count for aggregates.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

// contains returns a case-sensitive substring predicate for column.
// LIKE is avoided: SQLite's LIKE ignores case and treats % and _ in the needle as wildcards.
func (r *GormRepo) contains(column string) string {
	if r.db.Dialector.Name() == "sqlite" {
		return "instr(" + column + ", ?) > 0"
	}
	return "strpos(" + column + ", ?) > 0"
}

func (r *GormRepo) OrdersWithFreightOver(ctx context.Context, threshold decimal.Decimal, include Include) ([]Order, error) {
	q := r.db.WithContext(ctx)
	if include.Has(IncludeCustomer) {
		q = q.Preload("Customer")
	}
	if include.Has(IncludeDetails) {
		q = q.Preload("OrderDetails", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_id")
		})
	}
	if include.Has(IncludeProducts) {
		q = q.Preload("OrderDetails.Product")
	}

	var out []Order
	err := q.Where("freight > ?", threshold.InexactFloat64()).Order("order_id").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("orders with freight over %s: %w", threshold, err)
	}
	return out, nil
}

func (r *GormRepo) OrderContactsWithFreightOver(ctx context.Context, threshold decimal.Decimal) ([]OrderContact, error) {
	var out []OrderContact
	err := r.db.WithContext(ctx).
		Model(&Order{}).
		Select("orders.order_id, customers.contact_name, customers.city, orders.freight").
		Joins("JOIN customers ON customers.customer_id = orders.customer_id").
		Where("orders.freight > ?", threshold.InexactFloat64()).
		Order("orders.order_id").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("order contacts with freight over %s: %w", threshold, err)
	}
	return out, nil
}

func (r *GormRepo) OrdersFromCities(ctx context.Context, cities ...string) ([]OrderCompany, error) {
	if len(cities) == 0 {
		return nil, nil
	}
	var out []OrderCompany
	err := r.db.WithContext(ctx).
		Model(&Order{}).
		Select("orders.order_id, customers.company_name").
		Joins("JOIN customers ON customers.customer_id = orders.customer_id").
		Where("customers.city IN ?", cities).
		Order("orders.order_id").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("orders from cities: %w", err)
	}
	return out, nil
}

func (r *GormRepo) CustomersInCities(ctx context.Context, cities ...string) ([]Customer, error) {
	if len(cities) == 0 {
		return nil, nil
	}
	var out []Customer
	err := r.db.WithContext(ctx).Where("city IN ?", cities).Order("customer_id").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("customers in cities: %w", err)
	}
	return out, nil
}

func (r *GormRepo) ProductsPackagedIn(ctx context.Context, needle string) ([]Product, error) {
	var out []Product
	err := r.db.WithContext(ctx).
		Where(r.contains("quantity_per_unit"), needle).
		Order("product_id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("products packaged in %q: %w", needle, err)
	}
	return out, nil
}

func (r *GormRepo) ProductsPackagedInWithSupplier(ctx context.Context, needle string) ([]Product, error) {
	var out []Product
	err := r.db.WithContext(ctx).
		InnerJoins("Supplier").
		Where(r.contains("products.quantity_per_unit"), needle).
		Order("products.product_id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("products packaged in %q with supplier: %w", needle, err)
	}
	return out, nil
}

func (r *GormRepo) ProductCountsByCategory(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Select("categories.category_name, COUNT(*) AS product_count").
		Joins("JOIN categories ON categories.category_id = products.category_id").
		Group("categories.category_name").
		Order("product_count DESC, categories.category_name").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("product counts by category: %w", err)
	}
	return out, nil
}

func (r *GormRepo) EmployeesInCountry(ctx context.Context, country string) ([]Employee, error) {
	var out []Employee
	err := r.db.WithContext(ctx).Where("country = ?", country).Order("employee_id").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("employees in country %q: %w", country, err)
	}
	return out, nil
}

func (r *GormRepo) CountOrdersShippedTo(ctx context.Context, threshold decimal.Decimal, countries ...string) (int64, error) {
	if len(countries) == 0 {
		return 0, nil
	}
	db := r.db.WithContext(ctx)

	shippedTo := db.Where(r.contains("ship_country"), countries[0])
	for _, c := range countries[1:] {
		shippedTo = shippedTo.Or(r.contains("ship_country"), c)
	}

	var n int64
	err := db.Model(&Order{}).
		Where("freight > ?", threshold.InexactFloat64()).
		Where(shippedTo).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count orders shipped to %v: %w", countries, err)
	}
	return n, nil
}
