package northwind

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGRepo answers every report with a single hand-written SQL statement.
type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) OrdersWithFreightOver(ctx context.Context, threshold decimal.Decimal, include Include) ([]Order, error) {
	withCustomer := include.Has(IncludeCustomer)

	query := `
		SELECT o.order_id, o.customer_id, COALESCE(o.freight, 0)::text, o.ship_country
		FROM orders o
		WHERE o.freight > $1
		ORDER BY o.order_id
	`
	if withCustomer {
		query = `
		SELECT o.order_id, o.customer_id, COALESCE(o.freight, 0)::text, o.ship_country,
		       c.customer_id, c.company_name, c.contact_name, c.address, c.city, c.country
		FROM orders o
		LEFT JOIN customers c ON c.customer_id = o.customer_id
		WHERE o.freight > $1
		ORDER BY o.order_id
	`
	}

	rows, err := r.db.Query(ctx, query, threshold.InexactFloat64())
	if err != nil {
		return nil, fmt.Errorf("orders with freight over %s: %w", threshold, err)
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var (
			o       Order
			freight string
		)
		dest := []any{&o.OrderID, &o.CustomerID, &freight, &o.ShipCountry}

		var (
			cID, cCompany                    *string
			cContact, cAddr, cCity, cCountry *string
		)
		if withCustomer {
			dest = append(dest, &cID, &cCompany, &cContact, &cAddr, &cCity, &cCountry)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("orders with freight over %s: %w", threshold, err)
		}
		if o.Freight, err = decimal.NewFromString(freight); err != nil {
			return nil, fmt.Errorf("order %d freight %q: %w", o.OrderID, freight, err)
		}
		if cID != nil {
			o.Customer = &Customer{
				CustomerID:  *cID,
				CompanyName: Str(cCompany),
				ContactName: cContact,
				Address:     cAddr,
				City:        cCity,
				Country:     cCountry,
			}
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders with freight over %s: %w", threshold, err)
	}

	if include.Has(IncludeDetails) && len(out) > 0 {
		if err := r.loadDetails(ctx, out, include.Has(IncludeProducts)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// loadDetails attaches order lines (and optionally their products) to orders in place.
func (r *PGRepo) loadDetails(ctx context.Context, orders []Order, withProduct bool) error {
	ids := make([]int32, len(orders))
	byID := make(map[int32]int, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
		byID[o.OrderID] = i
	}

	rows, err := r.db.Query(ctx, `
		SELECT d.order_id, d.product_id, d.unit_price::text, d.quantity, d.discount,
		       p.product_name, p.quantity_per_unit, p.supplier_id, p.category_id
		FROM order_details d
		JOIN products p ON p.product_id = d.product_id
		WHERE d.order_id = ANY($1)
		ORDER BY d.order_id, d.product_id
	`, ids)
	if err != nil {
		return fmt.Errorf("order details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			d         OrderDetail
			unitPrice string
			p         Product
		)
		if err := rows.Scan(&d.OrderID, &d.ProductID, &unitPrice, &d.Quantity, &d.Discount,
			&p.ProductName, &p.QuantityPerUnit, &p.SupplierID, &p.CategoryID); err != nil {
			return fmt.Errorf("order details: %w", err)
		}
		if d.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return fmt.Errorf("order %d product %d unit price %q: %w", d.OrderID, d.ProductID, unitPrice, err)
		}
		if withProduct {
			p.ProductID = d.ProductID
			d.Product = &p
		}
		i := byID[d.OrderID]
		orders[i].OrderDetails = append(orders[i].OrderDetails, d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("order details: %w", err)
	}
	return nil
}

func (r *PGRepo) OrderContactsWithFreightOver(ctx context.Context, threshold decimal.Decimal) ([]OrderContact, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.order_id, c.contact_name, c.city, COALESCE(o.freight, 0)::text
		FROM orders o
		JOIN customers c ON c.customer_id = o.customer_id
		WHERE o.freight > $1
		ORDER BY o.order_id
	`, threshold.InexactFloat64())
	if err != nil {
		return nil, fmt.Errorf("order contacts with freight over %s: %w", threshold, err)
	}
	defer rows.Close()

	var out []OrderContact
	for rows.Next() {
		var (
			oc      OrderContact
			freight string
		)
		if err := rows.Scan(&oc.OrderID, &oc.ContactName, &oc.City, &freight); err != nil {
			return nil, fmt.Errorf("order contacts with freight over %s: %w", threshold, err)
		}
		if oc.Freight, err = decimal.NewFromString(freight); err != nil {
			return nil, fmt.Errorf("order %d freight %q: %w", oc.OrderID, freight, err)
		}
		out = append(out, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order contacts with freight over %s: %w", threshold, err)
	}
	return out, nil
}

func (r *PGRepo) OrdersFromCities(ctx context.Context, cities ...string) ([]OrderCompany, error) {
	if len(cities) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT o.order_id, c.company_name
		FROM orders o
		JOIN customers c ON c.customer_id = o.customer_id
		WHERE c.city = ANY($1)
		ORDER BY o.order_id
	`, cities)
	if err != nil {
		return nil, fmt.Errorf("orders from cities: %w", err)
	}
	defer rows.Close()

	var out []OrderCompany
	for rows.Next() {
		var oc OrderCompany
		if err := rows.Scan(&oc.OrderID, &oc.CompanyName); err != nil {
			return nil, fmt.Errorf("orders from cities: %w", err)
		}
		out = append(out, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders from cities: %w", err)
	}
	return out, nil
}

func (r *PGRepo) CustomersInCities(ctx context.Context, cities ...string) ([]Customer, error) {
	if len(cities) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT customer_id, company_name, contact_name, address, city, country
		FROM customers
		WHERE city = ANY($1)
		ORDER BY customer_id
	`, cities)
	if err != nil {
		return nil, fmt.Errorf("customers in cities: %w", err)
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.CustomerID, &c.CompanyName, &c.ContactName, &c.Address, &c.City, &c.Country); err != nil {
			return nil, fmt.Errorf("customers in cities: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("customers in cities: %w", err)
	}
	return out, nil
}

func (r *PGRepo) ProductsPackagedIn(ctx context.Context, needle string) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, product_name, quantity_per_unit, supplier_id, category_id
		FROM products
		WHERE strpos(quantity_per_unit, $1) > 0
		ORDER BY product_id
	`, needle)
	if err != nil {
		return nil, fmt.Errorf("products packaged in %q: %w", needle, err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.QuantityPerUnit, &p.SupplierID, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("products packaged in %q: %w", needle, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products packaged in %q: %w", needle, err)
	}
	return out, nil
}

func (r *PGRepo) ProductsPackagedInWithSupplier(ctx context.Context, needle string) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.product_id, p.product_name, p.quantity_per_unit, p.supplier_id, p.category_id,
		       s.company_name, s.country
		FROM products p
		JOIN suppliers s ON s.supplier_id = p.supplier_id
		WHERE strpos(p.quantity_per_unit, $1) > 0
		ORDER BY p.product_id
	`, needle)
	if err != nil {
		return nil, fmt.Errorf("products packaged in %q with supplier: %w", needle, err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var (
			p Product
			s Supplier
		)
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.QuantityPerUnit, &p.SupplierID, &p.CategoryID,
			&s.CompanyName, &s.Country); err != nil {
			return nil, fmt.Errorf("products packaged in %q with supplier: %w", needle, err)
		}
		s.SupplierID = *p.SupplierID
		p.Supplier = &s
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products packaged in %q with supplier: %w", needle, err)
	}
	return out, nil
}

func (r *PGRepo) ProductCountsByCategory(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.category_name, COUNT(*) AS product_count
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		GROUP BY c.category_name
		ORDER BY product_count DESC, c.category_name
	`)
	if err != nil {
		return nil, fmt.Errorf("product counts by category: %w", err)
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.CategoryName, &cc.ProductCount); err != nil {
			return nil, fmt.Errorf("product counts by category: %w", err)
		}
		out = append(out, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product counts by category: %w", err)
	}
	return out, nil
}

func (r *PGRepo) EmployeesInCountry(ctx context.Context, country string) ([]Employee, error) {
	rows, err := r.db.Query(ctx, `
		SELECT employee_id, last_name, first_name, title, address, city, region, postal_code, country
		FROM employees
		WHERE country = $1
		ORDER BY employee_id
	`, country)
	if err != nil {
		return nil, fmt.Errorf("employees in country %q: %w", country, err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.EmployeeID, &e.LastName, &e.FirstName, &e.Title, &e.Address,
			&e.City, &e.Region, &e.PostalCode, &e.Country); err != nil {
			return nil, fmt.Errorf("employees in country %q: %w", country, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("employees in country %q: %w", country, err)
	}
	return out, nil
}

func (r *PGRepo) CountOrdersShippedTo(ctx context.Context, threshold decimal.Decimal, countries ...string) (int64, error) {
	if len(countries) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM orders
		WHERE freight > $1
		  AND EXISTS (
		      SELECT 1 FROM unnest($2::text[]) AS needle
		      WHERE strpos(ship_country, needle) > 0
		  )
	`, threshold.InexactFloat64(), countries).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders shipped to %v: %w", countries, err)
	}
	return n, nil
}
