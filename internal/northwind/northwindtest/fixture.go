// Package northwindtest provides a small, hand-countable Northwind snapshot in
// SQLite for tests.
//
// What the snapshot contains, as tests rely on it:
//   - customers in London or Paris: AROUT, BSBEV, PARIS, SEVES, SPECD
//   - products whose quantity_per_unit contains "bottle": 2, 3, 8 ("Bottles" in 5 does not count)
//   - of those, products with a supplier: 2, 3 (8 has none)
//   - products per category: Beverages 3, Condiments 2, Confections 2; product 8 has no category
//   - employees store their country as "UK" or "USA", never "Uk"
//   - orders with freight > 750: 10249, 10252
//   - orders with freight > 100 shipped to USA or UK: 4 (10253 sits at exactly 100)
package northwindtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	nw "github.com/MikeMC777/northwind-report/internal/northwind"
)

// Open returns a seeded in-memory database private to t. It is closed when t ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite fixture: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite fixture handle: %v", err)
	}
	// one connection keeps the in-memory database alive for the whole test
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Seed(db); err != nil {
		t.Fatalf("seed fixture: %v", err)
	}
	return db
}

// Seed creates the Northwind tables in db and fills them with the snapshot.
func Seed(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&nw.Category{}, &nw.Supplier{}, &nw.Product{},
		&nw.Customer{}, &nw.Order{}, &nw.OrderDetail{}, &nw.Employee{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var (
		categories = Categories()
		suppliers  = Suppliers()
		products   = Products()
		customers  = Customers()
		orders     = Orders()
		details    = OrderDetails()
		employees  = Employees()
	)
	return db.Transaction(func(tx *gorm.DB) error {
		for _, rows := range []any{&categories, &suppliers, &products, &customers, &orders, &details, &employees} {
			if err := tx.Omit(clause.Associations).Create(rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func s(v string) *string { return &v }
func i(v int32) *int32   { return &v }

func Categories() []nw.Category {
	return []nw.Category{
		{CategoryID: 1, CategoryName: "Beverages"},
		{CategoryID: 2, CategoryName: "Condiments"},
		{CategoryID: 3, CategoryName: "Confections"},
		{CategoryID: 8, CategoryName: "Seafood"},
	}
}

func Suppliers() []nw.Supplier {
	return []nw.Supplier{
		{SupplierID: 1, CompanyName: "Exotic Liquids", Country: s("UK")},
		{SupplierID: 2, CompanyName: "New Orleans Cajun Delights", Country: s("USA")},
		{SupplierID: 7, CompanyName: "Pavlova, Ltd.", Country: s("Australia")},
	}
}

func Products() []nw.Product {
	return []nw.Product{
		{ProductID: 1, ProductName: "Chai", QuantityPerUnit: s("10 boxes x 20 bags"), SupplierID: i(1), CategoryID: i(1)},
		{ProductID: 2, ProductName: "Chang", QuantityPerUnit: s("24 - 12 oz bottles"), SupplierID: i(1), CategoryID: i(1)},
		{ProductID: 3, ProductName: "Aniseed Syrup", QuantityPerUnit: s("12 - 550 ml bottles"), SupplierID: i(1), CategoryID: i(2)},
		{ProductID: 4, ProductName: "Chef Anton's Cajun Seasoning", QuantityPerUnit: s("48 - 6 oz jars"), SupplierID: i(2), CategoryID: i(2)},
		{ProductID: 5, ProductName: "Sasquatch Ale", QuantityPerUnit: s("24 - 12 oz Bottles"), SupplierID: i(2), CategoryID: i(1)},
		{ProductID: 6, ProductName: "Pavlova", QuantityPerUnit: s("32 - 500 g boxes"), SupplierID: i(7), CategoryID: i(3)},
		{ProductID: 7, ProductName: "Teatime Chocolate Biscuits", QuantityPerUnit: s("10 boxes x 12 pieces"), SupplierID: i(7), CategoryID: i(3)},
		{ProductID: 8, ProductName: "Outback Lager", QuantityPerUnit: s("24 - 355 ml bottles")},
		{ProductID: 9, ProductName: "Mystery Item"},
	}
}

func Customers() []nw.Customer {
	return []nw.Customer{
		{CustomerID: "ALFKI", CompanyName: "Alfreds Futterkiste", ContactName: s("Maria Anders"), Address: s("Obere Str. 57"), City: s("Berlin"), Country: s("Germany")},
		{CustomerID: "AROUT", CompanyName: "Around the Horn", ContactName: s("Thomas Hardy"), Address: s("120 Hanover Sq."), City: s("London"), Country: s("UK")},
		{CustomerID: "BLAUS", CompanyName: "Blauer See Delikatessen", ContactName: s("Hanna Moos"), Address: s("Forsterstr. 57"), City: s("Mannheim"), Country: s("Germany")},
		{CustomerID: "BSBEV", CompanyName: "B's Beverages", ContactName: s("Victoria Ashworth"), Address: s("Fauntleroy Circus"), City: s("London"), Country: s("UK")},
		{CustomerID: "GREAL", CompanyName: "Great Lakes Food Market", ContactName: s("Howard Snyder"), Address: s("2732 Baker Blvd."), City: s("Eugene"), Country: s("USA")},
		{CustomerID: "PARIS", CompanyName: "Paris spécialités", ContactName: s("Marie Bertrand"), Address: s("265, boulevard Charonne"), City: s("Paris"), Country: s("France")},
		{CustomerID: "SEVES", CompanyName: "Seven Seas Imports", ContactName: s("Hari Kumar"), Address: s("90 Wadhurst Rd."), City: s("London"), Country: s("UK")},
		{CustomerID: "SPECD", CompanyName: "Spécialités du monde", ContactName: s("Dominique Perrier"), Address: s("25, rue Lauriston"), City: s("Paris"), Country: s("France")},
		{CustomerID: "LONDX", CompanyName: "Lowercase City Co", City: s("london"), Country: s("UK")},
	}
}

func Orders() []nw.Order {
	d := decimal.RequireFromString
	return []nw.Order{
		{OrderID: 10248, CustomerID: s("ALFKI"), Freight: d("32.38"), ShipCountry: s("Germany")},
		{OrderID: 10249, CustomerID: s("GREAL"), Freight: d("1007.64"), ShipCountry: s("USA")},
		{OrderID: 10250, CustomerID: s("AROUT"), Freight: d("65.83"), ShipCountry: s("UK")},
		{OrderID: 10251, CustomerID: s("SEVES"), Freight: d("140.51"), ShipCountry: s("UK")},
		{OrderID: 10252, CustomerID: s("PARIS"), Freight: d("890.78"), ShipCountry: s("France")},
		{OrderID: 10253, CustomerID: s("GREAL"), Freight: d("100.00"), ShipCountry: s("USA")},
		{OrderID: 10254, CustomerID: s("BLAUS"), Freight: d("220.00"), ShipCountry: s("Germany")},
		{OrderID: 10255, CustomerID: s("BSBEV"), Freight: d("458.78"), ShipCountry: s("UK")},
		{OrderID: 10256, CustomerID: s("SPECD"), Freight: d("11.61"), ShipCountry: s("France")},
		{OrderID: 10257, CustomerID: s("GREAL"), Freight: d("180.45"), ShipCountry: s("USA")},
	}
}

func OrderDetails() []nw.OrderDetail {
	d := decimal.RequireFromString
	return []nw.OrderDetail{
		{OrderID: 10248, ProductID: 1, UnitPrice: d("14.40"), Quantity: 12},
		{OrderID: 10249, ProductID: 2, UnitPrice: d("19.00"), Quantity: 10},
		{OrderID: 10249, ProductID: 3, UnitPrice: d("10.00"), Quantity: 5, Discount: 0.05},
		{OrderID: 10252, ProductID: 6, UnitPrice: d("13.90"), Quantity: 40, Discount: 0.05},
		{OrderID: 10252, ProductID: 4, UnitPrice: d("17.60"), Quantity: 25},
		{OrderID: 10255, ProductID: 2, UnitPrice: d("15.20"), Quantity: 20},
	}
}

func Employees() []nw.Employee {
	return []nw.Employee{
		{EmployeeID: 1, LastName: "Davolio", FirstName: "Nancy", Title: s("Sales Representative"), Address: s("507 - 20th Ave. E. Apt. 2A"), City: s("Seattle"), Region: s("WA"), PostalCode: s("98122"), Country: s("USA")},
		{EmployeeID: 5, LastName: "Buchanan", FirstName: "Steven", Title: s("Sales Manager"), Address: s("14 Garrett Hill"), City: s("London"), PostalCode: s("SW1 8JR"), Country: s("UK")},
		{EmployeeID: 6, LastName: "Suyama", FirstName: "Michael", Title: s("Sales Representative"), Address: s("Coventry House Miner Rd."), City: s("London"), PostalCode: s("EC2 7JR"), Country: s("UK")},
	}
}
