package northwind

import "github.com/shopspring/decimal"

type Customer struct {
	CustomerID  string  `gorm:"column:customer_id;primaryKey;type:varchar(5)"`
	CompanyName string  `gorm:"column:company_name;not null"`
	ContactName *string `gorm:"column:contact_name"`
	Address     *string `gorm:"column:address"`
	City        *string `gorm:"column:city"`
	Country     *string `gorm:"column:country"`
}

type Supplier struct {
	SupplierID  int32   `gorm:"column:supplier_id;primaryKey"`
	CompanyName string  `gorm:"column:company_name;not null"`
	Country     *string `gorm:"column:country"`
}

type Category struct {
	CategoryID   int32  `gorm:"column:category_id;primaryKey"`
	CategoryName string `gorm:"column:category_name;not null"`
}

type Product struct {
	ProductID       int32     `gorm:"column:product_id;primaryKey"`
	ProductName     string    `gorm:"column:product_name;not null"`
	QuantityPerUnit *string   `gorm:"column:quantity_per_unit"`
	SupplierID      *int32    `gorm:"column:supplier_id"`
	Supplier        *Supplier `gorm:"foreignKey:SupplierID;references:SupplierID"`
	CategoryID      *int32    `gorm:"column:category_id"`
	Category        *Category `gorm:"foreignKey:CategoryID;references:CategoryID"`
}

type Order struct {
	OrderID    int32     `gorm:"column:order_id;primaryKey"`
	CustomerID *string   `gorm:"column:customer_id;type:varchar(5)"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:CustomerID"`
	// Money fields are decimal so they print as stored; thresholds are compared in SQL.
	Freight      decimal.Decimal `gorm:"column:freight;type:decimal(10,2)"`
	ShipCountry  *string         `gorm:"column:ship_country"`
	OrderDetails []OrderDetail   `gorm:"foreignKey:OrderID;references:OrderID"`
}

type OrderDetail struct {
	OrderID   int32           `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	ProductID int32           `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	Product   *Product        `gorm:"foreignKey:ProductID;references:ProductID"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null"`
	Quantity  int16           `gorm:"column:quantity;not null"`
	Discount  float32         `gorm:"column:discount;type:real;not null"` // fraction, 0.05 = 5%
}

type Employee struct {
	EmployeeID int32   `gorm:"column:employee_id;primaryKey"`
	LastName   string  `gorm:"column:last_name;not null"`
	FirstName  string  `gorm:"column:first_name;not null"`
	Title      *string `gorm:"column:title"`
	Address    *string `gorm:"column:address"`
	City       *string `gorm:"column:city"`
	Region     *string `gorm:"column:region"`
	PostalCode *string `gorm:"column:postal_code"`
	Country    *string `gorm:"column:country"`
}

// OrderContact is the orders x customers projection used by the freight report.
type OrderContact struct {
	OrderID     int32
	ContactName *string
	City        *string
	Freight     decimal.Decimal
}

// OrderCompany pairs an order with the company that placed it.
type OrderCompany struct {
	OrderID     int32
	CompanyName string
}

type CategoryCount struct {
	CategoryName string
	ProductCount int64
}

// Str renders a nullable column the way the reports print it: NULL is empty.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
