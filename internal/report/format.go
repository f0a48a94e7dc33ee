package report

import (
	"fmt"

	nw "github.com/MikeMC777/northwind-report/internal/northwind"
)

func FormatCustomer(c nw.Customer) string {
	return fmt.Sprintf("CustomerID: %s Company Name: %s Address: %s, %s, %s",
		c.CustomerID, c.CompanyName, nw.Str(c.Address), nw.Str(c.City), nw.Str(c.Country))
}

func FormatProduct(p nw.Product) string {
	return fmt.Sprintf("%s - %s", p.ProductName, nw.Str(p.QuantityPerUnit))
}

// FormatProductWithSupplier expects p.Supplier to be loaded.
func FormatProductWithSupplier(p nw.Product) string {
	var company, country string
	if p.Supplier != nil {
		company, country = p.Supplier.CompanyName, nw.Str(p.Supplier.Country)
	}
	return fmt.Sprintf("%s, %s: %s", company, country, FormatProduct(p))
}

func FormatCategoryCount(c nw.CategoryCount) string {
	return fmt.Sprintf("%s - %d", c.CategoryName, c.ProductCount)
}

func FormatEmployee(e nw.Employee) string {
	return fmt.Sprintf("FullName: %s. %s %s Address: %s, %s, %s, %s %s",
		nw.Str(e.Title), e.FirstName, e.LastName,
		nw.Str(e.Address), nw.Str(e.City), nw.Str(e.Country), nw.Str(e.Region), nw.Str(e.PostalCode))
}
