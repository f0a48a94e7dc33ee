package report

import (
	"context"
	"fmt"

	"github.com/MikeMC777/northwind-report/internal/northwind"
)

// section is one numbered exercise. lines is nil for placeholders that only
// print their headers.
type section struct {
	number      string
	lines       func(ctx context.Context, repo northwind.Repository) ([]string, error)
	noSeparator bool
}

func (r *Reporter) sections() []section {
	return []section{
		{number: "1.1", lines: londonParisCustomers},
		{number: "1.2", lines: bottledProducts},
		{number: "1.3", lines: bottledProductsWithSupplier},
		{number: "1.4", lines: productsPerCategory},
		{number: "1.5", lines: r.employeesIn},
		{number: "1.6"},
		{number: "1.7", lines: largeShipmentsToUKOrUSA},
		{number: "1.8", noSeparator: true},
		{number: "1.9", noSeparator: true},
	}
}

func londonParisCustomers(ctx context.Context, repo northwind.Repository) ([]string, error) {
	customers, err := repo.CustomersInCities(ctx, customerCities...)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(customers))
	for _, c := range customers {
		lines = append(lines, FormatCustomer(c))
	}
	return lines, nil
}

func bottledProducts(ctx context.Context, repo northwind.Repository) ([]string, error) {
	products, err := repo.ProductsPackagedIn(ctx, packaging)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, FormatProduct(p))
	}
	return lines, nil
}

func bottledProductsWithSupplier(ctx context.Context, repo northwind.Repository) ([]string, error) {
	products, err := repo.ProductsPackagedInWithSupplier(ctx, packaging)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, FormatProductWithSupplier(p))
	}
	return lines, nil
}

func productsPerCategory(ctx context.Context, repo northwind.Repository) ([]string, error) {
	counts, err := repo.ProductCountsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		lines = append(lines, FormatCategoryCount(c))
	}
	return lines, nil
}

func (r *Reporter) employeesIn(ctx context.Context, repo northwind.Repository) ([]string, error) {
	employees, err := repo.EmployeesInCountry(ctx, r.opts.EmployeeCountry)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(employees))
	for _, e := range employees {
		lines = append(lines, FormatEmployee(e))
	}
	return lines, nil
}

func largeShipmentsToUKOrUSA(ctx context.Context, repo northwind.Repository) ([]string, error) {
	n, err := repo.CountOrdersShippedTo(ctx, shippingCutoff, shippedCountries...)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("Orders over 100 from uk or usa: %d", n)}, nil
}
