// Package report prints the Northwind exercise report: a fixed sequence of
// read-only queries, each answered twice, once per query form.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MikeMC777/northwind-report/internal/northwind"
)

const separator = " "

var (
	largeFreight   = decimal.NewFromInt(750)
	shippingCutoff = decimal.NewFromInt(100)

	customerCities   = []string{"London", "Paris"}
	orderCities      = []string{"Berlin", "Paris"}
	shippedCountries = []string{"USA", "UK"}
)

const packaging = "bottle"

type Options struct {
	// EmployeeCountry is the literal matched against employees.country in 1.5.
	EmployeeCountry string
}

func DefaultOptions() Options {
	return Options{EmployeeCountry: "Uk"}
}

type Reporter struct {
	method northwind.Repository
	query  northwind.Repository
	out    io.Writer
	log    *zap.Logger
	opts   Options
}

// New builds a Reporter. method answers the "METHOD SYNTAX" half of each
// question and query the "QUERY SYNTAX" half; they may be the same repository.
func New(method, query northwind.Repository, out io.Writer, log *zap.Logger, opts Options) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{method: method, query: query, out: out, log: log, opts: opts}
}

// Run prints the whole report. It stops at the first error; lines already
// written stay written.
func (r *Reporter) Run(ctx context.Context) error {
	if err := r.warmUp(ctx); err != nil {
		return err
	}
	for _, s := range r.sections() {
		if err := r.runSection(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// warmUp runs the eager-loading and join queries that precede the exercises.
// Their rows are consumed but not printed; only the separators are.
func (r *Reporter) warmUp(ctx context.Context) error {
	for _, include := range []northwind.Include{
		northwind.IncludeCustomer,
		northwind.IncludeCustomer | northwind.IncludeDetails,
		northwind.IncludeCustomer | northwind.IncludeProducts,
	} {
		orders, err := r.method.OrdersWithFreightOver(ctx, largeFreight, include)
		if err != nil {
			return fmt.Errorf("eager orders: %w", err)
		}
		r.log.Debug("eager orders loaded",
			zap.Int("orders", len(orders)),
			zap.Int("lines", countLines(orders)),
			zap.Uint8("include", uint8(include)))
		r.println(separator)
	}

	contacts, err := r.query.OrderContactsWithFreightOver(ctx, largeFreight)
	if err != nil {
		return fmt.Errorf("order contacts: %w", err)
	}
	r.log.Debug("order contacts loaded", zap.Int("rows", len(contacts)))

	companies, err := r.query.OrdersFromCities(ctx, orderCities...)
	if err != nil {
		return fmt.Errorf("orders from cities: %w", err)
	}
	r.log.Debug("orders from cities loaded", zap.Int("rows", len(companies)))
	r.println(separator)
	return nil
}

func countLines(orders []northwind.Order) int {
	n := 0
	for _, o := range orders {
		n += len(o.OrderDetails)
	}
	return n
}

func (r *Reporter) runSection(ctx context.Context, s section) error {
	forms := []struct {
		name string
		repo northwind.Repository
	}{
		{"METHOD SYNTAX", r.method},
		{"QUERY SYNTAX", r.query},
	}
	for _, f := range forms {
		r.println(fmt.Sprintf("QUESTION %s - %s", s.number, f.name))
		if s.lines == nil {
			continue
		}
		lines, err := s.lines(ctx, f.repo)
		if err != nil {
			return fmt.Errorf("question %s %s: %w", s.number, f.name, err)
		}
		r.log.Debug("section printed", zap.String("question", s.number), zap.String("form", f.name), zap.Int("lines", len(lines)))
		for _, l := range lines {
			r.println(l)
		}
	}
	if !s.noSeparator {
		r.println(separator)
	}
	return nil
}

// println drops write errors, as fmt.Println callers usually do.
func (r *Reporter) println(line string) {
	_, _ = fmt.Fprintln(r.out, line)
}
