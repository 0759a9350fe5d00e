// Package stats aggregates dashboard figures from loaded orders. Invoiced
// amounts follow the order's selected date; received amounts follow the
// date each installment was actually paid.
package stats

import (
	"cmp"
	"slices"
	"time"

	"ezpresta-backend/booking"
	"ezpresta-backend/models"

	"github.com/shopspring/decimal"
)

const (
	OtherSource = "Other"
	UnknownType = "Unknown type"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

type YearBilling struct {
	Year     int             `json:"year"`
	Invoiced decimal.Decimal `json:"invoiced"`
	Received decimal.Decimal `json:"received"`
}

type MonthBilling struct {
	Month    int             `json:"month"`
	Invoiced decimal.Decimal `json:"invoiced"`
	Received decimal.Decimal `json:"received"`
	Canceled decimal.Decimal `json:"canceled"`
}

type Annual struct {
	Year                 int             `json:"year"`
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	TotalInvoiced        decimal.Decimal `json:"totalInvoiced"`
	AverageMonthlyIncome decimal.Decimal `json:"averageMonthlyIncome"`
	IncomeGrowth         decimal.Decimal `json:"incomeGrowth"`
}

type Global struct {
	TotalIncome          decimal.Decimal `json:"totalIncomeAllYears"`
	TotalInvoiced        decimal.Decimal `json:"totalInvoicedAllYears"`
	AverageMonthlyIncome decimal.Decimal `json:"averageMonthlyIncome"`
	RemainingOrders      int             `json:"remainingOrders"`
	PendingTasks         int             `json:"pendingTasks"`
	TotalCustomers       int64           `json:"totalClients"`
}

type TypeRevenue struct {
	Year   int                        `json:"year"`
	ByType map[string]decimal.Decimal `json:"byType"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func invoiced(o *models.Order) bool {
	return o.CurrentStatus().Invoiced()
}

func catalogType(o *models.Order) string {
	if o.CatalogType == "" {
		return UnknownType
	}
	return o.CatalogType
}

// paidInstallments calls fn for every paid installment carrying a date.
func paidInstallments(orders []models.Order, fn func(date time.Time, value decimal.Decimal)) {
	for i := range orders {
		for _, inst := range orders[i].Installments {
			if inst.IsPaid && inst.PaymentDate != nil {
				fn(*inst.PaymentDate, inst.Value)
			}
		}
	}
}

func Yearly(orders []models.Order) []YearBilling {
	byYear := map[int]*YearBilling{}
	row := func(year int) *YearBilling {
		if r, ok := byYear[year]; ok {
			return r
		}
		r := &YearBilling{Year: year}
		byYear[year] = r
		return r
	}

	for i := range orders {
		o := &orders[i]
		r := row(o.SelectedDate.Year())
		if invoiced(o) {
			r.Invoiced = r.Invoiced.Add(o.TotalPrice)
		}
	}
	paidInstallments(orders, func(date time.Time, value decimal.Decimal) {
		r := row(date.Year())
		r.Received = r.Received.Add(value)
	})

	out := make([]YearBilling, 0, len(byYear))
	for _, r := range byYear {
		out = append(out, *r)
	}
	slices.SortFunc(out, func(a, b YearBilling) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

func Monthly(orders []models.Order, year int) []MonthBilling {
	months := make([]MonthBilling, 12)
	for i := range months {
		months[i].Month = i + 1
	}

	for i := range orders {
		o := &orders[i]
		if o.SelectedDate.Year() != year {
			continue
		}
		m := &months[o.SelectedDate.Month()-1]
		switch {
		case invoiced(o):
			m.Invoiced = m.Invoiced.Add(o.TotalPrice)
		case o.CurrentStatus() == booking.StatusCanceled:
			m.Canceled = m.Canceled.Add(o.TotalPrice)
		}
	}
	paidInstallments(orders, func(date time.Time, value decimal.Decimal) {
		if date.Year() == year {
			m := &months[date.Month()-1]
			m.Received = m.Received.Add(value)
		}
	})
	return months
}

func income(orders []models.Order, year int) decimal.Decimal {
	total := decimal.Zero
	paidInstallments(orders, func(date time.Time, value decimal.Decimal) {
		if date.Year() == year {
			total = total.Add(value)
		}
	})
	return total
}

// AnnualFor summarises one year. The monthly average is always over twelve
// months, whatever the number of months with payments.
func AnnualFor(orders []models.Order, year int) Annual {
	a := Annual{Year: year, TotalIncome: income(orders, year)}
	for i := range orders {
		o := &orders[i]
		if invoiced(o) && o.SelectedDate.Year() == year {
			a.TotalInvoiced = a.TotalInvoiced.Add(o.TotalPrice)
		}
	}
	a.AverageMonthlyIncome = a.TotalIncome.Div(twelve).Round(2)
	a.IncomeGrowth = Growth(a.TotalIncome, income(orders, year-1))
	return a
}

// Growth is the percentage change from previous to current. A start from
// zero counts as 100% growth.
func Growth(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// GlobalFor spans every year. The monthly average runs from the month of
// the first payment to the month of the last one, both included.
func GlobalFor(orders []models.Order, totalCustomers int64, now time.Time) Global {
	g := Global{TotalCustomers: totalCustomers}

	for i := range orders {
		o := &orders[i]
		if invoiced(o) {
			g.TotalInvoiced = g.TotalInvoiced.Add(o.TotalPrice)
		}
		if o.SelectedDate.After(now) && o.CurrentStatus() != booking.StatusCanceled {
			g.RemainingOrders++
		}
		g.PendingTasks += o.PendingTasks()
	}

	var first, last time.Time
	paidInstallments(orders, func(date time.Time, value decimal.Decimal) {
		g.TotalIncome = g.TotalIncome.Add(value)
		if first.IsZero() || date.Before(first) {
			first = date
		}
		if date.After(last) {
			last = date
		}
	})
	if !first.IsZero() {
		months := (last.Year()-first.Year())*12 + int(last.Month()) - int(first.Month()) + 1
		g.AverageMonthlyIncome = g.TotalIncome.Div(decimal.NewFromInt(int64(months))).Round(2)
	}
	return g
}

// RevenueByType totals invoiced orders per catalog type and year. Every
// type in knownTypes appears in every year, even at zero.
func RevenueByType(orders []models.Order, knownTypes []string) []TypeRevenue {
	byYear := map[int]map[string]decimal.Decimal{}
	for i := range orders {
		o := &orders[i]
		if !invoiced(o) {
			continue
		}
		year := o.SelectedDate.Year()
		row, ok := byYear[year]
		if !ok {
			row = make(map[string]decimal.Decimal, len(knownTypes))
			for _, t := range knownTypes {
				row[t] = decimal.Zero
			}
			byYear[year] = row
		}
		t := catalogType(o)
		row[t] = row[t].Add(o.TotalPrice)
	}

	out := make([]TypeRevenue, 0, len(byYear))
	for year, row := range byYear {
		out = append(out, TypeRevenue{Year: year, ByType: row})
	}
	slices.SortFunc(out, func(a, b TypeRevenue) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// TypeCounts counts the invoiced orders of year per catalog type.
func TypeCounts(orders []models.Order, year int) []NamedCount {
	counts := map[string]int{}
	for i := range orders {
		o := &orders[i]
		if invoiced(o) && o.SelectedDate.Year() == year {
			counts[catalogType(o)]++
		}
	}
	return sortedCounts(counts, nil)
}

// CustomerSources counts customers per configured source. Customers with no
// source or one that is not configured land in OtherSource.
func CustomerSources(customers []models.Customer, sources []string) []NamedCount {
	counts := make(map[string]int, len(sources)+1)
	for _, s := range sources {
		counts[s] = 0
	}
	for _, c := range customers {
		if _, ok := counts[c.Source]; ok && c.Source != "" {
			counts[c.Source]++
			continue
		}
		counts[OtherSource]++
	}
	return sortedCounts(counts, sources)
}

// sortedCounts lists the configured names first in their given order, then
// the remaining names alphabetically.
func sortedCounts(counts map[string]int, order []string) []NamedCount {
	out := make([]NamedCount, 0, len(counts))
	seen := map[string]bool{}
	for _, name := range order {
		if n, ok := counts[name]; ok && !seen[name] {
			out = append(out, NamedCount{Name: name, Value: n})
			seen[name] = true
		}
	}
	rest := make([]string, 0, len(counts))
	for name := range counts {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		out = append(out, NamedCount{Name: name, Value: counts[name]})
	}
	return out
}

// AvailableYears runs from the earliest to the latest order year and always
// includes the current year.
func AvailableYears(orders []models.Order, now time.Time) []int {
	lo, hi := now.Year(), now.Year()
	for i := range orders {
		y := orders[i].SelectedDate.Year()
		lo = min(lo, y)
		hi = max(hi, y)
	}
	years := make([]int, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		years = append(years, y)
	}
	return years
}
