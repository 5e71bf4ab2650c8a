package domain

import (
	"sort"

	catalogdomain "github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
)

// SubcategoryCount is one row of the immediate-children report. Categories
// without children appear with a zero count.
type SubcategoryCount struct {
	Title              string
	SubcategoriesCount int64
}

// ProductCategorySales is a raw aggregate row: quantity sold per product and
// the product's direct category, before the category is rolled up to its
// top-level ancestor.
type ProductCategorySales struct {
	ProductTitle string
	CategoryID   int64
	Quantity     int64
}

// TopProduct is one row of the top-selling report, keyed by product title and
// the title of the top-level category the product rolls up to.
type TopProduct struct {
	ProductName   string
	CategoryName  string
	TotalQuantity int64
}

// ClientOrderSum is one row of the client revenue report. Clients without any
// order are excluded; orders without items contribute zero.
type ClientOrderSum struct {
	Name     string
	TotalSum float64
}

// RollupTopProducts maps each sales row's category to its top-level ancestor,
// merges rows that land on the same (product, top category) pair, and returns
// the limit best sellers. Ordering is total quantity descending; ties break
// on product name ascending so the report is deterministic.
func RollupTopProducts(rows []ProductCategorySales, forest *catalogdomain.Forest, limit int) []TopProduct {
	type key struct {
		product  string
		category string
	}
	totals := make(map[key]int64, len(rows))
	for _, row := range rows {
		top, ok := forest.TopLevelAncestor(row.CategoryID)
		if !ok {
			// Product references a category the forest does not know; skip
			// rather than misattribute the sales.
			continue
		}
		totals[key{product: row.ProductTitle, category: top.Title}] += row.Quantity
	}
	report := make([]TopProduct, 0, len(totals))
	for k, quantity := range totals {
		report = append(report, TopProduct{
			ProductName:   k.product,
			CategoryName:  k.category,
			TotalQuantity: quantity,
		})
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].TotalQuantity != report[j].TotalQuantity {
			return report[i].TotalQuantity > report[j].TotalQuantity
		}
		return report[i].ProductName < report[j].ProductName
	})
	if limit > 0 && len(report) > limit {
		report = report[:limit]
	}
	return report
}
