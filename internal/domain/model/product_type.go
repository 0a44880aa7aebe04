package model

import "strings"

// ProductType is a coarse classification of a purchased product, used only
// to pick the notification template and redemption code.
type ProductType string

const (
	ProductTypeWeekly  ProductType = "weekly"
	ProductTypeMonthly ProductType = "monthly"
	ProductTypeDiamond ProductType = "diamond"
	ProductTypeOther   ProductType = "other"
)

// ClassifyProduct derives the product type from the product name and diamond
// count. Rules are ordered and the first match wins: a "1x weekly" pack is
// weekly even when it carries no diamonds, and anything with diamonds that
// is not a membership falls through to diamond.
func ClassifyProduct(name string, diamonds int) ProductType {
	lower := strings.ToLower(name)

	switch {
	case strings.Contains(lower, "weekly") || strings.Contains(lower, "1x"):
		return ProductTypeWeekly
	case strings.Contains(lower, "monthly"):
		return ProductTypeMonthly
	case diamonds > 0:
		return ProductTypeDiamond
	default:
		return ProductTypeOther
	}
}
