package persistence

import "strings"

// ProductSortFields lists the product columns clients may sort by
var ProductSortFields = map[string]bool{
	"name":          true,
	"category":      true,
	"brand":         true,
	"model":         true,
	"price":         true,
	"gst_rate":      true,
	"quantity":      true,
	"min_threshold": true,
	"created_at":    true,
	"updated_at":    true,
}

// BillSortFields lists the bill columns clients may sort by
var BillSortFields = map[string]bool{
	"invoice_no":      true,
	"customer_name":   true,
	"customer_mobile": true,
	"payment_mode":    true,
	"sold_by":         true,
	"subtotal":        true,
	"tax":             true,
	"discount":        true,
	"total":           true,
	"billed_at":       true,
	"created_at":      true,
}

// ValidateSortField returns sortField when it is in allowedFields,
// otherwise defaultField. Sort fields end up inside an ORDER BY clause,
// so anything outside the whitelist is rejected.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	field := strings.ToLower(strings.TrimSpace(sortField))
	if allowedFields[field] {
		return field
	}
	return defaultField
}

// ValidateSortOrder normalizes a sort direction to ASC or DESC
func ValidateSortOrder(orderDir string, defaultDir string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return defaultDir
}
