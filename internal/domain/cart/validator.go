package cart

import "fmt"

// Violation is a single checkout-eligibility failure. Validation aggregates
// every violation found rather than stopping at the first.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// ValidateForCheckout reports all reasons a snapshot cannot enter checkout
// for the requesting store. An empty result means the cart is eligible.
func ValidateForCheckout(s *Snapshot, storeNumber string) []Violation {
	var violations []Violation

	if len(s.Items) == 0 {
		violations = append(violations, Violation{Field: "items", Message: "cart has no items"})
	}
	for i, item := range s.Items {
		if item.Quantity <= 0 {
			violations = append(violations, Violation{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: fmt.Sprintf("quantity must be positive for sku %s", item.SKU),
			})
		}
		if !item.UnitPrice.IsPositive() {
			violations = append(violations, Violation{
				Field:   fmt.Sprintf("items[%d].unitPrice", i),
				Message: fmt.Sprintf("unit price must be positive for sku %s", item.SKU),
			})
		}
	}

	if !s.Totals.Subtotal.IsPositive() {
		violations = append(violations, Violation{Field: "totals.subtotal", Message: "subtotal must be positive"})
	}
	if !s.Totals.GrandTotal.IsPositive() {
		violations = append(violations, Violation{Field: "totals.grandTotal", Message: "grand total must be positive"})
	}
	if s.Totals.DiscountTotal.IsNegative() {
		violations = append(violations, Violation{Field: "totals.discountTotal", Message: "discount total cannot be negative"})
	}
	if s.Totals.TaxTotal.IsNegative() {
		violations = append(violations, Violation{Field: "totals.taxTotal", Message: "tax total cannot be negative"})
	}

	if s.StoreNumber != storeNumber {
		violations = append(violations, Violation{
			Field:   "storeNumber",
			Message: fmt.Sprintf("cart belongs to store %s, not %s", s.StoreNumber, storeNumber),
		})
	}

	return violations
}
