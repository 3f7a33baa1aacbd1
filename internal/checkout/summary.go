package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRate — фиксированная ставка налога, применяемая к сумме корзины.
var TaxRate = decimal.New(10, -2)

// Summary — итоги оформления: сумма корзины, налог и сумма к оплате.
type Summary struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Summarize считает налог и итог для суммы корзины.
func Summarize(subtotal decimal.Decimal) Summary {
	tax := subtotal.Mul(TaxRate)
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("subtotal $%s, tax (10%%) $%s, total $%s",
		s.Subtotal.StringFixed(2), s.Tax.StringFixed(2), s.Total.StringFixed(2))
}
