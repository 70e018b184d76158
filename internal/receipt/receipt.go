package receipt

import (
	"fmt"
	"io"
	"strings"

	"github.com/xenking/lanchonete/internal/domain/catalog"
	"github.com/xenking/lanchonete/internal/domain/order"
	"github.com/xenking/lanchonete/internal/domain/pricing"
)

// Summary holds the figures of a finished order.
type Summary struct {
	Customer string
	Items    []catalog.Item
	Subtotal int64
	Total    int64
}

// Discounted reports whether the discount lowered the total.
func (s Summary) Discounted() bool {
	return s.Total < s.Subtotal
}

// Build computes the summary of o under policy.
func Build(o *order.Order, policy pricing.Policy) Summary {
	items := o.Items()
	subtotal := pricing.Subtotal(items)
	return Summary{
		Customer: o.CustomerName,
		Items:    items,
		Subtotal: subtotal,
		Total:    policy.Apply(subtotal),
	}
}

// Format returns the receipt text. An empty order yields only a farewell.
func Format(s Summary) string {
	if len(s.Items) == 0 {
		return fmt.Sprintf("Nenhum item foi pedido. Até logo, %s!\n", s.Customer)
	}

	lines := []string{
		"",
		fmt.Sprintf("Obrigado pelo seu pedido, %s!", s.Customer),
		"Resumo do pedido:",
	}
	for _, item := range s.Items {
		lines = append(lines, fmt.Sprintf("- %s: R$%s", item.Name, pricing.FormatPrice(item.Price)))
	}
	lines = append(lines, "Subtotal: R$"+pricing.FormatPrice(s.Subtotal))
	if s.Discounted() {
		lines = append(lines, "Desconto aplicado! Novo total: R$"+pricing.FormatPrice(s.Total))
	} else {
		lines = append(lines, "Total: R$"+pricing.FormatPrice(s.Total))
	}
	lines = append(lines, "Volte sempre!")

	return strings.Join(lines, "\n") + "\n"
}

// Render writes the receipt of s to w.
func Render(w io.Writer, s Summary) error {
	_, err := io.WriteString(w, Format(s))
	return err
}
