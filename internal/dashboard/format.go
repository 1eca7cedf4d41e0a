package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/willfaleixo/Dashboards-BI/internal/calculator"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatInt groups thousands with dots: 1234567 -> "1.234.567".
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney renders a pt-BR currency amount: "R$ 1.234,56".
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return "R$ " + sign + fixed
	}
	return "R$ " + sign + FormatInt(n) + "," + frac
}

// FormatPercent one decimal with a comma: 12.5 -> "12,5%".
func FormatPercent(p float64) string {
	return strings.Replace(strconv.FormatFloat(p, 'f', 1, 64), ".", ",", 1) + "%"
}

// ChangeView text and css class of a comparison badge
type ChangeView struct {
	Text  string
	Class string
}

// FormatChange renders a percent change: "Novo", "N/D", or the arrow and the percentage.
func FormatChange(c calculator.Change) ChangeView {
	switch c.Kind {
	case calculator.ChangeNew:
		return ChangeView{Text: "Novo", Class: "up"}
	case calculator.ChangeNoData:
		return ChangeView{Text: "N/D", Class: "flat"}
	}
	switch {
	case c.Percent > 0:
		return ChangeView{Text: "▲ " + FormatPercent(c.Percent), Class: "up"}
	case c.Percent < 0:
		return ChangeView{Text: "▼ " + FormatPercent(-c.Percent), Class: "down"}
	default:
		return ChangeView{Text: "▶ " + FormatPercent(0), Class: "flat"}
	}
}

// FormatYear years are printed without grouping
func FormatYear(y int) string { return strconv.Itoa(y) }

// FormatDate day-first date used in the table
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
