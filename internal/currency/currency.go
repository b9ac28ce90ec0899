package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Цены хранятся целыми рупиями, копеек нет
var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format - локализованная строка цены с символом рупии
// и индийской группировкой разрядов: 10000 -> "₹10,000", 100000 -> "₹1,00,000"
func Format(n int64) string {
	return printer.Sprintf("₹%v", number.Decimal(n, number.MaxFractionDigits(0)))
}
