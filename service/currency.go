package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency 将分转换为美元金额字符串，如 125000 -> $1,250.00
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + "$" + currencyPrinter.Sprintf("%.2f", float64(cents)/100)
}
