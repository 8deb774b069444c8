package utils

import "strings"

var currencySymbols = map[string]string{
	"PHP": "₱",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"KRW": "₩",
	"SGD": "S$",
	"MYR": "RM",
	"THB": "฿",
	"VND": "₫",
	"IDR": "Rp",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "Fr",
	"INR": "₹",
	"AED": "د.إ",
	"SAR": "﷼",
	"BRL": "R$",
	"MXN": "Mex$",
	"RUB": "₽",
	"ZAR": "R",
	"NZD": "NZ$",
	"HKD": "HK$",
	"TWD": "NT$",
}

// CurrencySymbol returns the display symbol for an ISO currency code.
// Unknown codes fall back to the code itself.
func CurrencySymbol(currency string) string {
	if symbol, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		return symbol
	}
	if currency == "" {
		return currencySymbols[DefaultCurrency]
	}
	return currency
}
