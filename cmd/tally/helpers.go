package main

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tally/internal/ledger"
	"tally/internal/textkey"
)

var countPrinter = message.NewPrinter(language.English)

func formatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}

func formatCount(value int64) string {
	return countPrinter.Sprintf("%d", value)
}

// channelLabel renders a channel identifier as a table heading,
// e.g. "product_offsite" becomes "Product Offsite".
func channelLabel(ch ledger.Channel) string {
	words := strings.ReplaceAll(string(ch), "_", " ")
	return cases.Title(language.Und).String(words)
}

func entityDisplayName(entity *ledger.JoinedMetric) string {
	return textkey.DisplayTitle(entity.Title, entity.RawTitle, entity.VideoID, entity.ProductID)
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
