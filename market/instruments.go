// market/instruments.go
package market

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownAsset = errors.New("unknown asset")

// Asset is a currency pair symbol as displayed, e.g. "EUR/USD".
type Asset string

type AssetMeta struct {
	Name          Asset
	BaseCurrency  string
	QuoteCurrency string
}

var Assets = map[Asset]AssetMeta{
	"EUR/USD": {Name: "EUR/USD", BaseCurrency: "EUR", QuoteCurrency: "USD"},
	"GBP/USD": {Name: "GBP/USD", BaseCurrency: "GBP", QuoteCurrency: "USD"},
	"USD/JPY": {Name: "USD/JPY", BaseCurrency: "USD", QuoteCurrency: "JPY"},
	"USD/CAD": {Name: "USD/CAD", BaseCurrency: "USD", QuoteCurrency: "CAD"},
	"EUR/JPY": {Name: "EUR/JPY", BaseCurrency: "EUR", QuoteCurrency: "JPY"},
	"EUR/GBP": {Name: "EUR/GBP", BaseCurrency: "EUR", QuoteCurrency: "GBP"},
}

// assetOrder is the display order used by forms.
var assetOrder = []Asset{"EUR/USD", "GBP/USD", "USD/JPY", "USD/CAD", "EUR/JPY", "EUR/GBP"}

// AssetList returns the catalog in display order.
func AssetList() []Asset {
	out := make([]Asset, len(assetOrder))
	copy(out, assetOrder)
	return out
}

// ParseAsset accepts "EUR/USD", "EUR_USD" or "eurusd".
func ParseAsset(s string) (Asset, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "/")
	if len(s) == 6 && !strings.Contains(s, "/") {
		s = s[:3] + "/" + s[3:]
	}
	a := Asset(s)
	if _, ok := Assets[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAsset, s)
	}
	return a, nil
}
