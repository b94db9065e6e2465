package twocheckout

import "strings"

// Currencies 2Checkout settles in. A documented subset of the currencies
// other gateways quote; notably CZK, HUF, MYR, ILS, PHP, PLN, SGD, TWD and
// THB are missing.
var defaultCurrencies = []string{
	"ARS", "AUD", "BRL", "CAD", "CHF", "DKK", "EUR", "GBP", "HKD", "INR",
	"JPY", "MXN", "NOK", "NZD", "SEK", "USD", "ZAR",
}

// Language tags mapped to the codes the hosted page understands. Some
// entries are self-mapped and some are not (de renders as "gr",
// es variants split into Iberia and Latin America).
var defaultLanguages = map[string]string{
	"zh":     "zh",
	"da":     "da",
	"nl":     "nl",
	"de":     "gr",
	"el":     "el",
	"it":     "it",
	"ja":     "jp",
	"nb":     "no",
	"pt":     "pt",
	"sl":     "sl",
	"sv":     "sv",
	"en":     "en",
	"es":     "es_ib",
	"es_419": "es_la",
	"es_ES":  "es_ib",
}

func (c *Client) currencies() []string {
	if len(c.config.Currencies) > 0 {
		return c.config.Currencies
	}
	return defaultCurrencies
}

func (c *Client) languages() map[string]string {
	if len(c.config.Languages) > 0 {
		return c.config.Languages
	}
	return defaultLanguages
}

// IsSupportedCurrency reports whether the gateway settles in the given
// currency. Case-insensitive.
func (c *Client) IsSupportedCurrency(code string) bool {
	if code == "" {
		return false
	}
	code = strings.ToUpper(code)
	for _, supported := range c.currencies() {
		if supported == code {
			return true
		}
	}
	return false
}

// SupportedLanguageCode resolves a language tag to the code the hosted page
// expects. Separators are normalised to underscores, then the full tag is
// tried as a table key, as a table value, and the primary subtag likewise,
// in that order. Region variants like es-419 are only reachable through the
// full-tag steps and codes like "gr" only through the value-side steps, so
// the order matters.
func (c *Client) SupportedLanguageCode(tag string) (string, bool) {
	if tag == "" {
		return "", false
	}
	tag = strings.ReplaceAll(tag, "-", "_")
	primary, _, _ := strings.Cut(tag, "_")
	languages := c.languages()

	if code, ok := languages[tag]; ok {
		return code, true
	}
	for _, code := range languages {
		if code == tag {
			return tag, true
		}
	}
	if code, ok := languages[primary]; ok {
		return code, true
	}
	for _, code := range languages {
		if code == primary {
			return primary, true
		}
	}
	return "", false
}

// IsSupportedLanguage is the predicate form of SupportedLanguageCode.
func (c *Client) IsSupportedLanguage(tag string) bool {
	_, ok := c.SupportedLanguageCode(tag)
	return ok
}
