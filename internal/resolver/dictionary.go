// Package resolver translates free-form user input (company names, common
// misspellings, or raw tickers) into canonical ticker symbols using a
// layered strategy: exact dictionary lookup, fuzzy matching, AI-assisted
// lookup, and finally passthrough.
package resolver

import (
	"fmt"
	"sort"
	"strings"
)

// Dictionary is an immutable mapping from lower-cased company-name
// variants to canonical ticker symbols. It is constructed once at startup
// and never mutated, so it is safe for unsynchronized concurrent reads.
type Dictionary struct {
	aliases map[string]string
	keys    []string // sorted alias keys, for deterministic iteration
}

// NewDictionary builds a dictionary from alias → ticker entries.
// Every key must be lower-case, trimmed, and non-empty; every value must
// be a non-empty ticker string. Violations are construction errors, not
// silently normalized; callers own input hygiene.
func NewDictionary(entries map[string]string) (*Dictionary, error) {
	aliases := make(map[string]string, len(entries))
	keys := make([]string, 0, len(entries))

	for alias, ticker := range entries {
		if alias == "" {
			return nil, fmt.Errorf("dictionary: empty alias")
		}
		if alias != strings.TrimSpace(alias) {
			return nil, fmt.Errorf("dictionary: alias %q has surrounding whitespace", alias)
		}
		if alias != strings.ToLower(alias) {
			return nil, fmt.Errorf("dictionary: alias %q is not lower-case", alias)
		}
		if ticker == "" {
			return nil, fmt.Errorf("dictionary: alias %q maps to empty ticker", alias)
		}
		aliases[alias] = ticker
		keys = append(keys, alias)
	}

	sort.Strings(keys)
	return &Dictionary{aliases: aliases, keys: keys}, nil
}

// mustNewDictionary panics on invalid entries. Used only for the builtin table.
func mustNewDictionary(entries map[string]string) *Dictionary {
	d, err := NewDictionary(entries)
	if err != nil {
		panic(err)
	}
	return d
}

// Lookup returns the ticker for an exact alias match. The input must
// already be trimmed and lower-cased; the dictionary performs no
// normalization itself.
func (d *Dictionary) Lookup(alias string) (string, bool) {
	ticker, ok := d.aliases[alias]
	return ticker, ok
}

// Aliases returns all alias keys in sorted order. The returned slice is
// shared; callers must not modify it.
func (d *Dictionary) Aliases() []string {
	return d.keys
}

// Len returns the number of alias entries.
func (d *Dictionary) Len() int {
	return len(d.aliases)
}

// DisplayName returns a human-readable company name for a ticker by
// reverse lookup. When several aliases share the ticker the first one in
// sorted alias order wins, so the result is stable across runs. This is a
// display convenience only and plays no part in resolution.
func (d *Dictionary) DisplayName(ticker string) (string, bool) {
	upper := strings.ToUpper(ticker)
	for _, alias := range d.keys {
		if d.aliases[alias] == upper {
			return titleCase(alias), true
		}
	}
	return "", false
}

// titleCase upper-cases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// DefaultDictionary returns the process-wide builtin dictionary of common
// US company names, well-known misspellings, and popular ETFs.
func DefaultDictionary() *Dictionary {
	return defaultDict
}

var defaultDict = mustNewDictionary(builtinAliases)

// builtinAliases maps lower-case company-name variants to canonical
// tickers. Multiple aliases may map to the same ticker.
var builtinAliases = map[string]string{
	// Tech giants
	"google":    "GOOGL",
	"alphabet":  "GOOGL",
	"apple":     "AAPL",
	"microsoft": "MSFT",
	"amazon":    "AMZN",
	"meta":      "META",
	"facebook":  "META",
	"netflix":   "NFLX",
	"nvidia":    "NVDA",
	"nvdia":     "NVDA", // common misspelling
	"nviida":    "NVDA", // common misspelling
	"nvida":     "NVDA", // common misspelling
	"tesla":     "TSLA",
	"telsa":     "TSLA", // common misspelling
	"intel":     "INTC",
	"amd":       "AMD",
	"ibm":       "IBM",
	"oracle":    "ORCL",
	"salesforce": "CRM",
	"adobe":     "ADBE",
	"cisco":     "CSCO",
	"qualcomm":  "QCOM",
	"broadcom":  "AVGO",
	"paypal":    "PYPL",
	"uber":      "UBER",
	"lyft":      "LYFT",
	"airbnb":    "ABNB",
	"spotify":   "SPOT",
	"snap":      "SNAP",
	"snapchat":  "SNAP",
	"twitter":   "X",
	"x":         "X",
	"pinterest": "PINS",
	"zoom":      "ZM",
	"shopify":   "SHOP",
	"square":    "SQ",
	"block":     "SQ",
	"palantir":  "PLTR",
	"snowflake": "SNOW",
	"crowdstrike": "CRWD",
	"datadog":   "DDOG",
	"servicenow": "NOW",
	"workday":   "WDAY",
	"twilio":    "TWLO",
	"okta":      "OKTA",
	"splunk":    "SPLK",
	"mongodb":   "MDB",
	"elastic":   "ESTC",
	"cloudflare": "NET",
	"docusign":  "DOCU",
	"dropbox":   "DBX",
	"roblox":    "RBLX",
	"unity":     "U",
	"coinbase":  "COIN",
	"robinhood": "HOOD",

	// Finance
	"jpmorgan":        "JPM",
	"jp morgan":       "JPM",
	"chase":           "JPM",
	"bank of america": "BAC",
	"bofa":            "BAC",
	"wells fargo":     "WFC",
	"citigroup":       "C",
	"citi":            "C",
	"goldman sachs":   "GS",
	"goldman":         "GS",
	"morgan stanley":  "MS",
	"blackrock":       "BLK",
	"charles schwab":  "SCHW",
	"schwab":          "SCHW",
	"visa":            "V",
	"mastercard":      "MA",
	"american express": "AXP",
	"amex":            "AXP",
	"berkshire hathaway": "BRK-B",
	"berkshire":       "BRK-B",

	// Retail & consumer
	"walmart":     "WMT",
	"target":      "TGT",
	"costco":      "COST",
	"home depot":  "HD",
	"lowes":       "LOW",
	"nike":        "NKE",
	"starbucks":   "SBUX",
	"mcdonalds":   "MCD",
	"coca cola":   "KO",
	"coke":        "KO",
	"pepsi":       "PEP",
	"pepsico":     "PEP",
	"disney":      "DIS",
	"walt disney": "DIS",
	"comcast":     "CMCSA",
	"att":         "T",
	"at&t":        "T",
	"verizon":     "VZ",
	"t-mobile":    "TMUS",

	// Healthcare & pharma
	"johnson & johnson": "JNJ",
	"j&j":               "JNJ",
	"pfizer":            "PFE",
	"moderna":           "MRNA",
	"merck":             "MRK",
	"abbvie":            "ABBV",
	"eli lilly":         "LLY",
	"lilly":             "LLY",
	"bristol myers":     "BMY",
	"amgen":             "AMGN",
	"gilead":            "GILD",
	"regeneron":         "REGN",
	"unitedhealth":      "UNH",
	"cvs":               "CVS",
	"walgreens":         "WBA",
	"zoetis":            "ZTS",
	"neurocrine":        "NBIX",
	"neurocrine biosciences": "NBIX",

	// Energy
	"exxon":          "XOM",
	"exxonmobil":     "XOM",
	"chevron":        "CVX",
	"conocophillips": "COP",
	"shell":          "SHEL",
	"bp":             "BP",

	// Industrial & auto
	"boeing":           "BA",
	"lockheed martin":  "LMT",
	"lockheed":         "LMT",
	"raytheon":         "RTX",
	"general electric": "GE",
	"ge":               "GE",
	"3m":               "MMM",
	"caterpillar":      "CAT",
	"deere":            "DE",
	"john deere":       "DE",
	"ford":             "F",
	"general motors":   "GM",
	"gm":               "GM",
	"rivian":           "RIVN",
	"lucid":            "LCID",

	// Semiconductors
	"tsmc":                 "TSM",
	"taiwan semiconductor": "TSM",
	"asml":                 "ASML",
	"applied materials":    "AMAT",
	"lam research":         "LRCX",
	"micron":               "MU",
	"texas instruments":    "TXN",
	"marvell":              "MRVL",
	"arm":                  "ARM",

	// ETFs
	"spy":       "SPY",
	"s&p 500":   "SPY",
	"s&p":       "SPY",
	"qqq":       "QQQ",
	"nasdaq":    "QQQ",
	"dia":       "DIA",
	"dow jones": "DIA",
	"dow":       "DIA",
	"iwm":       "IWM",
	"russell":   "IWM",
	"voo":       "VOO",
	"arkk":      "ARKK",
	"ark":       "ARKK",
}
