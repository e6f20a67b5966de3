package mock

// knownRates are indicative mid rates for common pairs. The inverse pair is derived.
var knownRates = map[string]float64{
	"USDEUR": 0.91,
	"USDGBP": 0.77,
	"USDAUD": 1.52,
	"USDJPY": 154.65,
	"USDCAD": 1.36,
	"USDCHF": 0.90,
	"USDCNY": 7.24,
	"EURAUD": 1.66,
	"EURGBP": 0.85,
}

type factor struct {
	name        string
	correlation float64
	kind        string
}

var commonFactors = []factor{
	{"Interest Rate Differential", 0.78, "economic"},
	{"GDP Growth Rate", 0.64, "economic"},
	{"Inflation Rate", -0.61, "economic"},
	{"Trade Balance", 0.52, "economic"},
	{"Political Stability", 0.48, "news"},
	{"Oil Price", -0.42, "economic"},
	{"Stock Market Performance", 0.37, "economic"},
	{"Consumer Confidence", 0.32, "news"},
}

var pairFactors = map[string][]factor{
	"USDEUR": {
		{"ECB Policy Decisions", -0.75, "economic"},
		{"Federal Reserve Policy", 0.82, "economic"},
		{"Eurozone Stability", -0.58, "news"},
	},
	"USDJPY": {
		{"Bank of Japan Policy", -0.72, "economic"},
		{"US-Japan Interest Differential", 0.85, "economic"},
		{"Safe Haven Flows", -0.67, "volatility"},
	},
	"USDGBP": {
		{"Brexit Developments", -0.71, "news"},
		{"Bank of England Policy", -0.68, "economic"},
		{"UK Political Stability", -0.54, "news"},
	},
	"USDCAD": {
		{"Oil Prices", -0.76, "economic"},
		{"US-Canada Trade Relations", -0.62, "news"},
		{"Commodity Prices", -0.58, "economic"},
	},
	"USDAUD": {
		{"Commodity Prices", -0.72, "economic"},
		{"China Economic Performance", -0.65, "economic"},
		{"Risk Sentiment", -0.59, "volatility"},
	},
	"USDCHF": {
		{"Safe Haven Flows", 0.76, "volatility"},
		{"SNB Interventions", -0.70, "economic"},
		{"European Stability", 0.54, "news"},
	},
	"USDINR": {
		{"India's Current Account Deficit", 0.74, "economic"},
		{"RBI Policy Decisions", -0.68, "economic"},
		{"FDI and Foreign Investment Flows", -0.62, "economic"},
		{"Oil Price Movements", 0.58, "economic"},
		{"IT Export Revenues", -0.51, "economic"},
	},
	"EURINR": {
		{"Eurozone-India Trade Balance", -0.71, "economic"},
		{"ECB vs RBI Policy Divergence", 0.64, "economic"},
		{"EU-India Economic Relations", -0.53, "news"},
	},
	"GBPINR": {
		{"UK-India Trade Relations", -0.69, "news"},
		{"UK Economic Performance", 0.61, "economic"},
		{"India's Services Exports to UK", -0.56, "economic"},
	},
}

type headline struct {
	title, source, url, summary, label string
	sentiment                          float64
}

// newsTemplates use %[1]s for the currency code.
var newsTemplates = []headline{
	{
		title:     "%[1]s gains momentum as economic outlook improves",
		source:    "Financial Times",
		url:       "https://www.ft.com",
		summary:   "The %[1]s showed strong performance against major currencies amid positive economic data.",
		label:     "bullish",
		sentiment: 0.75,
	},
	{
		title:     "%[1]s faces pressure following central bank announcement",
		source:    "Bloomberg",
		url:       "https://www.bloomberg.com",
		summary:   "The %[1]s declined after the central bank signaled potential policy changes in the upcoming quarter.",
		label:     "somewhat_bearish",
		sentiment: -0.45,
	},
	{
		title:     "Analysts predict %[1]s volatility in coming weeks",
		source:    "Reuters",
		url:       "https://www.reuters.com",
		summary:   "Market analysts expect increased %[1]s volatility due to geopolitical tensions and trade uncertainties.",
		label:     "neutral",
		sentiment: 0.15,
	},
	{
		title:     "%[1]s trading volume reaches new highs",
		source:    "CNBC",
		url:       "https://www.cnbc.com",
		summary:   "Trading volume for %[1]s reached record levels as institutional investors increase their positions.",
		label:     "somewhat_bullish",
		sentiment: 0.62,
	},
	{
		title:     "%[1]s outlook remains uncertain amid global economic slowdown",
		source:    "Wall Street Journal",
		url:       "https://www.wsj.com",
		summary:   "Experts remain divided on the future of %[1]s as global economic indicators show mixed signals.",
		label:     "neutral",
		sentiment: -0.12,
	},
}

var predictionFactors = []struct {
	name, impact string
}{
	{"Economic Indicators", "high"},
	{"Market Sentiment", "medium"},
	{"Historical Volatility", "medium"},
}

var (
	newsSentimentKeys = []string{"positive_news", "negative_news", "neutral_news", "financial_news", "political_news"}
	economicKeys      = []string{"gdp_growth", "inflation_rate", "interest_rate", "unemployment", "trade_balance"}
	volatilityKeys    = []string{"market_volatility", "news_sentiment_volatility"}
)
