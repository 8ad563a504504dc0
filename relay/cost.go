package relay

// Per-million-token prices in USD. Display estimates only; never used for
// control flow.
type price struct {
	input  float64
	output float64
}

var modelPrices = map[string]price{
	"gpt-4o-mini":      {input: 0.15, output: 0.60},
	"gpt-4o":           {input: 2.50, output: 10.00},
	"gpt-3.5-turbo":    {input: 0.50, output: 1.50},
	"gemini-2.0-flash": {input: 0.10, output: 0.40},
	"gemini-1.5-flash": {input: 0.075, output: 0.30},
}

// defaultPrice is used for models missing from the table.
var defaultPrice = modelPrices["gpt-4o-mini"]

// EstimateTokens approximates a token count as characters divided by four.
// Rough heuristic, not vendor tokenization.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// EstimateCost returns the estimated USD cost for the given token counts on
// the given model.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	p, ok := modelPrices[model]
	if !ok {
		p = defaultPrice
	}
	return float64(inputTokens)/1e6*p.input + float64(outputTokens)/1e6*p.output
}
