// Package insight turns a business summary into AI-written advice.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"distribution-service/internal/apperror"

	"github.com/shopspring/decimal"
)

// ErrNotConfigured is returned when no AI provider has been set up
var ErrNotConfigured = errors.New("insight generator is not configured")

// Summary is the data the generator reasons about
type Summary struct {
	TotalDebt             decimal.Decimal
	HighRiskCustomerNames []string
	LowStockProductNames  []string
}

// Insights are free-text recommendations
type Insights struct {
	RiskAnalysis     string `json:"riskAnalysis" jsonschema:"description=Assessment of customer debt and credit risk"`
	CashFlowForecast string `json:"cashFlowForecast" jsonschema:"description=Short-term cash flow outlook"`
	InventoryAdvice  string `json:"inventoryAdvice" jsonschema:"description=Restocking recommendations"`
}

// Generator produces insights from a summary
type Generator interface {
	Generate(ctx context.Context, summary Summary) (*Insights, error)
}

// Disabled always fails; it stands in when no API key is configured
type Disabled struct{}

func (Disabled) Generate(context.Context, Summary) (*Insights, error) {
	return nil, &apperror.IntegrationFailure{Service: "insight", Err: ErrNotConfigured}
}

// BuildPrompt renders the instructions sent to the model
func BuildPrompt(s Summary) string {
	return fmt.Sprintf(`You are an AI analyst for a potato distribution business.
Analyze the following data and provide brief, actionable insights in Arabic.

Data:
- Total Market Debt: %s SAR
- High Risk Customers: %d (Names: %s)
- Low Stock Products: %s

Respond with a JSON object with the keys "riskAnalysis", "cashFlowForecast" and "inventoryAdvice".`,
		s.TotalDebt.StringFixed(2),
		len(s.HighRiskCustomerNames),
		joinOrNone(s.HighRiskCustomerNames),
		joinOrNone(s.LowStockProductNames),
	)
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// parseInsights decodes model output, rejecting empty or malformed content
func parseInsights(content string) (*Insights, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("empty response content")
	}
	var out Insights
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	if out.RiskAnalysis == "" && out.CashFlowForecast == "" && out.InventoryAdvice == "" {
		return nil, errors.New("response contained no insights")
	}
	return &out, nil
}
