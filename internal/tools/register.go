package tools

import (
	tooladvice "finadvisor/internal/tools/advice"
	"finadvisor/internal/tools/fundamentals"
	"finadvisor/internal/tools/market"
	"finadvisor/internal/tools/research"
	"finadvisor/internal/tools/shared"
)

// RegisterAllTools registers all available tools in the registry
func RegisterAllTools(registry *Registry, deps shared.Deps) {
	log := deps.Log.With("component", "tool_registration")

	// Middleware is configured in each tool's NewXXXTool() constructor via
	// shared.ToolBuilder: WithRetry / WithTimeout / WithStats.

	// ========================================
	// Market Data Tools
	// ========================================
	registry.Register(NameGetCompanyInfo, market.NewGetCompanyInfoTool(deps))
	registry.Register(NameGetStockPrice, market.NewGetStockPriceTool(deps))
	registry.Register(NameGetFinancialMetrics, market.NewGetFinancialMetricsTool(deps))
	log.Debug("Registered market data tools")

	// ========================================
	// Financial Statement Tools
	// ========================================
	registry.Register(NameGetIncomeStatement, fundamentals.NewGetIncomeStatementTool(deps))
	registry.Register(NameGetBalanceSheet, fundamentals.NewGetBalanceSheetTool(deps))
	registry.Register(NameGetCashFlow, fundamentals.NewGetCashFlowTool(deps))
	log.Debug("Registered financial statement tools")

	// ========================================
	// Web Research Tools
	// ========================================
	registry.Register(NameWebSearch, research.NewWebSearchTool(deps))
	log.Debug("Registered web research tools")

	// ========================================
	// Advisory Report Tools
	// ========================================
	registry.Register(NameSaveAdviceReport, tooladvice.NewSaveAdviceReportTool(deps))
	log.Debug("Registered advisory report tools")

	log.Infof("Tool registration complete: %d tools available", len(registry.List()))
}
