package tools

// Tool names, as the agents reference them.
const (
	NameGetCompanyInfo      = "get_company_info"
	NameGetStockPrice       = "get_stock_price"
	NameGetFinancialMetrics = "get_financial_metrics"
	NameGetIncomeStatement  = "get_income_statement"
	NameGetBalanceSheet     = "get_balance_sheet"
	NameGetCashFlow         = "get_cash_flow"
	NameWebSearch           = "web_search"
	NameSaveAdviceReport    = "save_advice_report"
)

// Definition describes a tool's metadata for registration and documentation.
type Definition struct {
	Name        string
	Description string
	Category    string
}

var toolDefinitions = []Definition{
	{Name: NameGetCompanyInfo, Description: "기업명·산업·섹터 등 기본 기업 프로필 조회", Category: "market_data"},
	{Name: NameGetStockPrice, Description: "기간별 주가 이력(OHLCV)과 현재가 조회", Category: "market_data"},
	{Name: NameGetFinancialMetrics, Description: "시가총액·PER·배당수익률·베타 등 핵심 재무 지표 조회", Category: "market_data"},

	{Name: NameGetIncomeStatement, Description: "매출·이익률 분석을 위한 손익계산서 조회", Category: "fundamentals"},
	{Name: NameGetBalanceSheet, Description: "자산·부채·자본 구조 분석을 위한 대차대조표 조회", Category: "fundamentals"},
	{Name: NameGetCashFlow, Description: "영업/투자/재무 현금흐름 분석을 위한 현금흐름표 조회", Category: "fundamentals"},

	{Name: NameWebSearch, Description: "웹 검색 후 본문을 정제된 마크다운으로 반환", Category: "research"},

	{Name: NameSaveAdviceReport, Description: "애널리스트 결과를 종합한 투자 조언 리포트 저장", Category: "advice"},
}

// Definitions exposes a copy of all tool definitions.
func Definitions() []Definition {
	defs := make([]Definition, len(toolDefinitions))
	copy(defs, toolDefinitions)
	return defs
}
