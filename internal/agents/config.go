package agents

import (
	"finadvisor/internal/agents/state"
	"finadvisor/internal/tools"
)

// AgentConfig captures runtime settings for an agent instance.
type AgentConfig struct {
	Type        AgentType
	Name        string
	Description string
	Instruction string
	Tools       []string
	OutputKey   string

	// AIProvider and Model are filled in by the factory caller so the
	// same configs can run against different model bindings.
	AIProvider string
	Model      string
}

// DefaultAgentConfigs defines the four analysts and the coordinator.
var DefaultAgentConfigs = map[AgentType]AgentConfig{
	AgentDataAnalyst: {
		Type:        AgentDataAnalyst,
		Name:        "DataAnalyst",
		Description: "여러 특화 도구로 기초 주식 데이터를 수집·분석하는 데이터 전문가",
		Instruction: PromptDataAnalyst,
		Tools: []string{
			tools.NameGetCompanyInfo,
			tools.NameGetStockPrice,
			tools.NameGetFinancialMetrics,
		},
		OutputKey: state.KeyDataAnalystResult,
	},
	AgentFinancialAnalyst: {
		Type:        AgentFinancialAnalyst,
		Name:        "FinancialAnalyst",
		Description: "손익·재무상태·현금흐름표를 종합 분석하는 재무 전문가",
		Instruction: PromptFinancialAnalyst,
		Tools: []string{
			tools.NameGetIncomeStatement,
			tools.NameGetBalanceSheet,
			tools.NameGetCashFlow,
		},
		OutputKey: state.KeyFinancialAnalystResult,
	},
	AgentNewsAnalyst: {
		Type:        AgentNewsAnalyst,
		Name:        "NewsAnalyst",
		Description: "웹 검색 도구로 실제 웹 콘텐츠를 탐색하고 요약합니다.",
		Instruction: PromptNewsAnalyst,
		Tools:       []string{tools.NameWebSearch},
		OutputKey:   state.KeyNewsAnalystResult,
	},
	AgentSectorAnalyst: {
		Type:        AgentSectorAnalyst,
		Name:        "SectorAnalyst",
		Description: "AI 및 관련 산업에서 핵심 기업과 티커를 신속하게 찾아 제안합니다.",
		Instruction: PromptSectorAnalyst,
		Tools:       []string{tools.NameWebSearch},
		OutputKey:   state.KeySectorAnalystResult,
	},
	AgentCoordinator: {
		Type:        AgentCoordinator,
		Name:        "FinancialAdvisor",
		Description: "네 전문 애널리스트를 지휘해 종합 투자 자문 보고서를 작성하는 코디네이터",
		Instruction: PromptFinancialAdvisor,
		Tools:       []string{tools.NameSaveAdviceReport},
	},
}
