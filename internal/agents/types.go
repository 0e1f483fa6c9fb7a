package agents

// AgentType enumerates the advisory agents.
type AgentType string

const (
	AgentDataAnalyst      AgentType = "data_analyst"
	AgentFinancialAnalyst AgentType = "financial_analyst"
	AgentNewsAnalyst      AgentType = "news_analyst"
	AgentSectorAnalyst    AgentType = "sector_analyst"
	AgentCoordinator      AgentType = "coordinator"
)

// AnalystTypes lists the specialist agents in the order the coordinator
// receives them as agent tools.
func AnalystTypes() []AgentType {
	return []AgentType{
		AgentFinancialAnalyst,
		AgentNewsAnalyst,
		AgentDataAnalyst,
		AgentSectorAnalyst,
	}
}
