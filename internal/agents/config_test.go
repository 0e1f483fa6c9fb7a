package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/internal/agents/state"
	"finadvisor/internal/tools"
)

func TestDefaultAgentConfigsCoverAllAnalysts(t *testing.T) {
	for _, agentType := range AnalystTypes() {
		cfg, ok := DefaultAgentConfigs[agentType]
		require.True(t, ok, "missing config for %s", agentType)

		assert.Equal(t, agentType, cfg.Type)
		assert.NotEmpty(t, cfg.Name)
		assert.NotEmpty(t, cfg.Description)
		assert.NotEmpty(t, cfg.Instruction)
		assert.NotEmpty(t, cfg.Tools)
		assert.NotEmpty(t, cfg.OutputKey, "analysts hand results to the coordinator via session state")
	}
}

func TestCoordinatorConfig(t *testing.T) {
	cfg, ok := DefaultAgentConfigs[AgentCoordinator]
	require.True(t, ok)

	assert.Equal(t, "FinancialAdvisor", cfg.Name)
	assert.Equal(t, []string{tools.NameSaveAdviceReport}, cfg.Tools)
	assert.Empty(t, cfg.OutputKey, "the coordinator answers the user directly")
	assert.NotEmpty(t, cfg.Instruction)
}

func TestAnalystOutputKeysMatchReportSections(t *testing.T) {
	keys := make([]string, 0, len(AnalystTypes()))
	for _, agentType := range AnalystTypes() {
		keys = append(keys, DefaultAgentConfigs[agentType].OutputKey)
	}

	assert.ElementsMatch(t, state.AnalystResultKeys(), keys)
}

func TestAnalystToolAssignments(t *testing.T) {
	assert.Equal(t,
		[]string{tools.NameGetCompanyInfo, tools.NameGetStockPrice, tools.NameGetFinancialMetrics},
		DefaultAgentConfigs[AgentDataAnalyst].Tools)
	assert.Equal(t,
		[]string{tools.NameGetIncomeStatement, tools.NameGetBalanceSheet, tools.NameGetCashFlow},
		DefaultAgentConfigs[AgentFinancialAnalyst].Tools)
	assert.Equal(t, []string{tools.NameWebSearch}, DefaultAgentConfigs[AgentNewsAnalyst].Tools)
	assert.Equal(t, []string{tools.NameWebSearch}, DefaultAgentConfigs[AgentSectorAnalyst].Tools)
}

func TestAgentNamesAreUnique(t *testing.T) {
	seen := make(map[string]AgentType, len(DefaultAgentConfigs))
	for agentType, cfg := range DefaultAgentConfigs {
		other, dup := seen[cfg.Name]
		require.False(t, dup, "agent name %q shared by %s and %s", cfg.Name, other, agentType)
		seen[cfg.Name] = agentType
	}
}
