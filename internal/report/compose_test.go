package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_SectionOrder(t *testing.T) {
	doc := Compose("Buy", Sections{
		Sector:    "sector text",
		Data:      "data text",
		Financial: "financial text",
		News:      "news text",
	})

	headings := []string{
		"# 요약 및 투자 조언",
		"## 섹터 애널리스트 리포트",
		"## 데이터 애널리스트 리포트",
		"## 재무 애널리스트 리포트",
		"## 뉴스 애널리스트 리포트",
	}
	bodies := []string{"Buy", "sector text", "data text", "financial text", "news text"}

	pos := -1
	for i, heading := range headings {
		idx := strings.Index(doc, heading)
		require.GreaterOrEqual(t, idx, 0, "missing heading %q", heading)
		assert.Greater(t, idx, pos, "heading %q out of order", heading)
		pos = idx

		// Each heading is immediately followed by its body text.
		rest := doc[idx+len(heading):]
		assert.True(t, strings.HasPrefix(rest, "\n"+bodies[i]), "heading %q not followed by its text", heading)
	}
}

func TestCompose_MissingSectionsRenderEmpty(t *testing.T) {
	doc := Compose("Hold", Sections{})

	assert.Contains(t, doc, "# 요약 및 투자 조언\nHold\n")
	assert.Contains(t, doc, "## 섹터 애널리스트 리포트\n\n")
	assert.Contains(t, doc, "## 뉴스 애널리스트 리포트\n\n")

	// Every heading appears exactly once even with empty bodies.
	assert.Equal(t, 1, strings.Count(doc, "# 요약 및 투자 조언"))
	assert.Equal(t, 4, strings.Count(doc, "\n## "))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "AAPL_investment_advice.md", Filename("AAPL"))
	assert.Equal(t, "BRK-B_investment_advice.md", Filename("BRK-B"))
}
