package report

import (
	"fmt"
	"strings"
)

// MIMEMarkdown is the content type of the advisory document artifact.
const MIMEMarkdown = "text/markdown"

// Section headings of the advisory document, in render order.
const (
	headingSummary   = "# 요약 및 투자 조언"
	headingSector    = "## 섹터 애널리스트 리포트"
	headingData      = "## 데이터 애널리스트 리포트"
	headingFinancial = "## 재무 애널리스트 리포트"
	headingNews      = "## 뉴스 애널리스트 리포트"
)

// Sections holds the analyst outputs that make up the advisory document.
// Missing analysts render as empty sections.
type Sections struct {
	Sector    string
	Data      string
	Financial string
	News      string
}

// Compose renders the advisory markdown document: the coordinator's summary
// first, then the four analyst reports in fixed order.
func Compose(summary string, sections Sections) string {
	var b strings.Builder

	writeSection(&b, headingSummary, summary)
	writeSection(&b, headingSector, sections.Sector)
	writeSection(&b, headingData, sections.Data)
	writeSection(&b, headingFinancial, sections.Financial)
	writeSection(&b, headingNews, sections.News)

	return b.String()
}

func writeSection(b *strings.Builder, heading, body string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
}

// Filename returns the artifact name for a ticker's advisory document.
func Filename(ticker string) string {
	return fmt.Sprintf("%s_investment_advice.md", ticker)
}
