package research

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"google.golang.org/adk/tool"

	"finadvisor/internal/tools/shared"
)

const webSearchDescription = "웹에서 최신 정보를 검색해 정제된 본문 목록을 반환합니다. " +
	"각 결과는 title, url, markdown(링크와 URL이 제거된 본문) 필드를 가지며 항상 최소 한 건이 반환됩니다. " +
	"인자: query(검색어)."

// searchResultLimit caps how many pages a single query scrapes.
const searchResultLimit = 5

var (
	collapseRe = regexp.MustCompile(`\\+|\n+`)
	linkRe     = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)|https?://[^\s]+`)
)

// NewWebSearchTool returns the web research tool shared by the news and
// sector analysts.
func NewWebSearchTool(deps shared.Deps) tool.Tool {
	fn := func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		return searchWeb(ctx, deps, args)
	}

	return shared.NewToolBuilder("web_search", webSearchDescription, fn, deps).
		WithTimeout(2 * time.Minute).
		WithStats().
		Build()
}

func searchWeb(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	query := resolveQuery(args)
	if query == "" {
		return resultsOf(sentinelRow("검색어 오류", "검색어(query)가 제공되지 않았습니다.")), nil
	}

	response, err := deps.Search.Search(ctx, query, searchResultLimit)
	if err != nil {
		return resultsOf(sentinelRow("검색 실패", fmt.Sprintf("Firecrawl 검색 실패: %v", err))), nil
	}

	if !response.Success {
		message := response.Error
		if message == "" {
			message = "검색 응답 실패"
		}
		return resultsOf(sentinelRow("검색 실패", message)), nil
	}

	rows := make([]map[string]interface{}, 0, len(response.Data))
	for _, result := range response.Data {
		body := result.Markdown
		if body == "" {
			body = result.Content
		}
		if body == "" {
			continue
		}

		rows = append(rows, map[string]interface{}{
			"title":    result.Title,
			"url":      result.URL,
			"markdown": cleanMarkdown(body),
		})
	}

	if len(rows) == 0 {
		return resultsOf(sentinelRow("검색 결과 없음", "유의미한 검색 결과를 찾지 못했습니다.")), nil
	}

	return resultsOf(rows), nil
}

// resolveQuery accepts the aliases models actually produce for the search
// argument, in priority order.
func resolveQuery(args map[string]interface{}) string {
	for _, key := range []string{"query", "request", "q"} {
		if v, ok := args[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// cleanMarkdown flattens escape and newline runs, then strips markdown links
// and bare URLs so the agent reads prose, not markup.
func cleanMarkdown(text string) string {
	cleaned := strings.TrimSpace(collapseRe.ReplaceAllString(text, " "))
	return linkRe.ReplaceAllString(cleaned, "")
}

func sentinelRow(title, markdown string) []map[string]interface{} {
	return []map[string]interface{}{{
		"title":    title,
		"url":      "",
		"markdown": markdown,
	}}
}

func resultsOf(rows []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"results": rows}
}
