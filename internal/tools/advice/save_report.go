// Package advice holds the report assembly tool the coordinator calls at
// the end of an advisory run.
package advice

import (
	"context"

	"google.golang.org/adk/session"
	"google.golang.org/adk/tool"

	agentstate "finadvisor/internal/agents/state"
	domainadvice "finadvisor/internal/domain/advice"
	"finadvisor/internal/report"
	"finadvisor/internal/tools/shared"
	"finadvisor/pkg/errors"
	"finadvisor/pkg/logger"
)

const saveReportDescription = "네 애널리스트의 결과와 최종 요약을 하나의 마크다운 투자 자문 보고서로 합쳐 저장합니다. " +
	"세션 상태의 섹터·데이터·재무·뉴스 애널리스트 리포트를 읽어 {ticker}_investment_advice.md 아티팩트로 기록합니다. " +
	"인자: summary(최종 투자 조언 요약), ticker(대상 주식 티커)."

// NewSaveAdviceReportTool returns the report assembly tool.
func NewSaveAdviceReportTool(deps shared.Deps) tool.Tool {
	fn := func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		scope := report.Scope{
			AppName:   deps.AppName,
			UserID:    ctx.UserID(),
			SessionID: ctx.SessionID(),
		}
		return saveReport(ctx, deps, ctx.State(), scope, args)
	}

	return shared.NewToolBuilder("save_advice_report", saveReportDescription, fn, deps).
		WithStats().
		Build()
}

func saveReport(
	ctx context.Context,
	deps shared.Deps,
	st session.State,
	scope report.Scope,
	args map[string]interface{},
) (map[string]interface{}, error) {
	summary, _ := args["summary"].(string)
	ticker, _ := args["ticker"].(string)
	if ticker == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "ticker is required")
	}

	sections := report.Sections{
		Sector:    agentstate.AnalystResult(st, agentstate.KeySectorAnalystResult),
		Data:      agentstate.AnalystResult(st, agentstate.KeyDataAnalystResult),
		Financial: agentstate.AnalystResult(st, agentstate.KeyFinancialAnalystResult),
		News:      agentstate.AnalystResult(st, agentstate.KeyNewsAnalystResult),
	}

	doc := report.Compose(summary, sections)
	name := report.Filename(ticker)
	if err := agentstate.SetReport(st, doc); err != nil {
		return nil, errors.Wrap(err, "failed to store report in session state")
	}
	if err := agentstate.SetReportFilename(st, name); err != nil {
		return nil, errors.Wrap(err, "failed to store report filename in session state")
	}

	if !deps.HasArtifacts() {
		return nil, errors.Wrap(errors.ErrArtifactStore, "artifact store not configured")
	}

	if err := deps.Artifacts.Save(ctx, scope, name, report.MIMEMarkdown, []byte(doc)); err != nil {
		return nil, err
	}

	// The artifact is on disk; a failed archive insert must not fail the
	// advisory run.
	if deps.HasAdviceArchive() {
		archived := &domainadvice.Report{
			Ticker:    ticker,
			Summary:   summary,
			Document:  doc,
			Filename:  name,
			AppName:   scope.AppName,
			UserID:    scope.UserID,
			SessionID: scope.SessionID,
		}
		if err := deps.AdviceRepo.Save(ctx, archived); err != nil {
			log := deps.Log
			if log == nil {
				log = logger.Get()
			}
			log.Warnf("Failed to archive advice report for %s: %v", ticker, err)
		}
	}

	return map[string]interface{}{"success": true}, nil
}
