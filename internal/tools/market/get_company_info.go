package market

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/adk/tool"

	"finadvisor/internal/tools/shared"
	"finadvisor/pkg/errors"
)

const companyInfoDescription = "지정한 티커에 대한 기본 기업 정보를 조회합니다. " +
	"공식 기업명과 산업, 섹터 분류를 수집해 분석의 출발점이 되는 기업 프로필을 제공합니다. " +
	"인자: ticker(주식 티커 심볼, 예: 'AAPL')."

// NewGetCompanyInfoTool returns the company profile lookup tool.
func NewGetCompanyInfoTool(deps shared.Deps) tool.Tool {
	fn := func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		return companyInfo(ctx, deps, args)
	}

	return shared.NewToolBuilder("get_company_info", companyInfoDescription, fn, deps).
		WithTimeout(30 * time.Second).
		WithStats().
		Build()
}

func companyInfo(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	ticker, _ := args["ticker"].(string)
	if ticker == "" {
		return errorResult(ticker, "회사 정보 조회 실패: 티커가 제공되지 않았습니다."), nil
	}

	profile, err := deps.Market.CompanyProfile(ctx, ticker)
	if err != nil {
		if errors.Is(err, errors.ErrEmptyProfile) || errors.Is(err, errors.ErrNotFound) {
			return errorResult(ticker, "회사 정보를 찾을 수 없습니다."), nil
		}
		return errorResult(ticker, fmt.Sprintf("회사 정보 조회 실패: %v", err)), nil
	}

	return map[string]interface{}{
		"ticker":       ticker,
		"success":      true,
		"company_name": orNA(profile.LongName),
		"industry":     orNA(profile.Industry),
		"sector":       orNA(profile.Sector),
	}, nil
}
