package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/fintrack-app/backend/internal/controllers/v1"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/fintrack-app/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestMonthlySummary() {
	_, token := suite.signUp("Jane Doe", uniqueEmail(), "password")

	suite.createExpense(token, map[string]any{"title": "Groceries", "amount": 50})
	suite.createExpense(token, map[string]any{"title": "Rent", "amount": 800})

	// Outside the current month
	suite.createExpense(token, map[string]any{"title": "Old", "amount": 999, "date": "2020-01-01T00:00:00Z"})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/analytics/summary", "", authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var summary v1.MonthlySummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &summary)

	suite.Assert().Equal(types.MonthOf(time.Now()).Name(), summary.Month)
	suite.Assert().True(summary.TotalSpent.Equal(decimal.NewFromInt(850)), "total is %s, expected 850", summary.TotalSpent)
	suite.Assert().Equal(int64(2), summary.Count)
}

func (suite *TestSuiteStandard) TestMonthlySummaryEmpty() {
	_, token := suite.signUp("Jane Doe", uniqueEmail(), "password")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/analytics/summary", "", authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var summary v1.MonthlySummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &summary)
	suite.Assert().True(summary.TotalSpent.IsZero())
	suite.Assert().Equal(int64(0), summary.Count)
}

func (suite *TestSuiteStandard) TestCategoryBreakdown() {
	_, token := suite.signUp("Jane Doe", uniqueEmail(), "password")

	suite.createExpense(token, map[string]any{"title": "Zomato", "amount": 20})
	suite.createExpense(token, map[string]any{"title": "Swiggy", "amount": 30})
	suite.createExpense(token, map[string]any{"title": "Uber", "amount": 15})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/analytics/categories", "", authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var totals []models.CategoryTotal
	test.DecodeResponse(suite.T(), &recorder, &totals)

	suite.Require().Len(totals, 2)
	suite.Assert().Equal("Food", totals[0].Category)
	suite.Assert().True(totals[0].Total.Equal(decimal.NewFromInt(50)))
	suite.Assert().Equal("Travel", totals[1].Category)
}

func (suite *TestSuiteStandard) TestMonthlyTrend() {
	_, token := suite.signUp("Jane Doe", uniqueEmail(), "password")

	suite.createExpense(token, map[string]any{"title": "This month", "amount": 100})

	lastMonth := types.MonthOf(time.Now()).AddDate(0, -1)
	suite.createExpense(token, map[string]any{
		"title":  "Last month",
		"amount": 40,
		"date":   lastMonth.First().Add(24 * time.Hour).Format(time.RFC3339),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/analytics/trend", "", authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var totals []models.MonthTotal
	test.DecodeResponse(suite.T(), &recorder, &totals)

	// Oldest first, months without spending omitted
	suite.Require().Len(totals, 2)
	suite.Assert().True(totals[0].Total.Equal(decimal.NewFromInt(40)))
	suite.Assert().True(totals[1].Total.Equal(decimal.NewFromInt(100)))
}
