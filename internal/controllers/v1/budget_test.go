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

func (suite *TestSuiteStandard) TestGetBudgetWithoutRecord() {
	_, token := suite.signUp("Jane Doe", uniqueEmail(), "password")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/budget", "", authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// No budget for the month answers with null, not 404
	suite.Assert().Equal("null", recorder.Body.String())
}

func (suite *TestSuiteStandard) TestSetAndGetBudget() {
	_, token := suite.signUp("Jane Doe", uniqueEmail(), "password")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budget", map[string]any{
		"limit":          1000,
		"categoryLimits": map[string]float64{"Food": 300},
	}, authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var created v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	suite.Assert().True(created.Limit.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(created.CarriedOver.IsZero())
	suite.Assert().True(created.EffectiveLimit.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(created.RolloverEnabled)
	suite.Assert().Len(created.Entries, 1)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/budget", "", authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var fetched v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &fetched)
	suite.Assert().Equal(created.ID, fetched.ID)
	suite.Assert().True(fetched.CategoryLimits["Food"].Equal(decimal.NewFromInt(300)))
}

func (suite *TestSuiteStandard) TestSetBudgetTwiceKeepsOneRecord() {
	user, token := suite.signUp("Jane Doe", uniqueEmail(), "password")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budget", map[string]any{
		"limit": 800,
	}, authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/budget", map[string]any{
		"categoryLimits": map[string]float64{"Travel": 150},
	}, authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var budget v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &budget)

	suite.Assert().True(budget.Limit.Equal(decimal.NewFromInt(800)), "absent limit must keep the stored one")
	suite.Assert().Len(budget.Entries, 2)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Budget{}).Where("user_id = ?", user.ID).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestSetBudgetCarriesOverFromPreviousMonth() {
	user, token := suite.signUp("Jane Doe", uniqueEmail(), "password")

	previous := types.MonthOf(time.Now()).AddDate(0, -1)
	month, year := previous.ZeroIndexed()

	suite.Require().Nil(models.DB.Create(&models.Budget{
		UserID:          user.ID,
		Month:           month,
		Year:            year,
		Limit:           decimal.NewFromInt(1000),
		RolloverEnabled: true,
	}).Error)
	suite.Require().Nil(models.DB.Create(&models.Expense{
		UserID: user.ID,
		Title:  "Last month",
		Amount: decimal.NewFromInt(700),
		Date:   previous.First().Add(36 * time.Hour),
	}).Error)

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budget", map[string]any{
		"limit": 1200,
	}, authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var budget v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &budget)

	suite.Assert().True(budget.CarriedOver.Equal(decimal.NewFromInt(300)), "carriedOver is %s, expected 300", budget.CarriedOver)
	suite.Assert().True(budget.EffectiveLimit.Equal(decimal.NewFromInt(1500)))
}

func (suite *TestSuiteStandard) TestSetBudgetRolloverDisabled() {
	user, token := suite.signUp("Jane Doe", uniqueEmail(), "password")

	previous := types.MonthOf(time.Now()).AddDate(0, -1)
	month, year := previous.ZeroIndexed()

	suite.Require().Nil(models.DB.Create(&models.Budget{
		UserID:          user.ID,
		Month:           month,
		Year:            year,
		Limit:           decimal.NewFromInt(1000),
		RolloverEnabled: true,
	}).Error)

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budget", map[string]any{
		"limit":           500,
		"rolloverEnabled": false,
	}, authHeaders(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var budget v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &budget)

	suite.Assert().False(budget.RolloverEnabled)
	suite.Assert().True(budget.CarriedOver.IsZero())
}

func (suite *TestSuiteStandard) TestBudgetUnauthenticated() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/budget", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}
