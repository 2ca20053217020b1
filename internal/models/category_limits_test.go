package models_test

import (
	"encoding/json"

	"github.com/fintrack-app/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCategoryLimitsRoundTrip() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	created := suite.createTestBudget(models.Budget{
		UserID: user.ID,
		Month:  4,
		Year:   2024,
		CategoryLimits: models.CategoryLimits{
			"Food":   decimal.NewFromInt(300),
			"Travel": decimal.RequireFromString("99.50"),
		},
	})

	var budget models.Budget
	suite.Require().Nil(models.DB.First(&budget, "id = ?", created.ID).Error)

	suite.Assert().Len(budget.CategoryLimits, 2)
	suite.Assert().True(budget.CategoryLimits["Food"].Equal(decimal.NewFromInt(300)))
	suite.Assert().True(budget.CategoryLimits["Travel"].Equal(decimal.RequireFromString("99.50")))
}

func (suite *TestSuiteStandard) TestCategoryLimitsNilStoredAsEmpty() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	created := suite.createTestBudget(models.Budget{
		UserID: user.ID,
		Month:  4,
		Year:   2024,
	})

	var budget models.Budget
	suite.Require().Nil(models.DB.First(&budget, "id = ?", created.ID).Error)
	suite.Assert().NotNil(budget.CategoryLimits)
	suite.Assert().Len(budget.CategoryLimits, 0)
}

func (suite *TestSuiteStandard) TestCategoryLimitsMarshalJSON() {
	var limits models.CategoryLimits

	j, err := json.Marshal(limits)
	suite.Require().Nil(err)
	suite.Assert().Equal("{}", string(j), "nil category limits must serialize as an empty object")
}

func (suite *TestSuiteStandard) TestCategoryLimitsScanInvalid() {
	var limits models.CategoryLimits
	suite.Assert().NotNil(limits.Scan(42))
}
