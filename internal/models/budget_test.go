package models_test

import (
	"time"

	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

func limit(i int64) *decimal.Decimal {
	d := decimal.NewFromInt(i)
	return &d
}

func boolP(b bool) *bool {
	return &b
}

func (suite *TestSuiteStandard) TestSetBudgetCreates() {
	user := suite.createTestUser(models.User{Name: "Jane"})
	january := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	budget, err := models.SetBudget(user.ID, january, models.BudgetUpdate{Limit: limit(1000)})
	suite.Require().Nil(err)

	suite.Assert().Equal(0, budget.Month)
	suite.Assert().Equal(2024, budget.Year)
	suite.Assert().True(budget.Limit.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(budget.CarriedOver.IsZero())
	suite.Assert().True(budget.EffectiveLimit().Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(budget.RolloverEnabled, "rollover must default to true without a previous record")
	suite.Assert().Len(budget.Entries, 1)
}

func (suite *TestSuiteStandard) TestSetBudgetDefaults() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	budget, err := models.SetBudget(user.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), models.BudgetUpdate{})
	suite.Require().Nil(err)

	suite.Assert().True(budget.Limit.IsZero())
	suite.Assert().True(budget.RolloverEnabled)
	suite.Assert().Len(budget.Entries, 1)
}

func (suite *TestSuiteStandard) TestSetBudgetRollsOver() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	suite.createTestBudget(models.Budget{
		UserID:          user.ID,
		Month:           0,
		Year:            2024,
		Limit:           decimal.NewFromInt(1000),
		RolloverEnabled: true,
	})
	suite.createTestExpense(models.Expense{
		UserID: user.ID,
		Title:  "Concert tickets",
		Amount: decimal.NewFromInt(700),
		Date:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	february := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	budget, err := models.SetBudget(user.ID, february, models.BudgetUpdate{Limit: limit(1200), Rollover: boolP(true)})
	suite.Require().Nil(err)

	suite.Assert().True(budget.CarriedOver.Equal(decimal.NewFromInt(300)), "carriedOver is %s, expected 300", budget.CarriedOver)
	suite.Assert().True(budget.EffectiveLimit().Equal(decimal.NewFromInt(1500)))
}

func (suite *TestSuiteStandard) TestSetBudgetOverspendFloorsCarry() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	suite.createTestBudget(models.Budget{
		UserID:          user.ID,
		Month:           0,
		Year:            2024,
		Limit:           decimal.NewFromInt(1000),
		RolloverEnabled: true,
	})
	suite.createTestExpense(models.Expense{
		UserID: user.ID,
		Title:  "Emergency repairs",
		Amount: decimal.NewFromInt(1300),
		Date:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
	})

	budget, err := models.SetBudget(user.ID, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), models.BudgetUpdate{Limit: limit(1200)})
	suite.Require().Nil(err)

	suite.Assert().True(budget.CarriedOver.IsZero(), "overspending must never produce a negative carry, got %s", budget.CarriedOver)
}

func (suite *TestSuiteStandard) TestSetBudgetUpdatesSameRecord() {
	user := suite.createTestUser(models.User{Name: "Jane"})
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	first, err := models.SetBudget(user.ID, now, models.BudgetUpdate{
		Limit:          limit(800),
		CategoryLimits: models.CategoryLimits{"Food": decimal.NewFromInt(300)},
	})
	suite.Require().Nil(err)

	second, err := models.SetBudget(user.ID, now.Add(time.Hour), models.BudgetUpdate{
		CategoryLimits: models.CategoryLimits{"Travel": decimal.NewFromInt(150)},
	})
	suite.Require().Nil(err)

	// Repeated calls in the same month mutate the same record
	suite.Assert().Equal(first.ID, second.ID)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Budget{}).Where("user_id = ?", user.ID).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)

	// The limit is kept, the category limits are replaced
	suite.Assert().True(second.Limit.Equal(decimal.NewFromInt(800)))
	suite.Assert().NotContains(second.CategoryLimits, "Food")
	suite.Assert().True(second.CategoryLimits["Travel"].Equal(decimal.NewFromInt(150)))

	// Every call appends a history entry, even a no-op one
	suite.Assert().Len(second.Entries, 2)
	suite.Assert().True(second.Entries[0].Limit.Equal(decimal.NewFromInt(800)), "existing history entries must not be modified")
	suite.Assert().True(second.Entries[0].Date.Before(second.Entries[1].Date))
}

func (suite *TestSuiteStandard) TestSetBudgetHistoryGrowth() {
	user := suite.createTestUser(models.User{Name: "Jane"})
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		budget, err := models.SetBudget(user.ID, now.Add(time.Duration(i)*time.Minute), models.BudgetUpdate{})
		suite.Require().Nil(err)
		suite.Assert().Len(budget.Entries, i+1)
	}
}

func (suite *TestSuiteStandard) TestSetBudgetInheritsRollover() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	suite.createTestBudget(models.Budget{
		UserID:          user.ID,
		Month:           3,
		Year:            2024,
		Limit:           decimal.NewFromInt(500),
		RolloverEnabled: false,
	})

	// Without an explicit flag, the previous month's setting is inherited
	budget, err := models.SetBudget(user.ID, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), models.BudgetUpdate{Limit: limit(600)})
	suite.Require().Nil(err)

	suite.Assert().False(budget.RolloverEnabled)
	suite.Assert().True(budget.CarriedOver.IsZero(), "disabled rollover must not carry a balance")
}

func (suite *TestSuiteStandard) TestSetBudgetExplicitFlagWins() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	suite.createTestBudget(models.Budget{
		UserID:          user.ID,
		Month:           3,
		Year:            2024,
		Limit:           decimal.NewFromInt(500),
		RolloverEnabled: false,
	})

	budget, err := models.SetBudget(user.ID, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), models.BudgetUpdate{Rollover: boolP(true)})
	suite.Require().Nil(err)

	suite.Assert().True(budget.RolloverEnabled)
	suite.Assert().True(budget.CarriedOver.Equal(decimal.NewFromInt(500)))
}

func (suite *TestSuiteStandard) TestSetBudgetAcrossYearBoundary() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	// December 2023 with nothing spent
	suite.createTestBudget(models.Budget{
		UserID:          user.ID,
		Month:           11,
		Year:            2023,
		Limit:           decimal.NewFromInt(500),
		RolloverEnabled: true,
	})

	budget, err := models.SetBudget(user.ID, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), models.BudgetUpdate{Limit: limit(1000)})
	suite.Require().Nil(err)

	suite.Assert().Equal(0, budget.Month)
	suite.Assert().Equal(2024, budget.Year)
	suite.Assert().True(budget.CarriedOver.Equal(decimal.NewFromInt(500)))
}

func (suite *TestSuiteStandard) TestRemainingCountsCreationTime() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	budget := suite.createTestBudget(models.Budget{
		UserID: user.ID,
		Month:  0,
		Year:   2024,
		Limit:  decimal.NewFromInt(1000),
	})

	// The business date is outside the month, but the record was created
	// inside it, so the expense counts
	suite.createTestExpense(models.Expense{
		UserID: user.ID,
		Title:  "Backdated invoice",
		Amount: decimal.NewFromInt(400),
		Date:   time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC),
		DefaultModel: models.DefaultModel{
			Timestamps: models.Timestamps{CreatedAt: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
		},
	})

	remaining, err := budget.Remaining()
	suite.Require().Nil(err)
	suite.Assert().True(remaining.Equal(decimal.NewFromInt(600)), "remaining is %s, expected 600", remaining)
}

func (suite *TestSuiteStandard) TestRemainingIgnoresOtherMonths() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	budget := suite.createTestBudget(models.Budget{
		UserID: user.ID,
		Month:  0,
		Year:   2024,
		Limit:  decimal.NewFromInt(1000),
	})

	suite.createTestExpense(models.Expense{
		UserID: user.ID,
		Title:  "Outside the window",
		Amount: decimal.NewFromInt(999),
		Date:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		DefaultModel: models.DefaultModel{
			Timestamps: models.Timestamps{CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	})

	remaining, err := budget.Remaining()
	suite.Require().Nil(err)
	suite.Assert().True(remaining.Equal(decimal.NewFromInt(1000)))
}

func (suite *TestSuiteStandard) TestRemainingIncludesCarry() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	budget := suite.createTestBudget(models.Budget{
		UserID:      user.ID,
		Month:       6,
		Year:        2024,
		Limit:       decimal.NewFromInt(100),
		CarriedOver: decimal.NewFromInt(50),
	})

	suite.createTestExpense(models.Expense{
		UserID: user.ID,
		Title:  "Groceries",
		Amount: decimal.NewFromInt(120),
		Date:   time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC),
	})

	remaining, err := budget.Remaining()
	suite.Require().Nil(err)
	suite.Assert().True(remaining.Equal(decimal.NewFromInt(30)))
}

func (suite *TestSuiteStandard) TestBudgetForMonth() {
	user := suite.createTestUser(models.User{Name: "Jane"})

	_, err := models.BudgetForMonth(user.ID, types.NewMonth(2024, time.April))
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	created := suite.createTestBudget(models.Budget{
		UserID: user.ID,
		Month:  3,
		Year:   2024,
		Limit:  decimal.NewFromInt(250),
	})

	budget, err := models.BudgetForMonth(user.ID, types.NewMonth(2024, time.April))
	suite.Require().Nil(err)
	suite.Assert().Equal(created.ID, budget.ID)
}

func (suite *TestSuiteStandard) TestEffectiveLimit() {
	budget := models.Budget{
		Limit:       decimal.NewFromInt(1000),
		CarriedOver: decimal.NewFromInt(300),
	}

	suite.Assert().True(budget.EffectiveLimit().Equal(decimal.NewFromInt(1300)))
}

func (suite *TestSuiteStandard) TestSetBudgetDatabaseClosed() {
	user := suite.createTestUser(models.User{Name: "Jane"})
	suite.CloseDB()

	_, err := models.SetBudget(user.ID, time.Now(), models.BudgetUpdate{Limit: limit(100)})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
