package v1

import (
	"net/http"
	"time"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetExpense)
		r.PATCH("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

type ExpenseCreate struct {
	Title    string          `json:"title" example:"Weekly groceries"`
	Amount   decimal.Decimal `json:"amount" example:"84.23"`
	Category string          `json:"category" example:"Food"` // Detected from the title when empty
	Date     time.Time       `json:"date" example:"2024-03-14T00:00:00Z"`
}

// ExpenseUpdate carries the optional fields of an expense update. Absent
// fields leave the current values untouched.
type ExpenseUpdate struct {
	Title    *string          `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category"`
	Date     *time.Time       `json:"date"`
}

// @Summary		Create expense
// @Description	Creates a new expense for the authenticated user
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	models.Expense
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			expense	body		ExpenseCreate	true	"Expense"
// @Router			/v1/expenses [post]
// @Security		BearerAuth
func CreateExpense(c *gin.Context) {
	var create ExpenseCreate
	err := httputil.BindData(c, &create)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if create.Title == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errTitleRequired.Error()})
		return
	}

	expense := models.Expense{
		UserID:   currentUser(c).ID,
		Title:    create.Title,
		Amount:   create.Amount,
		Category: create.Category,
		Date:     create.Date,
	}
	err = models.DB.Create(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// @Summary		Get expenses
// @Description	Returns the expenses of the authenticated user, newest first
// @Tags			Expenses
// @Produce		json
// @Success		200	{array}		models.Expense
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/expenses [get]
// @Security		BearerAuth
func GetExpenses(c *gin.Context) {
	expenses := make([]models.Expense, 0)
	err := models.DB.
		Where("user_id = ?", currentUser(c).ID).
		Order("created_at DESC").
		Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// @Summary		Get expense
// @Description	Returns a specific expense of the authenticated user
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	models.Expense
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [get]
// @Security		BearerAuth
func GetExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var expense models.Expense
	err = models.DB.First(&expense, "id = ? AND user_id = ?", uri.ID.UUID, currentUser(c).ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, expense)
}

// @Summary		Update expense
// @Description	Updates an expense. Only values to be updated need to be specified.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	models.Expense
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense	body		ExpenseUpdate	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
// @Security		BearerAuth
func UpdateExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var expense models.Expense
	err = models.DB.First(&expense, "id = ? AND user_id = ?", uri.ID.UUID, currentUser(c).ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var update ExpenseUpdate
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if update.Title != nil {
		expense.Title = *update.Title
	}
	if update.Amount != nil {
		expense.Amount = *update.Amount
	}
	if update.Category != nil {
		expense.Category = *update.Category
	}
	if update.Date != nil {
		expense.Date = *update.Date
	}

	err = models.DB.Save(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, expense)
}

// @Summary		Delete expense
// @Description	Deletes an expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [delete]
// @Security		BearerAuth
func DeleteExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var expense models.Expense
	err = models.DB.First(&expense, "id = ? AND user_id = ?", uri.ID.UUID, currentUser(c).ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
}
