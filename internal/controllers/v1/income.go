package v1

import (
	"net/http"
	"time"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterIncomeRoutes registers the routes for income records with
// the RouterGroup that is passed.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetIncomes)
		r.POST("", CreateIncome)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetIncome)
		r.PATCH("/:id", UpdateIncome)
		r.DELETE("/:id", DeleteIncome)
	}
}

type IncomeCreate struct {
	Amount decimal.Decimal `json:"amount" example:"2500"`
	Source string          `json:"source" example:"Salary"`
	Date   time.Time       `json:"date" example:"2024-03-01T00:00:00Z"`
}

// IncomeUpdate carries the optional fields of an income update. Absent
// fields leave the current values untouched.
type IncomeUpdate struct {
	Amount *decimal.Decimal `json:"amount"`
	Source *string          `json:"source"`
	Date   *time.Time       `json:"date"`
}

// @Summary		Create income
// @Description	Creates a new income record for the authenticated user
// @Tags			Income
// @Accept			json
// @Produce		json
// @Success		201		{object}	models.Income
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			income	body		IncomeCreate	true	"Income"
// @Router			/v1/income [post]
// @Security		BearerAuth
func CreateIncome(c *gin.Context) {
	var create IncomeCreate
	err := httputil.BindData(c, &create)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if create.Source == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errSourceRequired.Error()})
		return
	}

	income := models.Income{
		UserID: currentUser(c).ID,
		Amount: create.Amount,
		Source: create.Source,
		Date:   create.Date,
	}
	err = models.DB.Create(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, income)
}

// @Summary		Get income records
// @Description	Returns the income records of the authenticated user, most recent date first
// @Tags			Income
// @Produce		json
// @Success		200	{array}		models.Income
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/income [get]
// @Security		BearerAuth
func GetIncomes(c *gin.Context) {
	incomes := make([]models.Income, 0)
	err := models.DB.
		Where("user_id = ?", currentUser(c).ID).
		Order("date DESC").
		Find(&incomes).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, incomes)
}

// @Summary		Get income record
// @Description	Returns a specific income record of the authenticated user
// @Tags			Income
// @Produce		json
// @Success		200	{object}	models.Income
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/income/{id} [get]
// @Security		BearerAuth
func GetIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var income models.Income
	err = models.DB.First(&income, "id = ? AND user_id = ?", uri.ID.UUID, currentUser(c).ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, income)
}

// @Summary		Update income record
// @Description	Updates an income record. Only values to be updated need to be specified.
// @Tags			Income
// @Accept			json
// @Produce		json
// @Success		200		{object}	models.Income
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			income	body		IncomeUpdate	true	"Income"
// @Router			/v1/income/{id} [patch]
// @Security		BearerAuth
func UpdateIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var income models.Income
	err = models.DB.First(&income, "id = ? AND user_id = ?", uri.ID.UUID, currentUser(c).ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var update IncomeUpdate
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if update.Amount != nil {
		income.Amount = *update.Amount
	}
	if update.Source != nil {
		income.Source = *update.Source
	}
	if update.Date != nil {
		income.Date = *update.Date
	}

	err = models.DB.Save(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, income)
}

// @Summary		Delete income record
// @Description	Deletes an income record
// @Tags			Income
// @Produce		json
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/income/{id} [delete]
// @Security		BearerAuth
func DeleteIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var income models.Income
	err = models.DB.First(&income, "id = ? AND user_id = ?", uri.ID.UUID, currentUser(c).ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Income removed"})
}
