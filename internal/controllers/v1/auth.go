package v1

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenLifetime is how long a password reset token stays valid.
const resetTokenLifetime = 15 * time.Minute

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login)

	r.OPTIONS("/change-password", httputil.OptionsPost)
	r.POST("/change-password", RequireAuth(), ChangePassword)

	r.OPTIONS("/forgot-password", httputil.OptionsPost)
	r.POST("/forgot-password", ForgotPassword)

	r.OPTIONS("/reset-password", httputil.OptionsPost)
	r.POST("/reset-password", ResetPassword)

	r.OPTIONS("/test-email", httputil.OptionsGet)
	r.GET("/test-email", TestEmail)
}

type RegisterRequest struct {
	Name     string `json:"name" example:"Jane Doe"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  UsersData `json:"user"`
}

type UsersData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" example:"jane@example.com"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// @Summary		Register user
// @Description	Creates a new user account
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	MessageResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			user	body		RegisterRequest	true	"User"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var request RegisterRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	email := models.NormalizeEmail(request.Email)
	if request.Name == "" || email == "" || request.Password == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errFieldsRequired.Error()})
		return
	}

	_, err = models.UserByEmail(email)
	if err == nil {
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrEmailTaken.Error()})
		return
	}
	if !errors.Is(err, models.ErrResourceNotFound) {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	user := models.User{
		Name:         request.Name,
		Email:        email,
		PasswordHash: string(hash),
	}
	err = models.DB.Create(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// @Summary		Log in
// @Description	Verifies the credentials and returns a bearer token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Unknown email and wrong password are indistinguishable on purpose
	user, err := models.UserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			c.JSON(http.StatusBadRequest, httpError{Error: models.ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrInvalidCredentials.Error()})
		return
	}

	token, err := issueToken(user, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: UsersData{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

// @Summary		Change password
// @Description	Changes the password of the authenticated user
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	MessageResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			passwords	body		ChangePasswordRequest	true	"Passwords"
// @Router			/v1/auth/change-password [post]
// @Security		BearerAuth
func ChangePassword(c *gin.Context) {
	var request ChangePasswordRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if request.CurrentPassword == "" || request.NewPassword == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errFieldsRequired.Error()})
		return
	}

	user := currentUser(c)
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.CurrentPassword))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errWrongPassword.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	err = models.DB.Model(&user).Update("password_hash", string(hash)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// @Summary		Request password reset
// @Description	Generates a reset token and mails a reset link. Responds with 200 for unknown email addresses so that they cannot be probed.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	MessageResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			email	body		ForgotPasswordRequest	true	"Email"
// @Router			/v1/auth/forgot-password [post]
func ForgotPassword(c *gin.Context) {
	var request ForgotPasswordRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	email := models.NormalizeEmail(request.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errEmailRequired.Error()})
		return
	}

	user, err := models.UserByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			c.JSON(http.StatusOK, MessageResponse{Message: "If the email exists, a reset token was generated."})
			return
		}
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}
	token := hex.EncodeToString(raw)
	hashed := sha256.Sum256([]byte(token))
	expires := time.Now().In(time.UTC).Add(resetTokenLifetime)

	err = models.DB.Model(&user).Updates(map[string]any{
		"reset_token_hash":    hex.EncodeToString(hashed[:]),
		"reset_token_expires": expires,
	}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if mail == nil || !cfg.MailConfigured() {
		c.JSON(http.StatusInternalServerError, httpError{Error: errMailNotSetUp.Error()})
		return
	}

	link := cfg.AppURL + "/reset-password?token=" + token
	err = mail.SendPasswordReset(user.Email, link)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Reset link sent to your email."})
}

// @Summary		Reset password
// @Description	Sets a new password using a reset token from the mailed link
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	MessageResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			reset	body		ResetPasswordRequest	true	"Token and new password"
// @Router			/v1/auth/reset-password [post]
func ResetPassword(c *gin.Context) {
	var request ResetPasswordRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if request.Token == "" || request.NewPassword == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errTokenRequired.Error()})
		return
	}

	hashed := sha256.Sum256([]byte(request.Token))

	var user models.User
	err = models.DB.
		Where("reset_token_hash = ? AND reset_token_expires > ?", hex.EncodeToString(hashed[:]), time.Now().In(time.UTC)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			c.JSON(http.StatusBadRequest, httpError{Error: models.ErrResetTokenInvalid.Error()})
			return
		}
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	err = models.DB.Model(&user).Updates(map[string]any{
		"password_hash":       string(hash),
		"reset_token_hash":    "",
		"reset_token_expires": nil,
	}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successful"})
}

// @Summary		Test email configuration
// @Description	Sends a test mail to the configured sender address
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	MessageResponse
// @Failure		500	{object}	httpError
// @Router			/v1/auth/test-email [get]
func TestEmail(c *gin.Context) {
	if mail == nil || !cfg.MailConfigured() {
		c.JSON(http.StatusInternalServerError, httpError{Error: errMailNotSetUp.Error()})
		return
	}

	err := mail.SendTest()
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Test email sent."})
}
