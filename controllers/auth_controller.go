package controllers

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"storefront/apperr"
	"storefront/httpx"
	"storefront/models"
	"storefront/store"
)

type AuthController struct {
	Users store.UserStore
}

func NewAuthController(users store.UserStore) *AuthController {
	return &AuthController{Users: users}
}

// Register handles POST /api/users/register.
func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.Fail(c, apperr.Invalid("name, email and password are required"))
		return
	}

	if _, err := ac.Users.GetByEmail(c.Request.Context(), input.Email); err == nil {
		httpx.Fail(c, apperr.Invalid("Email already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.Fail(c, apperr.Internal("failed to register user"))
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     models.RoleCustomer,
	}
	if err := ac.Users.Create(c.Request.Context(), &user); err != nil {
		httpx.Fail(c, err)
		return
	}

	token, err := signToken(&user)
	if err != nil {
		httpx.Fail(c, apperr.Internal("failed to sign token"))
		return
	}
	httpx.Created(c, userPayload(&user, token))
}

// Login handles POST /api/users/login.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.Fail(c, apperr.Invalid("email and password are required"))
		return
	}

	user, err := ac.Users.GetByEmail(c.Request.Context(), input.Email)
	if err != nil {
		httpx.Fail(c, apperr.Unauthorized("Invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		httpx.Fail(c, apperr.Unauthorized("Invalid email or password"))
		return
	}

	token, err := signToken(user)
	if err != nil {
		httpx.Fail(c, apperr.Internal("failed to sign token"))
		return
	}
	httpx.OK(c, userPayload(user, token))
}

// Me handles GET /api/users/me. A 401 here tells the client its stored
// token is stale and should be discarded.
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Users.GetByID(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		httpx.Fail(c, apperr.Unauthorized("Invalid or expired token"))
		return
	}
	httpx.OK(c, user)
}

func signToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID.Hex(),
		"role":   user.Role,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func userPayload(user *models.User, token string) gin.H {
	return gin.H{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"token": token,
	}
}
