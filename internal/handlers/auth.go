package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	PIN      string `json:"pin" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login checks the single admin credential pair and issues a session
// token. There is exactly one tenant; no user rows exist.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.config.AdminUsername)) == 1
	pinOK := bcrypt.CompareHashAndPassword(h.config.AdminPINHash, []byte(req.PIN)) == nil
	if !usernameOK || !pinOK {
		h.log.Warn().Str("ip", c.ClientIP()).Msg("rejected login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or PIN"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: h.generateToken()})
}

func (h *Handlers) generateToken() string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": h.config.AdminUsername,
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(h.config.TokenTTLHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(h.config.JWTSecret))
	return tokenString
}

func (h *Handlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Remove "Bearer " prefix if present
		if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
			tokenString = tokenString[7:]
		}

		if !h.validToken(tokenString) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (h *Handlers) validToken(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil && token.Valid
}
