package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims в ID лежит идентификатор пользователя
type UserClaims struct {
	jwt.RegisteredClaims
}
