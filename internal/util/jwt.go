package util

import (
	"academy_backend/internal/access"
	"academy_backend/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims 登录主体。Kind 区分后台员工与学员账号，员工附带角色集合。
type Claims struct {
	ActorID uint              `json:"actor_id"`
	Kind    access.ActorKind  `json:"kind"`
	Roles   []model.StaffRole `json:"roles,omitempty"`
	Email   string            `json:"email"`
	jwt.RegisteredClaims
}

// Actor 把 claims 还原为访问控制主体
func (c *Claims) Actor() *access.Actor {
	if c == nil {
		return nil
	}
	if c.Kind == access.KindStaff {
		return access.StaffActor(c.ActorID, c.Roles)
	}
	return access.ClientActor(c.ActorID)
}

func GenerateStaffJWT(user *model.User, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		ActorID: user.ID,
		Kind:    access.KindStaff,
		Roles:   user.DecodeRoles(),
		Email:   user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GenerateClientJWT(account *model.Account, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		ActorID: account.ID,
		Kind:    access.KindClient,
		Email:   account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

func GetClaimsFromContext(c *gin.Context) *Claims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetActorFromContext 匿名请求返回 nil
func GetActorFromContext(c *gin.Context) *access.Actor {
	return GetClaimsFromContext(c).Actor()
}
