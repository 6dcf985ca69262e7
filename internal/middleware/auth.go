package middleware

import (
	"academy_backend/internal/access"
	"academy_backend/internal/config"
	"academy_backend/internal/model"
	"academy_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

func extractToken(c *gin.Context) string {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}

	if tokenString == "" {
		tokenString = c.Query("token")
	}

	return tokenString
}

// AuthMiddleware 强制认证，令牌无效时直接返回401
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// TryAuthMiddleware 可选认证，匿名请求照常放行
// 课程详情等接口需要根据访问者身份裁剪返回内容
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				c.Set("claims", claims)
			}
		}
		c.Next()
	}
}

// RoleMiddleware 员工角色校验，超级管理员直接放行
func RoleMiddleware(roles ...model.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := util.GetActorFromContext(c)
		if actor == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if actor.Kind != access.KindStaff {
			util.Forbidden(c)
			c.Abort()
			return
		}

		hasRole := actor.HasRole(model.RoleSuperAdmin)
		if !hasRole {
			for _, role := range roles {
				if actor.HasRole(role) {
					hasRole = true
					break
				}
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Authorize 按策略表校验当前访问者对集合的操作权限，
// 授权结果写入上下文供控制器细化行级范围
func Authorize(collection access.Collection, op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := util.GetActorFromContext(c)
		d := access.Can(actor, collection, op)
		if !d.Allowed {
			if actor == nil {
				util.Unauthorized(c)
			} else {
				util.Forbidden(c)
			}
			c.Abort()
			return
		}
		c.Set("accessDecision", d)
		c.Next()
	}
}

// DecisionFromContext 取出 Authorize 写入的授权结果
func DecisionFromContext(c *gin.Context) access.Decision {
	if v, ok := c.Get("accessDecision"); ok {
		if d, ok := v.(access.Decision); ok {
			return d
		}
	}
	return access.Decision{}
}

// ClientMiddleware 仅允许学员账号访问
func ClientMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := util.GetActorFromContext(c)
		if actor == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if actor.Kind != access.KindClient {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type ClientActivityRepo interface {
	UpdateLastLogin(accountID uint) error
}

func ActivityMiddleware(repo ClientActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := util.GetActorFromContext(c)
		if actor != nil && actor.Kind == access.KindClient {
			// 异步更新，不阻塞主流程
			go repo.UpdateLastLogin(actor.ID)
		}
		c.Next()
	}
}
