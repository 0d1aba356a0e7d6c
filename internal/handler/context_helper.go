package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/policy"
)

func sessionClaimsFromContext(c *gin.Context) *models.SessionClaims {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		return nil
	}
	return claims
}

func actorFromContext(c *gin.Context) policy.Actor {
	return policy.FromClaims(sessionClaimsFromContext(c))
}
