package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rainadr/veripass/internal/token"
)

func SigningMiddleware(issuer *token.Issuer, verifier *token.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("token_issuer", issuer)
		c.Set("token_verifier", verifier)
		c.Next()
	}
}

func GetIssuer(c *gin.Context) *token.Issuer {
	issuer, exists := c.Get("token_issuer")
	if !exists {
		return nil
	}
	return issuer.(*token.Issuer)
}

func GetVerifier(c *gin.Context) *token.Verifier {
	verifier, exists := c.Get("token_verifier")
	if !exists {
		return nil
	}
	return verifier.(*token.Verifier)
}
