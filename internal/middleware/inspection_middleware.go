package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rainadr/veripass/internal/inspection"
)

func InspectionMiddleware(executor *inspection.Executor, reconciler *inspection.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("inspection_executor", executor)
		c.Set("inspection_reconciler", reconciler)
		c.Next()
	}
}

func GetExecutor(c *gin.Context) *inspection.Executor {
	executor, exists := c.Get("inspection_executor")
	if !exists {
		return nil
	}
	return executor.(*inspection.Executor)
}

func GetReconciler(c *gin.Context) *inspection.Reconciler {
	reconciler, exists := c.Get("inspection_reconciler")
	if !exists {
		return nil
	}
	return reconciler.(*inspection.Reconciler)
}
