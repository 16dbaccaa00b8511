package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/caffio-app/caffio-api/middleware"
)

// IssueCustomerToken returns a signed session token for a customer account
func IssueCustomerToken(t *testing.T, customerID uint) string {
	t.Helper()

	token, err := middleware.GenerateToken(customerID, middleware.SubjectCustomer)
	if err != nil {
		t.Fatalf("Failed to issue customer token: %v", err)
	}
	return token
}

// IssueAdminToken returns a signed session token for a cafe-owner account
func IssueAdminToken(t *testing.T, userID uint) string {
	t.Helper()

	token, err := middleware.GenerateToken(userID, middleware.SubjectAdmin)
	if err != nil {
		t.Fatalf("Failed to issue admin token: %v", err)
	}
	return token
}

// SetMockAuthContext sets up a mock authenticated context for testing
func SetMockAuthContext(c *gin.Context, accountID uint, kind string) {
	c.Set("account_id", accountID)
	c.Set("account_kind", kind)
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
