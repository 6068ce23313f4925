package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func validationTestRouter(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MaxRequestSize(maxBytes))
	router.Use(ValidateContentType("application/json"))
	router.POST("/apply", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "body too large"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/applications", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestValidation_JSONPostPasses(t *testing.T) {
	router := validationTestRouter(1 << 20)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/apply", strings.NewReader(`{"job_url":"https://example.com/job/1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidation_WrongContentTypeRejected(t *testing.T) {
	router := validationTestRouter(1 << 20)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/apply", strings.NewReader("job_url=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidation_GetSkipsContentTypeCheck(t *testing.T) {
	router := validationTestRouter(1 << 20)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/applications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidation_OversizedBodyRejected(t *testing.T) {
	router := validationTestRouter(16)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/apply", strings.NewReader(strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
