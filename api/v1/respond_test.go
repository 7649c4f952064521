package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/gigmarket/api/services"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"email taken", services.ErrEmailTaken, http.StatusConflict},
		{"duplicate proposal", services.ErrDuplicateProposal, http.StatusConflict},
		{"unique violation", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"foreign key violation", gorm.ErrForeignKeyViolated, http.StatusBadRequest},
		{"invalid state", services.ErrInvalidState, http.StatusBadRequest},
		{"project not open", services.ErrProjectNotOpen, http.StatusBadRequest},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleError(c, tc.err)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
