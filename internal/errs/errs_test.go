package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestConstructors(t *testing.T) {
	custom := "PRODUCT_NOT_FOUND"

	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found custom code", NewNotFoundError("missing", true, &custom), http.StatusNotFound, custom},
		{"conflict", NewConflictError("dup", true, nil), http.StatusConflict, "CONFLICT"},
		{"too many", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestHTTPErrorMatchesThroughWrapping(t *testing.T) {
	base := NewNotFoundError("Product not found", true, nil)
	wrapped := fmt.Errorf("loading product: %w", base)

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "Product not found", httpErr.Error())
	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	renamed := base.WithMessage("News not found")
	assert.Equal(t, "News not found", renamed.Message)
	assert.Equal(t, base.Status, renamed.Status)
	assert.Equal(t, "Product not found", base.Message)
}
