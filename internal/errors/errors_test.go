package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenyay/optlib/internal/logging"
)

func TestErrorString(t *testing.T) {
	cause := stderrors.New("connection refused")

	assert.Equal(t, "server: create: decode body: connection refused",
		Wrap(cause, "server", "create", "decode body").Error())
	assert.Equal(t, "server: get: experiment abc not found",
		NotFoundf("server", "get", "experiment %s not found", "abc").Error())
	assert.Equal(t, "dimension must be positive",
		Invalidf("", "", "dimension must be positive").Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "server", "create", "decode body"))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, "server", "run", "experiment failed")

	assert.True(t, stderrors.Is(err, cause))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Invalid, KindOf(Invalidf("server", "create", "bad request")))
	assert.Equal(t, NotFound, KindOf(NotFoundf("server", "get", "missing")))
	assert.Equal(t, Internal, KindOf(stderrors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NotFoundf("server", "get", "missing"))
	assert.Equal(t, NotFound, KindOf(wrapped))
}

func TestRecoveryMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.ErrorLevel, &buf)

	handler := RecoveryMiddleware(logger)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			panic("unexpected state")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/experiments", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "unexpected state")
	assert.Contains(t, buf.String(), "/api/v1/experiments")
}
