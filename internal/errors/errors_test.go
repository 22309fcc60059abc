package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := InvalidInput("bad record", nil)
	wrapped := Wrap(base, "assess failed")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Equal(t, "assess failed: bad record", wrapped.Error())
}

func TestWrapPlainError(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := Wrapf(cause, "step %d", 3)

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, cause))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeNotFound, stderrors.New("missing model"))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Nil(t, WithCode(CodeNotFound, nil))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidInput("x", nil), http.StatusBadRequest},
		{ValidationError("x"), http.StatusBadRequest},
		{NotFound("model"), http.StatusNotFound},
		{ExternalServiceError("classifier", nil), http.StatusBadGateway},
		{ProbabilityOutOfRange("m", nil), http.StatusBadGateway},
		{Unavailable("no model"), http.StatusServiceUnavailable},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
