package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeronimo114/comcer2/internal/domain"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, domain.IsRetryable(fmt.Errorf("query: %w", domain.ErrTransport)))
	assert.True(t, domain.IsRetryable(fmt.Errorf("login: %w", domain.ErrUnauthorized)))
	assert.False(t, domain.IsRetryable(fmt.Errorf("lote: %w", domain.ErrNotFound)))
	assert.False(t, domain.IsRetryable(domain.ErrMalformedPayload))
	assert.False(t, domain.IsRetryable(nil))
}
