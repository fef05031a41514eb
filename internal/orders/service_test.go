package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourier/internal/models"
)

func TestListByStatusToken_UnknownTokenListsAcceptedTokens(t *testing.T) {
	s := NewService(nil, nil, nil)

	// "delivered" is a real lifecycle status but not a list token.
	_, err := s.ListByStatusToken(context.Background(), "delivered")

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeInvalidOrderState, appErr.Code)
	assert.Equal(t, "delivered", appErr.Details["status"])
	assert.Equal(t, []string{"new", "ready"}, appErr.Details["must_be_one_of"])
}

func TestListTokenNames_StableOrder(t *testing.T) {
	assert.Equal(t, []string{"new", "ready"}, listTokenNames())
}
