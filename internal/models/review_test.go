package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetFromRefs(t *testing.T) {
	id := uuid.New()

	t.Run("exactly one reference", func(t *testing.T) {
		target, err := TargetFromRefs(nil, &id, nil)
		require.NoError(t, err)
		assert.Equal(t, ReviewTargetAgency, target.Kind())
		assert.Equal(t, id, target.ID())
		assert.True(t, target.Valid())
	})

	t.Run("none", func(t *testing.T) {
		_, err := TargetFromRefs(nil, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidReviewTarget)
	})

	t.Run("two", func(t *testing.T) {
		other := uuid.New()
		_, err := TargetFromRefs(&id, nil, &other)
		assert.ErrorIs(t, err, ErrInvalidReviewTarget)
	})

	t.Run("nil uuid", func(t *testing.T) {
		zero := uuid.Nil
		_, err := TargetFromRefs(nil, nil, &zero)
		assert.ErrorIs(t, err, ErrInvalidReviewTarget)
	})
}

func TestReviewTargetRefsRoundTrip(t *testing.T) {
	id := uuid.New()
	for _, target := range []ReviewTarget{AgentTarget(id), AgencyTarget(id), PropertyTarget(id)} {
		back, err := TargetFromRefs(target.Refs())
		require.NoError(t, err)
		assert.Equal(t, target, back)
	}
}

func TestNewReviewTarget(t *testing.T) {
	_, err := NewReviewTarget("listing", uuid.New())
	assert.ErrorIs(t, err, ErrInvalidReviewTarget)

	_, err = NewReviewTarget(ReviewTargetAgent, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidReviewTarget)
}

func TestReviewTargetJSON(t *testing.T) {
	id := uuid.MustParse("7b1d3f0e-4a6c-4c1e-9a59-1f0b3f2b9d11")
	data, err := json.Marshal(PropertyTarget(id))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"property","id":"7b1d3f0e-4a6c-4c1e-9a59-1f0b3f2b9d11"}`, string(data))

	data, err = json.Marshal(ReviewTarget{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
