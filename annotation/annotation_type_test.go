// SPDX-License-Identifier: ice License 1.0

package annotation

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ice-blockchain/spdx/record"
)

func TestAnnotationType(t *testing.T) {
	t.Parallel()
	for _, annotationType := range AnnotationTypes() {
		assert.True(t, annotationType.IsValid())
		text, err := annotationType.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, annotationType.String(), string(text))
		parsed, err := ParseAnnotationType(string(text))
		require.NoError(t, err)
		assert.Equal(t, annotationType, parsed)
	}
	assert.Equal(t, "REVIEW", AnnotationTypeReview.String())
	assert.Equal(t, "OTHER", AnnotationTypeOther.String())

	var zero AnnotationType
	assert.False(t, zero.IsValid())
	assert.Equal(t, "AnnotationType(0)", zero.String())
	_, err := zero.MarshalText()
	require.ErrorIs(t, err, record.ErrInvariantViolation)

	for _, text := range []string{"APPROVED", "review", "Other", "", " OTHER"} {
		_, err = ParseAnnotationType(text)
		require.ErrorIs(t, err, record.ErrInvalidEnumValue, text)
		require.ErrorIs(t, zero.UnmarshalText([]byte(text)), record.ErrInvalidEnumValue, text)
	}
	assert.Equal(t, AnnotationType(0), zero)
}

func TestAnnotationTypeJSON(t *testing.T) {
	t.Parallel()
	type tmpStruct struct {
		Type AnnotationType `json:"type"`
	}
	bytes, err := json.MarshalContext(context.Background(), tmpStruct{Type: AnnotationTypeReview})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"REVIEW"}`, string(bytes))
	var decoded tmpStruct
	require.NoError(t, json.UnmarshalContext(context.Background(), []byte(`{"type":"OTHER"}`), &decoded))
	assert.Equal(t, AnnotationTypeOther, decoded.Type)
	require.Error(t, json.UnmarshalContext(context.Background(), []byte(`{"type":"APPROVED"}`), &decoded))
}
