// SPDX-License-Identifier: ice License 1.0

package testing

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/goccy/go-reflect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

func GIVEN(_ string, logic func()) {
	logic()
}

func WHEN(_ string, logic func()) {
	logic()
}

func THEN(logic func()) {
	logic()
}

func IT(_ string, logic func()) {
	logic()
}

func AND(_ string, logic func()) {
	logic()
}

// AssertSymmetricMarshallingUnmarshalling checks that expectedUnmarshalling marshals to expectedMarshalling (compared compacted)
// and that expectedMarshalling unmarshals back to expectedUnmarshalling. If expectedEmptyMarshallingArg is provided,
// it also checks what the zero value marshals to.
func AssertSymmetricMarshallingUnmarshalling[OBJ any](tb testing.TB, expectedUnmarshalling *OBJ, expectedMarshalling string, expectedEmptyMarshallingArg ...string) { //nolint:lll // .
	tb.Helper()
	expectedMarshallingCompactedBuffer := new(bytes.Buffer)
	require.NoError(tb, json.Compact(expectedMarshallingCompactedBuffer, []byte(expectedMarshalling)))
	if len(expectedEmptyMarshallingArg) == 1 {
		expectedEmptyMarshallingCompactedBuffer := new(bytes.Buffer)
		require.NoError(tb, json.Compact(expectedEmptyMarshallingCompactedBuffer, []byte(expectedEmptyMarshallingArg[0])))
		assert.Equal(tb, expectedEmptyMarshallingCompactedBuffer.String(), MustMarshal(tb, new(OBJ)))
	}
	assert.Equal(tb, expectedMarshallingCompactedBuffer.String(), MustMarshal(tb, expectedUnmarshalling))
	zeroValueIgnoredFields(expectedUnmarshalling)
	assert.EqualValues(tb, expectedUnmarshalling, MustUnmarshal[OBJ](tb, expectedMarshalling))
}

// AssertSymmetricEncodings round trips val through yaml and msgpack.
func AssertSymmetricEncodings[OBJ any](tb testing.TB, val *OBJ) {
	tb.Helper()
	yamlBytes, err := yaml.Marshal(val)
	require.NoError(tb, err)
	fromYAML := new(OBJ)
	require.NoError(tb, yaml.Unmarshal(yamlBytes, fromYAML), string(yamlBytes))
	assert.EqualValues(tb, val, fromYAML)

	msgpackBytes, err := msgpack.Marshal(val)
	require.NoError(tb, err)
	fromMsgpack := new(OBJ)
	require.NoError(tb, msgpack.Unmarshal(msgpackBytes, fromMsgpack))
	assert.EqualValues(tb, val, fromMsgpack)
}

func zeroValueIgnoredFields(val any) {
	vType := reflect.TypeOf(val).Elem()
	vValue := reflect.ValueOf(val).Elem()
	if vType.Kind() != reflect.Struct {
		return
	}
	for ix := 0; ix < vType.NumField(); ix++ {
		if vType.Field(ix).PkgPath != "" {
			continue
		}
		if jsonTag := vType.Field(ix).Tag.Get("json"); jsonTag == "-" {
			vValue.Field(ix).Set(reflect.Zero(vType.Field(ix).Type))
		}
		if vValue.Field(ix).Kind() == reflect.Struct {
			zeroValueIgnoredFields(vValue.Field(ix).Addr().Interface())
		}
		if vValue.Field(ix).Kind() == reflect.Ptr && !vValue.Field(ix).IsNil() {
			if vValue.Field(ix).Elem().Kind() == reflect.Struct {
				zeroValueIgnoredFields(vValue.Field(ix).Interface())
			}
		}
	}
}

func MustMarshal(tb testing.TB, val any) string {
	tb.Helper()
	valueBytes, err := json.MarshalContext(context.Background(), val)
	require.NoError(tb, err)

	return string(valueBytes)
}

func MustUnmarshal[T any](tb testing.TB, val string) *T {
	tb.Helper()
	tt := new(T)
	require.NoError(tb, json.UnmarshalContext(context.Background(), []byte(val), tt))

	return tt
}
