package tagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest(t *testing.T) {
	r, err := DecodeRequest([]byte(`{"instance_id": "i-0123456789abcdef0", "tag_key": "Environment", "tag_value": "production", "extra": 1}`))
	require.NoError(t, err)
	assert.Equal(t, Request{
		InstanceID: "i-0123456789abcdef0",
		TagKey:     "Environment",
		TagValue:   "production",
	}, r)
}

func TestDecodeRequest_Missing(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		missing []string
	}{
		{"no tag_value", `{"instance_id": "i-1", "tag_key": "k"}`, []string{"tag_value"}},
		{"no instance_id", `{"tag_key": "k", "tag_value": "v"}`, []string{"instance_id"}},
		{"null tag_key", `{"instance_id": "i-1", "tag_key": null, "tag_value": "v"}`, []string{"tag_key"}},
		{"empty tag_key", `{"instance_id": "i-1", "tag_key": "", "tag_value": "v"}`, []string{"tag_key"}},
		{"empty object", `{}`, []string{"instance_id", "tag_key", "tag_value"}},
		{"null payload", `null`, []string{"instance_id", "tag_key", "tag_value"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest([]byte(tt.payload))
			var mfe *MissingFieldError
			require.ErrorAs(t, err, &mfe)
			assert.Equal(t, tt.missing, mfe.Fields)
		})
	}
}

func TestDecodeRequest_NoCoercion(t *testing.T) {
	_, err := DecodeRequest([]byte(`{"instance_id": "i-1", "tag_key": "k", "tag_value": 42}`))
	require.Error(t, err)
	assert.False(t, IsErrMissingField(err))

	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestDecodeRequest_Malformed(t *testing.T) {
	_, err := DecodeRequest([]byte(`{"instance_id": `))
	require.Error(t, err)
	assert.False(t, IsErrMissingField(err))
}

func TestMissingFieldError(t *testing.T) {
	err := Request{TagKey: "k"}.Validate()
	assert.EqualError(t, err, "missing required field: instance_id, tag_value")
}
