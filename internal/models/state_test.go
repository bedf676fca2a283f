package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_UnmarshalJSON(t *testing.T) {
	t.Run("string fields", func(t *testing.T) {
		var s State
		err := json.Unmarshal([]byte(`{"content_length":"100","last_modified":"Mon","lapis_data_version":"v1"}`), &s)
		require.NoError(t, err)
		assert.Equal(t, "100", s.ContentLength)
		assert.Equal(t, "Mon", s.LastModified)
		assert.Equal(t, DataVersion(`"v1"`), s.LapisDataVersion)
	})

	t.Run("numeric content length and version", func(t *testing.T) {
		var s State
		err := json.Unmarshal([]byte(`{"content_length": 4096, "last_modified": "Tue", "lapis_data_version": 1700000000}`), &s)
		require.NoError(t, err)
		assert.Equal(t, "4096", s.ContentLength)
		assert.Equal(t, DataVersion("1700000000"), s.LapisDataVersion)
	})

	t.Run("null data version is kept", func(t *testing.T) {
		var s State
		err := json.Unmarshal([]byte(`{"content_length":"1","last_modified":"x","lapis_data_version":null}`), &s)
		require.NoError(t, err)
		assert.True(t, s.LapisDataVersion.IsNull())
	})

	t.Run("missing field", func(t *testing.T) {
		var s State
		err := json.Unmarshal([]byte(`{"content_length":"1","last_modified":"x"}`), &s)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIncompleteState))
	})

	t.Run("numeric content length keeps its text", func(t *testing.T) {
		// 100 and the header "100" are the same fingerprint: no fall-through to the version check
		var s State
		require.NoError(t, json.Unmarshal([]byte(`{"content_length":100,"last_modified":"Mon","lapis_data_version":1}`), &s))
		assert.Equal(t, "100", s.ContentLength)
		assert.True(t, s.Fingerprint().Equal(Fingerprint{ContentLength: "100", LastModified: "Mon"}))
	})

	t.Run("null content length", func(t *testing.T) {
		var s State
		err := json.Unmarshal([]byte(`{"content_length":null,"last_modified":"x","lapis_data_version":1}`), &s)
		assert.Error(t, err)
	})

	t.Run("not an object", func(t *testing.T) {
		var s State
		assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &s))
	})
}

func TestState_MarshalJSON(t *testing.T) {
	s := State{ContentLength: "200", LastModified: "Tue", LapisDataVersion: DataVersion(`"v2"`)}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content_length":"200","last_modified":"Tue","lapis_data_version":"v2"}`, string(data))

	var empty State
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content_length":"","last_modified":"","lapis_data_version":null}`, string(data))
}

func TestDataVersion(t *testing.T) {
	num, err := NewDataVersion([]byte(" 42 "))
	require.NoError(t, err)
	str, err := NewDataVersion([]byte(`"42"`))
	require.NoError(t, err)

	assert.NotEqual(t, num, str, "number and string tokens must differ")
	assert.Equal(t, "42", num.String())
	assert.Equal(t, "42", str.String())

	_, err = NewDataVersion([]byte("not json"))
	assert.Error(t, err)
}

func TestParseDataVersion(t *testing.T) {
	tests := []struct {
		in   string
		want DataVersion
	}{
		{"42", DataVersion("42")},
		{`"42"`, DataVersion(`"42"`)},
		{"v2", DataVersion(`"v2"`)},
		{"null", DataVersion("null")},
		{"2024-01-01 12:00", DataVersion(`"2024-01-01 12:00"`)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDataVersion(tt.in))
		})
	}
}

func TestFingerprint_Equal(t *testing.T) {
	a := Fingerprint{ContentLength: "100", LastModified: "Mon, 01 Jan 2024 00:00:00 GMT"}

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(Fingerprint{ContentLength: "100", LastModified: "Monday, 01-Jan-24 00:00:00 GMT"}))
	assert.False(t, a.Equal(Fingerprint{ContentLength: "101", LastModified: a.LastModified}))
}
