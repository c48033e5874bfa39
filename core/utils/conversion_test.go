package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(42), ToInt64(42))
	assert.Equal(t, int64(42), ToInt64(float64(42)))
	assert.Equal(t, int64(42), ToInt64(" 42 "))
	assert.Equal(t, int64(7), ToInt64([]byte("7")))
	assert.Equal(t, int64(0), ToInt64("abc"))
	assert.Equal(t, int64(0), ToInt64(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "hi", ToString("hi"))
	assert.Equal(t, "hi", ToString([]byte("hi")))
	assert.Equal(t, "3", ToString(float64(3)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "true", ToString(true))
}

func TestToBool(t *testing.T) {
	for _, v := range []any{true, 1, "1", "true", "TRUE", "yes", "on", []byte("true"), float64(1)} {
		assert.True(t, ToBool(v), "%v", v)
	}
	for _, v := range []any{false, 0, 2, "", "false", "no", "off", nil, struct{}{}} {
		assert.False(t, ToBool(v), "%v", v)
	}
}

func TestFirstString(t *testing.T) {
	m := map[string]any{"alt_text": "snake", "altText": "camel"}

	v, ok := FirstString(m, "alt", "altText", "alt_text")
	assert.True(t, ok)
	assert.Equal(t, "camel", v)

	v, ok = FirstString(map[string]any{"alt": ""}, "alt", "altText")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = FirstString(m, "missing")
	assert.False(t, ok)
}
