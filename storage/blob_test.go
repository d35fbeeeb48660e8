package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey("my flat photo.png")
	prefix, name, ok := strings.Cut(key, "_")
	require.True(t, ok)
	_, err := uuid.Parse(prefix)
	assert.NoError(t, err)
	assert.Equal(t, "my_flat_photo.png", name)

	assert.NotEqual(t, NewObjectKey("a.png"), NewObjectKey("a.png"))
	assert.True(t, strings.HasSuffix(NewObjectKey("../../etc/passwd"), "_passwd"))
	assert.True(t, strings.HasSuffix(NewObjectKey(""), "_image"))
	assert.True(t, strings.HasSuffix(NewObjectKey("room #1?.png"), "_room__1_.png"))
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://bucket.s3.amazonaws.com/abc_photo.png", "abc_photo.png"},
		{"http://localhost:8080/uploads/abc_photo.png?v=1", "abc_photo.png"},
		{"/uploads/abc_photo.png", "abc_photo.png"},
		{"abc_photo.png", "abc_photo.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KeyFromURL(tt.in), tt.in)
	}
}
