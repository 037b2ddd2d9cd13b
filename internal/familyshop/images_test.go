package familyshop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsURL(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:4000", Origin: "https://api.familyshop.app"})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"relative path", "/uploads/p1.png", "https://api.familyshop.app/uploads/p1.png"},
		{"absolute https", "https://cdn.example.com/p1.png", "https://cdn.example.com/p1.png"},
		{"absolute http", "http://cdn.example.com/p1.png", "http://cdn.example.com/p1.png"},
		{"blob url", "blob:https://app/abc-123", "blob:https://app/abc-123"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.absURL(tt.in))
		})
	}
}

func TestSanitizeImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"clean cloudinary url",
			"https://res.cloudinary.com/demo/image/upload/v1/p.png",
			"https://res.cloudinary.com/demo/image/upload/v1/p.png",
		},
		{
			"cloudinary behind corrupting prefix",
			"localhost:4000/uploadshttps://res.cloudinary.com/demo/image/upload/v1/p.png",
			"https://res.cloudinary.com/demo/image/upload/v1/p.png",
		},
		{"plain https passes", "https://cdn.example.com/p.png", "https://cdn.example.com/p.png"},
		{"blob passes", "blob:https://app/abc", "blob:https://app/abc"},
		{"garbage falls back", "uploads\\p.png", DefaultImagePath},
		{"empty falls back", "", DefaultImagePath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeImageURL(tt.in))
		})
	}
}
