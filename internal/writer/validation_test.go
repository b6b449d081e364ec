package writer

import (
	"testing"

	apierrors "github.com/olgasafonova/reddit-content-mcp-server/internal/errors"
)

func TestParsePostType(t *testing.T) {
	tests := []struct {
		in      string
		want    PostType
		wantErr bool
	}{
		{"", PostTypeText, false},
		{"text", PostTypeText, false},
		{"Text", PostTypeText, false},
		{"LINK", PostTypeLink, false},
		{"image", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePostType(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePostType(%q) = %q, %v", tt.in, got, err)
		}
		if tt.wantErr && !apierrors.IsCode(err, apierrors.CodeUnsupportedArgument) {
			t.Errorf("ParsePostType(%q) code = %q", tt.in, apierrors.CodeOf(err))
		}
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{"", TargetPost, false},
		{"post", TargetPost, false},
		{"Comment", TargetComment, false},
		{"user", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTarget(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"up", DirectionUp, false},
		{"DOWN", DirectionDown, false},
		{" neutral ", DirectionNeutral, false},
		{"", "", true},
		{"sideways", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestValidateLinkURL(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"https://go.dev", false},
		{"http://example.com/a?b=c", false},
		{"", true},
		{"go.dev", true},
		{"ftp://example.com", true},
		{"https://", true},
	}
	for _, tt := range tests {
		if err := ValidateLinkURL(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("ValidateLinkURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
