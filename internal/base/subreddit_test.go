package base

import "testing"

func TestNormalizeSubreddit(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"golang", "golang"},
		{"r/golang", "golang"},
		{"/r/golang/", "golang"},
		{"R/Golang", "Golang"},
		{"  test ", "test"},
		{"r/", "r"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSubreddit(tt.in); got != tt.want {
			t.Errorf("NormalizeSubreddit(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateSubreddit(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantErr  bool
		listOnly bool // accepted by ValidateSubredditList only
	}{
		{name: "simple", in: "golang"},
		{name: "underscore", in: "learn_programming"},
		{name: "two letters", in: "de"},
		{name: "multi", in: "golang+rust", listOnly: true},
		{name: "empty", in: "", wantErr: true},
		{name: "one letter", in: "x", wantErr: true},
		{name: "space", in: "go lang", wantErr: true},
		{name: "too long", in: "abcdefghijklmnopqrstuv", wantErr: true},
		{name: "slash", in: "r/golang", wantErr: true},
		{name: "empty multi part", in: "golang+", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubreddit(tt.in)
			if wantErr := tt.wantErr || tt.listOnly; (err != nil) != wantErr {
				t.Errorf("ValidateSubreddit(%q) error = %v, wantErr %v", tt.in, err, wantErr)
			}
			err = ValidateSubredditList(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSubredditList(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
