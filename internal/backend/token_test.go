package backend

import "testing"

func TestExtractAccessToken(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want string
	}{
		{name: "token", in: map[string]any{"token": "abc"}, want: "abc"},
		{name: "access_token", in: map[string]any{"access_token": " def "}, want: "def"},
		{name: "camel case", in: map[string]any{"accessToken": "ghi"}, want: "ghi"},
		{name: "prefers token", in: map[string]any{"token": "a", "access_token": "b"}, want: "a"},
		{name: "blank", in: map[string]any{"token": "  "}, want: ""},
		{name: "wrong type", in: map[string]any{"token": 42}, want: ""},
		{name: "missing", in: map[string]any{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractAccessToken(tt.in); got != tt.want {
				t.Errorf("extractAccessToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
