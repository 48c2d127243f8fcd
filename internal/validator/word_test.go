package validator

import "testing"

func TestCheckPlayable(t *testing.T) {
	tests := []struct {
		text  string
		valid bool
	}{
		{"penguin", true},
		{"eiffel tower", true},
		{"jack-o'-lantern", true},
		{"great barrier reef", true},
		{"", false},
		{"   ", false},
		{"one two three four", false},
		{"word123", false},
		{"thiswordisfarlongerthananyrealanswer", false},
	}
	for _, tt := range tests {
		err := CheckPlayable(tt.text)
		if (err == nil) != tt.valid {
			t.Errorf("CheckPlayable(%q) = %v, want valid=%v", tt.text, err, tt.valid)
		}
	}
}
