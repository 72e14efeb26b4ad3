package shader

import "testing"

func TestTrimLog(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("0:12(3): error: syntax error\n\x00"), "0:12(3): error: syntax error"},
		{[]byte("link failed\x00\x00"), "link failed"},
		{[]byte{0}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := trimLog(tt.in); got != tt.want {
			t.Errorf("trimLog(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
