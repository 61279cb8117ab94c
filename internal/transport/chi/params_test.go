package chi

import "testing"

func TestSplitPart(t *testing.T) {
	tests := []struct {
		in       string
		sep      string
		wantPID  string
		wantPart int
	}{
		{"codu:123_2", "_", "codu:123", 2},
		{"codu:123", "_", "codu:123", 0},
		{"codu:my_collection", "_", "codu:my_collection", 0},
		{"codu:123_0", "_", "codu:123_0", 0},
		{"_3", "_", "_3", 0},
		{"codu:123_2", "", "codu:123_2", 0},
	}
	for _, tt := range tests {
		pid, part := splitPart(tt.in, tt.sep)
		if pid != tt.wantPID || part != tt.wantPart {
			t.Errorf("splitPart(%q) = %q, %d; want %q, %d", tt.in, pid, part, tt.wantPID, tt.wantPart)
		}
	}
}
