package usecase

import "testing"

func TestMatchIPRanges(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		ranges []string
		want   bool
	}{
		{"cidr hit", "192.168.1.42", []string{"192.168.1.0/24"}, true},
		{"cidr network address", "192.168.1.0", []string{"192.168.1.0/24"}, true},
		{"cidr broadcast address", "192.168.1.255", []string{"192.168.1.0/24"}, true},
		{"cidr miss adjacent block", "192.168.2.1", []string{"192.168.1.0/24"}, false},
		{"dashed range hit", "10.0.0.25", []string{"10.0.0.1-10.0.0.50"}, true},
		{"dashed range lower bound", "10.0.0.1", []string{"10.0.0.1-10.0.0.50"}, true},
		{"dashed range upper bound", "10.0.0.50", []string{"10.0.0.1-10.0.0.50"}, true},
		{"dashed range miss", "10.0.0.51", []string{"10.0.0.1-10.0.0.50"}, false},
		{"dashed range with spaces", "10.0.0.25", []string{"10.0.0.1 - 10.0.0.50"}, true},
		{"bare address hit", "172.16.5.9", []string{"172.16.5.9"}, true},
		{"bare address miss", "172.16.5.10", []string{"172.16.5.9"}, false},
		{"later entry wins", "10.0.0.5", []string{"192.168.1.0/24", "10.0.0.0/8"}, true},
		{"empty list", "10.0.0.5", nil, false},
		{"malformed entry skipped", "10.0.0.5", []string{"not-a-range", "10.0.0.0/8"}, true},
		{"malformed entry alone", "10.0.0.5", []string{"10.0.0/8"}, false},
		{"malformed origin", "banana", []string{"10.0.0.0/8"}, false},
		{"empty origin", "", []string{"10.0.0.0/8"}, false},
		{"ipv6 cidr", "2001:db8::42", []string{"2001:db8::/32"}, true},
		{"mapped ipv4 origin", "::ffff:192.168.1.42", []string{"192.168.1.0/24"}, true},
		{"origin with spaces", " 192.168.1.42 ", []string{"192.168.1.0/24"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchIPRanges(tt.origin, tt.ranges); got != tt.want {
				t.Errorf("matchIPRanges(%q, %v) = %v, want %v", tt.origin, tt.ranges, got, tt.want)
			}
		})
	}
}
