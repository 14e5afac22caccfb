package monitor

import "testing"

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		seconds uint64
		want    string
	}{
		{0, "0m"},
		{59, "0m"},
		{60, "1m"},
		{3600, "1h 0m"},
		{3660, "1h 1m"},
		{90061, "1d 1h 1m"},
		{2*86400 + 3*3600 + 4*60, "2d 3h 4m"},
	}
	for _, c := range cases {
		if got := formatUptime(c.seconds); got != c.want {
			t.Errorf("formatUptime(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestCheckSystem(t *testing.T) {
	status, err := CheckSystem()
	if err != nil {
		t.Skipf("host metrics unavailable here: %v", err)
	}
	if status.Hostname == "" {
		t.Error("empty hostname")
	}
	if status.UptimeString == "" {
		t.Error("empty uptime string")
	}
	if status.MemTotal == 0 {
		t.Error("zero total memory")
	}
}
