package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("no-such-theme").Name; got != "flexoki-dark" {
		t.Errorf("unknown theme = %q, want flexoki-dark", got)
	}
}

func TestForPercentage(t *testing.T) {
	th := FlexokiDark
	if got := th.ForPercentage(20, false); got != th.OK {
		t.Errorf("20%% = %v, want OK", got)
	}
	if got := th.ForPercentage(85, false); got != th.Warn {
		t.Errorf("85%% = %v, want Warn", got)
	}
	if got := th.ForPercentage(100, true); got != th.Danger {
		t.Errorf("over = %v, want Danger", got)
	}
}
