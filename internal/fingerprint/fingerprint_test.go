package fingerprint

import "testing"

func TestPercentageToLevel(t *testing.T) {
	tests := []struct {
		p    uint8
		want Level
	}{
		{0, LevelLow},
		{15, LevelLow},
		{16, LevelMedium},
		{40, LevelMedium},
		{41, LevelHigh},
		{55, LevelHigh},
		{100, LevelHigh},
	}

	for _, tt := range tests {
		if got := PercentageToLevel(tt.p); got != tt.want {
			t.Errorf("PercentageToLevel(%d) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestLevelRoundTrip(t *testing.T) {
	for _, l := range []Level{LevelLow, LevelMedium, LevelHigh} {
		if got := PercentageToLevel(LevelToPercentage(l)); got != l {
			t.Errorf("PercentageToLevel(LevelToPercentage(%v)) = %v", l, got)
		}
	}
}

func TestAdjustPercentage(t *testing.T) {
	p := NewPolicy(CapabilityPercentage)

	tests := []struct {
		name    string
		current uint8
		delta   int8
		want    uint8
	}{
		{"reaches floor", 10, -5, 5},
		{"above floor", 11, -5, 6},
		{"blocked below floor", 9, -5, 9},
		{"at floor", 5, -5, 5},
		{"increase", 50, 5, 55},
		{"reaches ceiling", 95, 5, 100},
		{"blocked above ceiling", 98, 5, 98},
		{"at ceiling", 100, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Adjust(tt.current, tt.delta); got != tt.want {
				t.Errorf("Adjust(%d, %d) = %d, want %d", tt.current, tt.delta, got, tt.want)
			}
		})
	}
}

func TestAdjustLevelCycle(t *testing.T) {
	p := NewPolicy(CapabilityLevel)

	tests := []struct {
		from  Level
		delta int8
		want  Level
	}{
		{LevelLow, 5, LevelMedium},
		{LevelLow, -5, LevelHigh},
		{LevelMedium, 5, LevelHigh},
		{LevelMedium, -5, LevelLow},
		{LevelHigh, 5, LevelLow},
		{LevelHigh, -5, LevelMedium},
		{LevelLow, 0, LevelHigh},
	}

	for _, tt := range tests {
		got := PercentageToLevel(p.Adjust(LevelToPercentage(tt.from), tt.delta))
		if got != tt.want {
			t.Errorf("Adjust(%v, %d) = %v, want %v", tt.from, tt.delta, got, tt.want)
		}
	}
}

func TestAdjustLevelReversible(t *testing.T) {
	p := NewPolicy(CapabilityLevel)

	for _, l := range []Level{LevelLow, LevelMedium, LevelHigh} {
		start := LevelToPercentage(l)
		if got := p.Adjust(p.Adjust(start, 5), -5); got != start {
			t.Errorf("Adjust(Adjust(%d, +5), -5) = %d, want %d", start, got, start)
		}
	}
}

func TestAdjustLevelThreeCycle(t *testing.T) {
	p := NewPolicy(CapabilityLevel)

	for _, delta := range []int8{5, -5} {
		v := LowPercentage
		seen := map[uint8]bool{}
		for i := 0; i < 3; i++ {
			v = p.Adjust(v, delta)
			seen[v] = true
		}
		if v != LowPercentage {
			t.Errorf("three steps of %d ended at %d, want %d", delta, v, LowPercentage)
		}
		if len(seen) != 3 {
			t.Errorf("three steps of %d visited %d levels, want 3", delta, len(seen))
		}
	}
}

func TestAdjustLevelUnalignedInput(t *testing.T) {
	p := NewPolicy(CapabilityLevel)

	// 30 buckets to Medium.
	if got := p.Adjust(30, 5); got != HighPercentage {
		t.Errorf("Adjust(30, 5) = %d, want %d", got, HighPercentage)
	}
}

func TestLabel(t *testing.T) {
	if got := NewPolicy(CapabilityLevel).Label(40); got != "Medium" {
		t.Errorf("Label(40) = %q, want %q", got, "Medium")
	}
	if got := NewPolicy(CapabilityPercentage).Label(40); got != "40%" {
		t.Errorf("Label(40) = %q, want %q", got, "40%")
	}
}
