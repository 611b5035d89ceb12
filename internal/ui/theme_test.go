package ui

import "testing"

func TestBar(t *testing.T) {
	cases := []struct {
		value, total, width int
		want                string
	}{
		{5, 10, 10, "[#####-----]"},
		{-3, 10, 4, "[----]"},
		{12, 10, 4, "[####]"},
		{1, 0, 3, "[###]"},
	}
	for _, tc := range cases {
		if got := Bar(tc.value, tc.total, tc.width); got != tc.want {
			t.Fatalf("Bar(%d,%d,%d)=%q, want %q", tc.value, tc.total, tc.width, got, tc.want)
		}
	}
}

func TestIcons(t *testing.T) {
	if CreatureIcon(1) == CreatureIcon(2) {
		t.Fatalf("evolved creature should change icon")
	}
	if ElementIcon("Lightning") != IconBolt {
		t.Fatalf("lightning icon=%q", ElementIcon("Lightning"))
	}
}
