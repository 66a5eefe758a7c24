package components

import "testing"

func TestClock(t *testing.T) {
	t.Parallel()
	cases := map[int]string{
		0:      "00:00:00",
		-5:     "00:00:00",
		59:     "00:00:59",
		3661:   "01:01:01",
		360000: "100:00:00",
	}
	for in, want := range cases {
		if got := Clock(in); got != want {
			t.Fatalf("Clock(%d)=%q want %q", in, got, want)
		}
	}
}

func TestHuman(t *testing.T) {
	t.Parallel()
	cases := map[int]string{
		0:     "0s",
		42:    "42s",
		600:   "10m",
		3900:  "1h 05m",
		45000: "12h 30m",
	}
	for in, want := range cases {
		if got := Human(in); got != want {
			t.Fatalf("Human(%d)=%q want %q", in, got, want)
		}
	}
}

func TestHBarScales(t *testing.T) {
	t.Parallel()
	if HBar(0, 10, 20) != "" || HBar(5, 0, 20) != "" {
		t.Fatalf("empty inputs should render nothing")
	}
	if HBar(1, 1000, 10) == "" {
		t.Fatalf("non-zero values should render at least one cell")
	}
}
