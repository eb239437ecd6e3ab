package forecast

import "testing"

func TestPercent(t *testing.T) {
	testCases := []struct {
		p          Percent
		wantString string
		wantSigned string
	}{
		{p: 3.45, wantString: "3.45%", wantSigned: "+3.45%"},
		{p: -0.4, wantString: "-0.40%", wantSigned: "-0.40%"},
		{p: 0, wantString: "0.00%", wantSigned: "-"},
		{p: -0.001, wantString: "-0.00%", wantSigned: "-"},
	}
	for _, tc := range testCases {
		if got := tc.p.String(); got != tc.wantString {
			t.Errorf("Percent(%v).String() = %q want %q", float64(tc.p), got, tc.wantString)
		}
		if got := tc.p.SignedString(); got != tc.wantSigned {
			t.Errorf("Percent(%v).SignedString() = %q want %q", float64(tc.p), got, tc.wantSigned)
		}
	}
}

func TestPercentRound(t *testing.T) {
	testCases := []struct {
		p, want Percent
	}{
		{p: 3.45 - 3.1, want: 0.35},
		{p: 2.675, want: 2.68},
		{p: -1.005, want: -1.01},
		{p: 4.3333333, want: 4.33},
		{p: 0, want: 0},
	}
	for _, tc := range testCases {
		if got := tc.p.Round(); got != tc.want {
			t.Errorf("Percent(%v).Round() = %v want %v", float64(tc.p), float64(got), float64(tc.want))
		}
	}
}
