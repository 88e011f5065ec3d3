package pitch

import "testing"

func TestAnalyze(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		report string
		want   Characteristics
	}{
		{
			name:   "green seamer is pace friendly",
			report: "A green pitch with plenty of grass, should seam around early.",
			want:   Characteristics{PaceFriendly: true},
		},
		{
			name:   "dry turner is spin friendly",
			report: "Dry and dusty, expected to assist spinners",
			want:   Characteristics{SpinFriendly: true},
		},
		{
			name:   "flat road reads high scoring",
			report: "An absolute road. High scoring game expected.",
			want:   Characteristics{HighScoring: true},
		},
		{
			name:   "cracked surface reads low scoring",
			report: "Cracked and two-paced, variable bounce throughout.",
			want:   Characteristics{LowScoring: true},
		},
		{
			name:   "mixed report sets multiple flags",
			report: "Dry pitch but a belter to bat on day one before it starts turning.",
			want:   Characteristics{SpinFriendly: true, HighScoring: true},
		},
		{
			name:   "case insensitive",
			report: "GREEN TOP, SEAMING CONDITIONS",
			want:   Characteristics{PaceFriendly: true},
		},
		{
			name:   "empty report yields neutral readout",
			report: "",
			want:   Characteristics{},
		},
		{
			name:   "unrelated prose yields neutral readout",
			report: "The stadium recently renovated its north stand.",
			want:   Characteristics{},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Analyze(tc.report); got != tc.want {
				t.Fatalf("Analyze(%q) = %+v, want %+v", tc.report, got, tc.want)
			}
		})
	}
}
