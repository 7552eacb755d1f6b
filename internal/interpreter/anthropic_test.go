package interpreter

import "testing"

func TestParseExtraction(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		cents int64
		cat   string
		ok    bool
	}{
		{
			name:  "plain json",
			raw:   `{"amount": 42.5, "category": "food", "description": "dinner"}`,
			cents: 4250, cat: "food", ok: true,
		},
		{
			name:  "fenced json",
			raw:   "```json\n{\"amount\": 10, \"category\": \"transport\", \"description\": \"bus\"}\n```",
			cents: 1000, cat: "transport", ok: true,
		},
		{
			name:  "missing category defaults",
			raw:   `{"amount": 5, "description": "coffee"}`,
			cents: 500, cat: "general", ok: true,
		},
		{name: "empty response", raw: "", ok: false},
		{name: "not json", raw: "I could not find an amount.", ok: false},
		{name: "zero amount", raw: `{"amount": 0, "category": "food", "description": "x"}`, ok: false},
		{name: "negative amount", raw: `{"amount": -3, "category": "food", "description": "x"}`, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := parseExtraction(tc.raw)
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected error, got %+v", parsed)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseExtraction: %v", err)
			}
			if parsed.Amount.Cents != tc.cents {
				t.Fatalf("amount = %d cents, want %d", parsed.Amount.Cents, tc.cents)
			}
			if parsed.Category != tc.cat {
				t.Fatalf("category = %q, want %q", parsed.Category, tc.cat)
			}
		})
	}
}
