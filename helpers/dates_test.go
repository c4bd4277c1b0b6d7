package helpers

import "testing"

func TestNormalizeDateStart(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"year only", "2020", "2020-01-01", false},
		{"year and month", "2020-03", "2020-03-01", false},
		{"full date unchanged", "2020-03-15", "2020-03-15", false},
		{"impossible day clamps", "2021-02-30", "2021-02-28", false},
		{"leap year clamp", "2020-02-30", "2020-02-29", false},
		{"invalid month", "2020-13", "", true},
		{"garbage", "yesterday", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDateStart(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeDateEnd(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"year only", "2020", "2020-12-31"},
		{"thirty day month", "2021-04", "2021-04-30"},
		{"february non-leap", "2021-02", "2021-02-28"},
		{"february leap", "2020-02", "2020-02-29"},
		{"full date unchanged", "2020-06-15", "2020-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDateEnd(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2020-02-29") {
		t.Error("2020-02-29 should be valid")
	}
	if ValidDate("2021-02-29") {
		t.Error("2021-02-29 should be invalid")
	}
	if ValidDate("2020-13-01") {
		t.Error("month 13 should be invalid")
	}
}
