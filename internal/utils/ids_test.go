package utils

import (
	"reflect"
	"testing"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		s       string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{" 7 ", 7, false},
		{"0012", 12, false},
		{"", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"x", 0, true},
		{"999999999999999999999999", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseID(tc.s)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("ParseID(%q) = %d, %v; want %d, err=%v", tc.s, got, err, tc.want, tc.wantErr)
		}
	}
}

func TestParseIDs(t *testing.T) {
	got, err := ParseIDs([]string{"3,1", " 2 ", "1", ",,4,"})
	if err != nil {
		t.Fatalf("ParseIDs: %v", err)
	}
	if want := []int64{3, 1, 2, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseIDs = %v; want %v", got, want)
	}

	if got, err := ParseIDs(nil); err != nil || len(got) != 0 {
		t.Fatalf("ParseIDs(nil) = %v, %v", got, err)
	}
	if _, err := ParseIDs([]string{"1,x"}); err == nil {
		t.Fatalf("expected error for bad id")
	}
}
