package pairnum_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/pairnum/pkg/pairnum"
	pnErrors "mercator-hq/pairnum/pkg/pairnum/errors"
	"mercator-hq/pairnum/pkg/pairnum/parser"
)

func TestNumberString(t *testing.T) {
	tests := []string{
		"7",
		"[1,2]",
		"[[1,2],3]",
		"[9,[8,7]]",
		"[[1,9],[8,5]]",
		"[[[[1,2],[3,4]],[[5,6],[7,8]]],9]",
		"[[[9,[3,8]],[[0,9],6]],[[[3,7],[4,9]],3]]",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			n := parser.MustParse(text)
			if got := n.String(); got != text {
				t.Errorf("String() = %q, want %q", got, text)
			}
		})
	}
}

func TestNumberStringMalformed(t *testing.T) {
	n := pairnum.Number{{Value: 1, Depth: 1}}
	if got, want := n.String(), "<malformed 1@1>"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNumberClone(t *testing.T) {
	orig := parser.MustParse("[[1,2],3]")
	clone := orig.Clone()

	clone[0].Value = 99
	if orig[0].Value != 1 {
		t.Errorf("mutating clone changed original: %v", orig)
	}
	if pairnum.Number(nil).Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestNumberValuesAndDepth(t *testing.T) {
	n := parser.MustParse("[[[0,[5,8]],[[1,7],[9,6]]],[[4,[1,2]],[[1,4],2]]]")

	want := []int{0, 5, 8, 1, 7, 9, 6, 4, 1, 2, 1, 4, 2}
	if diff := cmp.Diff(want, n.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if got := n.MaxDepth(); got != 4 {
		t.Errorf("MaxDepth() = %d, want 4", got)
	}
	if got := (pairnum.Number{}).MaxDepth(); got != -1 {
		t.Errorf("MaxDepth() of empty = %d, want -1", got)
	}
}

func TestNumberEqual(t *testing.T) {
	a := parser.MustParse("[[1,2],3]")
	if !a.Equal(parser.MustParse("[[1,2],3]")) {
		t.Error("Equal() = false for identical numbers")
	}
	if a.Equal(parser.MustParse("[1,[2,3]]")) {
		t.Error("Equal() = true for numbers with different shapes")
	}
	if a.Equal(parser.MustParse("[1,2]")) {
		t.Error("Equal() = true for numbers of different length")
	}
}

func TestNumberValidate(t *testing.T) {
	tests := []struct {
		name    string
		number  pairnum.Number
		wantErr bool
	}{
		{name: "literal", number: pairnum.Number{{Value: 4, Depth: 0}}},
		{name: "pair", number: parser.MustParse("[[1,2],[3,4]]")},
		{name: "empty", number: pairnum.Number{}, wantErr: true},
		{name: "lone leaf in a pair", number: pairnum.Number{{Value: 1, Depth: 1}}, wantErr: true},
		{name: "two top level literals", number: pairnum.Number{{Value: 1, Depth: 0}, {Value: 2, Depth: 0}}, wantErr: true},
		{name: "negative depth", number: pairnum.Number{{Value: 1, Depth: -1}}, wantErr: true},
		{name: "dangling right leaf", number: pairnum.Number{{Value: 1, Depth: 1}, {Value: 2, Depth: 1}, {Value: 3, Depth: 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.number.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, pnErrors.ErrMalformed) {
				t.Errorf("Validate() error %v does not wrap ErrMalformed", err)
			}
		})
	}
}
