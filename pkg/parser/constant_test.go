package parser

import (
	"testing"

	"github.com/raymyers/cparse/pkg/cabs"
)

func TestIntegerConstants(t *testing.T) {
	tests := []struct {
		input string
		gnu   bool
		want  cabs.Integer
	}{
		{"0", false, cabs.Integer{Base: cabs.BaseDecimal, Number: "0"}},
		{"1", false, cabs.Integer{Base: cabs.BaseDecimal, Number: "1"}},
		{"1234567890", false, cabs.Integer{Base: cabs.BaseDecimal, Number: "1234567890"}},
		{"01234567", false, cabs.Integer{Base: cabs.BaseOctal, Number: "1234567"}},
		{"0x1234567890abdefABCDEF", false, cabs.Integer{Base: cabs.BaseHexadecimal, Number: "1234567890abdefABCDEF"}},
		{"0b0001", true, cabs.Integer{Base: cabs.BaseBinary, Number: "0001"}},
		{"042lu", false, cabs.Integer{Base: cabs.BaseOctal, Number: "42", Suffix: cabs.IntegerSuffix{Size: cabs.SizeLong, Unsigned: true}}},
		{"042ul", false, cabs.Integer{Base: cabs.BaseOctal, Number: "42", Suffix: cabs.IntegerSuffix{Size: cabs.SizeLong, Unsigned: true}}},
		{"042uL", false, cabs.Integer{Base: cabs.BaseOctal, Number: "42", Suffix: cabs.IntegerSuffix{Size: cabs.SizeLong, Unsigned: true}}},
		{"1ll", false, cabs.Integer{Base: cabs.BaseDecimal, Number: "1", Suffix: cabs.IntegerSuffix{Size: cabs.SizeLongLong}}},
		{"1LLU", false, cabs.Integer{Base: cabs.BaseDecimal, Number: "1", Suffix: cabs.IntegerSuffix{Size: cabs.SizeLongLong, Unsigned: true}}},
		{"1i", true, cabs.Integer{Base: cabs.BaseDecimal, Number: "1", Suffix: cabs.IntegerSuffix{Imaginary: true}}},
		{"1jul", true, cabs.Integer{Base: cabs.BaseDecimal, Number: "1", Suffix: cabs.IntegerSuffix{Size: cabs.SizeLong, Unsigned: true, Imaginary: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := classifyNumber(tt.input, tt.gnu)
			if !ok {
				t.Fatalf("classifyNumber(%q) rejected the constant", tt.input)
			}
			if diff := cabs.Diff(cabs.Constant(tt.want), got); diff != "" {
				t.Errorf("classifyNumber(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestFloatConstants(t *testing.T) {
	double := cabs.FloatSuffix{Format: cabs.FloatFormat{Kind: cabs.FormatDouble}}
	tests := []struct {
		input string
		gnu   bool
		want  cabs.Float
	}{
		{"2.", false, cabs.Float{Base: cabs.FloatDecimal, Number: "2.", Suffix: double}},
		{"2.e2", false, cabs.Float{Base: cabs.FloatDecimal, Number: "2.e2", Suffix: double}},
		{".2", false, cabs.Float{Base: cabs.FloatDecimal, Number: ".2", Suffix: double}},
		{".2e2", false, cabs.Float{Base: cabs.FloatDecimal, Number: ".2e2", Suffix: double}},
		{"2.0", false, cabs.Float{Base: cabs.FloatDecimal, Number: "2.0", Suffix: double}},
		{"2e+10", false, cabs.Float{Base: cabs.FloatDecimal, Number: "2e+10", Suffix: double}},
		{"24.01e100", false, cabs.Float{Base: cabs.FloatDecimal, Number: "24.01e100", Suffix: double}},
		{"1.5f", false, cabs.Float{Base: cabs.FloatDecimal, Number: "1.5", Suffix: cabs.FloatSuffix{Format: cabs.FloatFormat{Kind: cabs.FormatFloat}}}},
		{"1.5L", false, cabs.Float{Base: cabs.FloatDecimal, Number: "1.5", Suffix: cabs.FloatSuffix{Format: cabs.FloatFormat{Kind: cabs.FormatLongDouble}}}},
		{"0x3p2", false, cabs.Float{Base: cabs.FloatHexadecimal, Number: "3p2", Suffix: double}},
		{"0x0.1P-4", false, cabs.Float{Base: cabs.FloatHexadecimal, Number: "0.1P-4", Suffix: double}},
		{"0x2A.DEp19L", false, cabs.Float{Base: cabs.FloatHexadecimal, Number: "2A.DEp19", Suffix: cabs.FloatSuffix{Format: cabs.FloatFormat{Kind: cabs.FormatLongDouble}}}},
		{"1.0fi", true, cabs.Float{Base: cabs.FloatDecimal, Number: "1.0", Suffix: cabs.FloatSuffix{Format: cabs.FloatFormat{Kind: cabs.FormatFloat}, Imaginary: true}}},
		{"1.0if", true, cabs.Float{Base: cabs.FloatDecimal, Number: "1.0", Suffix: cabs.FloatSuffix{Format: cabs.FloatFormat{Kind: cabs.FormatFloat}, Imaginary: true}}},
		{"1.0f64", false, cabs.Float{Base: cabs.FloatDecimal, Number: "1.0", Suffix: cabs.FloatSuffix{Format: cabs.FloatFormat{
			Kind: cabs.FormatTS18661, Extended: cabs.TS18661FloatType{Format: cabs.BinaryInterchange, Width: 64}}}}},
		{"1.0d128x", false, cabs.Float{Base: cabs.FloatDecimal, Number: "1.0", Suffix: cabs.FloatSuffix{Format: cabs.FloatFormat{
			Kind: cabs.FormatTS18661, Extended: cabs.TS18661FloatType{Format: cabs.DecimalExtended, Width: 128}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := classifyNumber(tt.input, tt.gnu)
			if !ok {
				t.Fatalf("classifyNumber(%q) rejected the constant", tt.input)
			}
			if diff := cabs.Diff(cabs.Constant(tt.want), got); diff != "" {
				t.Errorf("classifyNumber(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestInvalidConstants(t *testing.T) {
	tests := []struct {
		input string
		gnu   bool
	}{
		{"0x", false},
		{"0x1p", false},
		{"0x1.8", false},
		{"09", false},
		{"1lul", false},
		{"1lL", false},
		{"1uu", false},
		{"0b101", false},
		{"1i", false},
		{"1.0f8", false},
		{"1.0d16", false},
		{"1.0f32x1", false},
		{"1e", false},
		{"1.2.3", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if c, ok := classifyNumber(tt.input, tt.gnu); ok {
				t.Errorf("classifyNumber(%q) = %#v, want rejection", tt.input, c)
			}
		})
	}
}

func TestConstantEntryPoint(t *testing.T) {
	c, err := Constant("'\\n'", newTestEnv(flavorCore))
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	if got, want := c.Value, cabs.Character("'\\n'"); got != want {
		t.Errorf("got %#v, want %#v", got, want)
	}
	if c.Span.Start != 0 || c.Span.End != 4 {
		t.Errorf("span = %v, want 0..4", c.Span)
	}

	if _, err := Constant("0b1", newTestEnv(flavorCore)); err == nil {
		t.Error("binary constant accepted without GNU extensions")
	}
}
