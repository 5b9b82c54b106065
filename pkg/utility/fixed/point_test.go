package fixed

import (
	"testing"
)

func TestFixedPoint_FromInt64(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		scale int
		want  string
	}{
		{"zero", 0, 0, "0"},
		{"positive", 123, 0, "123"},
		{"negative", -456, 0, "-456"},
		{"with scale", 123, 2, "1.23"},
		{"negative with scale", -456, 3, "-0.456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromInt64(tt.value, tt.scale)
			if got.String() != tt.want {
				t.Errorf("FromInt64(%d, %d) = %s; want %s", tt.value, tt.scale, got.String(), tt.want)
			}
		})
	}
}

func TestFixedPoint_Parse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"integer", "10000", "10000", false},
		{"fractional", "1.1676", "1.1676", false},
		{"negative", "-0.25", "-0.25", false},
		{"garbage", "abc", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v; wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("Parse(%q) = %s; want %s", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestFixedPoint_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		op   func(Point, Point) Point
		want string
	}{
		{"add", "1.25", "2.75", Point.Add, "4.00"},
		{"sub", "10", "2.5", Point.Sub, "7.5"},
		{"mul", "1.5", "4", Point.Mul, "6.0"},
		{"div", "10", "4", Point.Div, "2.5"},
		{"sub negative result", "1", "3", Point.Sub, "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.op(MustParse(tt.a), MustParse(tt.b))
			if got.String() != tt.want {
				t.Errorf("%s(%s, %s) = %s; want %s", tt.name, tt.a, tt.b, got.String(), tt.want)
			}
		})
	}
}

func TestFixedPoint_Comparisons(t *testing.T) {
	a := MustParse("1.10")
	b := MustParse("1.1")
	c := MustParse("2")

	if !a.Eq(b) {
		t.Errorf("expected %s == %s regardless of scale", a, b)
	}
	if !a.Lt(c) || !c.Gt(a) {
		t.Errorf("expected %s < %s", a, c)
	}
	if !a.Lte(b) || !a.Gte(b) {
		t.Errorf("expected %s <= %s and >=", a, b)
	}
}

func TestFixedPoint_CheckedDivByZero(t *testing.T) {
	_, err := One.DivChecked(Zero)
	if err == nil {
		t.Fatal("expected division by zero error")
	}
}

func TestFixedPoint_CheckedMulInt64(t *testing.T) {
	got, err := MustParse("2.5").MulInt64Checked(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Eq(Ten) {
		t.Errorf("2.5 * 4 = %s; want 10", got)
	}
}

func TestFixedPoint_DivPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on unchecked division by zero")
		}
	}()
	_ = One.Div(Zero)
}

func TestFixedPoint_TextRoundTrip(t *testing.T) {
	in := MustParse("1234.5678")
	text, err := in.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Point
	if err := out.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Eq(out) {
		t.Errorf("round trip = %s; want %s", out, in)
	}
}
