package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	got := Vec2{3, 4}.Length()
	if got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	l := Vec2{3, 4}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec2{}).Normalize(); z != (Vec2{}) {
		t.Errorf("Vec2{}.Normalize() = %v, want zero", z)
	}
}

func TestVec2Perp(t *testing.T) {
	tests := []struct {
		in   Vec2
		want Vec2
	}{
		{Vec2{0, 1}, Vec2{1, 0}},
		{Vec2{-1, 0}, Vec2{0, 1}},
		{Vec2{3, 4}, Vec2{4, -3}},
	}
	for _, tt := range tests {
		if got := tt.in.Perp(); got != tt.want {
			t.Errorf("%v.Perp() = %v, want %v", tt.in, got, tt.want)
		}
		if d := tt.in.Dot(tt.in.Perp()); d != 0 {
			t.Errorf("%v.Perp() not orthogonal, dot = %v", tt.in, d)
		}
	}
}

func TestPolar(t *testing.T) {
	got := Polar(2, 0, 1)
	if got != (Vec2{0, 2}) {
		t.Errorf("Polar(2, 0, 1) = %v, want (0, 2)", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if got != UnitZ {
		t.Errorf("Vec3.Cross() = %v, want %v", got, UnitZ)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{-1, 2, 0}
	if got, want := a.Min(b), (Vec3{-1, -2, 0}); got != want {
		t.Errorf("Vec3.Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{1, 2, 3}); got != want {
		t.Errorf("Vec3.Max() = %v, want %v", got, want)
	}
}
