package model

import (
	"math"

	"github.com/sebastien/pythoniccss/internal/color"
	"github.com/sebastien/pythoniccss/internal/errors"
)

// Arithmetic applies op to two numbers. Units unify when they are equal
// or one side has none; anything else is an error.
func Arithmetic(op string, a, b NumberValue) (NumberValue, error) {
	unit, err := unify(a.Unit, b.Unit)
	if err != nil {
		return NumberValue{}, err
	}
	var v float64
	switch op {
	case "+":
		v = a.V + b.V
	case "-":
		v = a.V - b.V
	case "*":
		v = a.V * b.V
	case "/":
		if b.V == 0 {
			return NumberValue{}, errors.Semanticf("division by zero")
		}
		v = a.V / b.V
	case "%":
		if b.V == 0 {
			return NumberValue{}, errors.Semanticf("modulo by zero")
		}
		v = math.Mod(a.V, b.V)
	default:
		return NumberValue{}, errors.Unsupportedf("operator %q", op)
	}
	return NumberValue{V: v, Unit: unit}, nil
}

func unify(a, b string) (string, error) {
	switch {
	case a == "" || a == b:
		return b, nil
	case b == "":
		return a, nil
	}
	return "", errors.Semanticf("Incompatible unit types: %s and %s", a, b)
}

// DefaultFactor is the amount used by color methods called without one.
const DefaultFactor = 0.1

// Brighten raises the HLS lightness of c by k.
func (c ColorValue) Brighten(k float64) ColorValue {
	h, l, s := color.RGBToHLS(c.R/255, c.G/255, c.B/255)
	r, g, b := color.HLSToRGB(h, clamp(l+k, 0, 1), s)
	c.R, c.G, c.B = r*255, g*255, b*255
	return c.Normalize()
}

// Darken lowers the HLS lightness of c by k.
func (c ColorValue) Darken(k float64) ColorValue {
	return c.Brighten(-k)
}

// Fade multiplies the alpha of c by 1-k.
func (c ColorValue) Fade(k float64) ColorValue {
	a := c.Alpha1()
	c.A = a - a*k
	c.Alpha = true
	return c.Normalize()
}

// Blend interpolates linearly from c to other, channel by channel.
func (c ColorValue) Blend(other ColorValue, k float64) ColorValue {
	ca, cb := c.Alpha1(), other.Alpha1()
	res := ColorValue{
		R: c.R + (other.R-c.R)*k,
		G: c.G + (other.G-c.G)*k,
		B: c.B + (other.B-c.B)*k,
		A: ca + (cb-ca)*k,
	}
	res.Alpha = res.A < 1
	return res.Normalize()
}

// Alpha1 returns the alpha of c, 1 for opaque colors.
func (c ColorValue) Alpha1() float64 {
	if !c.Alpha {
		return 1
	}
	return c.A
}

// Normalize clamps the channels. A color whose alpha reaches 1 becomes
// opaque.
func (c ColorValue) Normalize() ColorValue {
	c.R, c.G, c.B = clamp(c.R, 0, 255), clamp(c.G, 0, 255), clamp(c.B, 0, 255)
	if c.Alpha {
		c.A = clamp(c.A, 0, 1)
		if c.A >= 1 {
			c.Alpha = false
		}
	}
	if !c.Alpha {
		c.A = 1
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
