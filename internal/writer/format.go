package writer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/model"
)

// Format renders an evaluated value as CSS.
//
// NUMBERS: percentages are stored as fractions and written ×100. Whole
// values have no decimals, others at most three, trailing zeros trimmed.
//
// COLORS: opaque colors are uppercase #RRGGBB, translucent ones
// rgba(r,g,b,a) with two decimals of alpha.
func Format(v model.Value) (string, error) {
	switch v := v.(type) {
	case model.NumberValue:
		return number(v), nil
	case model.StringValue:
		if v.Quote == 0 {
			return v.Text, nil
		}
		q := string(v.Quote)
		return q + v.Text + q, nil
	case model.RawValue:
		return v.Text, nil
	case model.ColorValue:
		return colorText(v), nil
	case model.URLValue:
		return "url(" + v.Text + ")", nil
	case model.ListValue:
		items, err := formatAll(v.Items)
		if err != nil {
			return "", err
		}
		return strings.Join(items, separator(v.Sep)), nil
	case model.FunctionValue:
		if v.Raw != nil {
			return v.Name + "(" + *v.Raw + ")", nil
		}
		args, err := formatAll(v.Args)
		if err != nil {
			return "", err
		}
		return v.Name + "(" + strings.Join(args, ", ") + ")", nil
	case model.ParensValue:
		x, err := Format(v.X)
		if err != nil {
			return "", err
		}
		return "(" + x + ")", nil
	case nil:
		return "", errors.Unsupportedf("cannot format a missing value")
	default:
		return "", errors.Unsupportedf("cannot format %T", v)
	}
}

func formatAll(vs []model.Value) ([]string, error) {
	out := make([]string, len(vs))
	for i, v := range vs {
		s, err := Format(v)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func separator(sep string) string {
	switch sep {
	case ",":
		return ", "
	case " ", "":
		return " "
	}
	return sep
}

func number(n model.NumberValue) string {
	v := n.V
	if n.Unit == "%" {
		v *= 100
	}
	var s string
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		s = strconv.FormatFloat(r, 'f', 0, 64)
	} else {
		s = strconv.FormatFloat(v, 'f', 3, 64)
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s + n.Unit
}

func colorText(c model.ColorValue) string {
	r, g, b := channel(c.R), channel(c.G), channel(c.B)
	if c.Alpha {
		return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", r, g, b, c.A)
	}
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(255, v))))
}
