package selector

import "strings"

// String renders the chain without namespace.
func (s *Selector) String() string {
	return s.Expr("")
}

// Expr renders the chain as CSS selector text.
//
// RULES:
//   - BEM markers are stripped: "btn-" renders as ".btn", "-active" as
//     ".active". A BEM prefix class is dropped from a selector whose next
//     selector already carries a class derived from it.
//   - Class lists are de-duplicated, BEM stems first, then the remaining
//     classes in source order.
//   - A namespace adds a leading ".use-NS" ancestor.
//   - A chain rooted at Self renders as "*", or as nothing under a
//     namespace or when an id is present.
func (s *Selector) Expr(namespace string) string {
	var stems, plain, bem []string
	for _, class := range s.Classes {
		if class == "" {
			continue
		}
		switch {
		case strings.HasSuffix(class, "-"):
			bem = append(bem, class)
			if len(s.Suffix) > 0 || s.Attributes != "" {
				stems = append(stems, strings.TrimSuffix(class, "-"))
			}
		case strings.HasPrefix(class, "-"):
			bem = append(bem, class)
		default:
			plain = append(plain, class)
		}
	}

	var tail []string
	if s.Next != nil {
		if op := strings.TrimSpace(s.Next.Op); op != "" {
			tail = append(tail, op)
		}
		for _, class := range bem {
			if !s.Next.Sel.HasBEMPrefix(class) {
				stems = append(stems, stripBEM(class))
			}
		}
		if next := s.Next.Sel.Expr(""); next != "" {
			tail = append(tail, next)
		}
	} else {
		for _, class := range bem {
			stems = append(stems, stripBEM(class))
		}
	}

	sel := s.compound(dedupe(append(stems, plain...)))
	prefix := ""
	if namespace != "" {
		prefix = ".use-" + namespace
	}
	if s.Node == Self {
		rest := sel[len(Self):]
		if prefix != "" || s.ID != "" {
			sel = rest
		} else {
			sel = "*" + rest
		}
	}

	res := prefix
	if sel != "" {
		if sel[0] == '[' {
			res += sel
		} else {
			res = join(res, sel)
		}
	}
	if len(tail) > 0 {
		res = join(res, strings.Join(tail, " "))
	}
	if strings.HasSuffix(res, Self) {
		res = strings.TrimSpace(strings.TrimSuffix(res, Self))
		if res == "" {
			res = "*"
		}
	}
	return res
}

// compound renders the node, id, classes, attributes and suffixes of s.
// When classes is nil the raw class list is used.
func (s *Selector) compound(classes []string) string {
	if classes == nil {
		classes = s.Classes
	}
	var b strings.Builder
	b.WriteString(s.Node)
	b.WriteString(s.ID)
	for _, class := range classes {
		b.WriteByte('.')
		b.WriteString(class)
	}
	b.WriteString(s.Attributes)
	for _, suffix := range s.Suffix {
		b.WriteByte(':')
		b.WriteString(suffix)
	}
	return b.String()
}

func stripBEM(class string) string {
	return strings.TrimSuffix(strings.TrimPrefix(class, "-"), "-")
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != "" && !contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}

func join(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}
