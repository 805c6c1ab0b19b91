package csscheck

import "testing"

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want Report
	}{
		{
			"empty",
			"",
			Report{},
		},
		{
			"rule",
			"div {\n  color: #FF0000;\n}\n",
			Report{Rules: 1, Declarations: 1},
		},
		{
			"rules and directives",
			"@charset \"utf-8\";\n\n@import url(\"base.css\");\n\n.a,\n.b {\n  margin: 0 auto !important;\n  color: rgba(0,0,0,0.50);\n}\n\n.a .c {\n  width: 1px;\n}\n",
			Report{Rules: 2, AtRules: 2, Declarations: 3},
		},
		{
			"selector group",
			".a,\n.b,\n.c {\n  margin: 0;\n}\n",
			Report{Rules: 1, Declarations: 1},
		},
		{
			"prefixed",
			".a {\n  transform: rotate(5deg);\n  -moz-transform: rotate(5deg);\n  -webkit-transform: rotate(5deg);\n  -o-transform: rotate(5deg);\n  -ms-transform: rotate(5deg);\n}\n",
			Report{Rules: 1, Declarations: 5},
		},
		{
			"custom property",
			":root {\n  --gap: 4px;\n  margin: 0;\n}\n",
			Report{Rules: 1, Declarations: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(tt.css)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("Check() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestCheck_Keyframes(t *testing.T) {
	got, err := New(nil).Check("@keyframes fade {\n  from {\n    opacity: 0;\n  }\n  to {\n    opacity: 1;\n  }\n}\n")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if got.AtRules != 1 {
		t.Errorf("AtRules = %d, want 1", got.AtRules)
	}
}
