// Package csscheck validates generated CSS with a standalone CSS3 parser.
package csscheck

import (
	"bytes"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"github.com/sebastien/pythoniccss/internal/errors"
)

// Report counts what the parser saw.
type Report struct {
	// Rules counts rulesets, keyframe selectors included.
	Rules int

	// AtRules counts at-rules with or without a block.
	AtRules int

	Declarations int
}

// Checker parses CSS and reports on it.
type Checker struct {
	log *zap.Logger
}

// New returns a Checker. A nil logger discards output.
func New(log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{log: log.Named("csscheck")}
}

// Check parses text with a default Checker.
func Check(text string) (*Report, error) {
	return New(nil).Check(text)
}

// Check parses text and returns an error on the first grammar error.
func (c *Checker) Check(text string) (*Report, error) {
	report := &Report{}
	input := parse.NewInput(bytes.NewReader([]byte(text)))
	p := css.NewParser(input, false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				c.log.Debug("CSS parse error", zap.Error(err))
				return report, errors.Tag(err, "invalid CSS")
			}
			return report, nil
		case css.BeginAtRuleGrammar, css.AtRuleGrammar:
			report.AtRules++
			c.log.Debug("at-rule", zap.String("rule", string(data)))
		case css.BeginRulesetGrammar:
			report.Rules++
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			report.Declarations++
		}
	}
}
