package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a stylesheet. Only simple selectors are kept: .class and #id, optionally
// grouped with commas. Rules with other selectors and everything inside @-rules are skipped.
// Later rules override earlier for the same selector.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)

	var selectors []string
	var props map[string]string
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.Err() == io.EOF {
				return sheet, nil
			}
			return sheet, fmt.Errorf("css: %w", p.Err())
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			if atDepth > 0 {
				selectors = nil
				continue
			}
			selectors = simpleSelectors(p.Values())
			props = make(map[string]string)
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if props != nil {
				props[strings.ToLower(string(data))] = tokenText(p.Values())
			}
		case css.EndRulesetGrammar:
			for _, sel := range selectors {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
			}
			selectors, props = nil, nil
		}
	}
}

// simpleSelectors splits a selector list on commas and keeps the .class and #id entries.
func simpleSelectors(tokens []css.Token) []string {
	var out []string
	for _, sel := range strings.Split(tokenText(tokens), ",") {
		sel = strings.TrimSpace(sel)
		if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') || strings.ContainsAny(sel[1:], " .#>+~:[") {
			continue
		}
		out = append(out, sel)
	}
	return out
}

func tokenText(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	v := strings.TrimSpace(b.String())
	v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))
	return v
}
