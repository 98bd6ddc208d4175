/*
Copyright © 2025 the Poreflow authors.
This file is part of Poreflow.

Poreflow is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Poreflow is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Poreflow.  If not, see <http://www.gnu.org/licenses/>.
*/

package carbkin

import (
	"fmt"
	"strings"
)

// ParseFormula returns the elemental composition of a chemical formula,
// element symbol → stoichiometric count. It understands nested
// parentheses ("CaMg(CO3)2"), hydrate notation with "·" or ":"
// separators ("CaSO4:2H2O"), and trailing charge annotations ("Ca+2",
// "CO3--"), which contribute nothing to the composition.
func (e *Engine) ParseFormula(formula string) (map[string]float64, error) {
	comp := make(map[string]float64)
	for _, part := range splitHydrate(formula) {
		mult, body := leadingCount(part)
		p := &formulaParser{src: body}
		partComp, err := p.parseGroup(0)
		if err != nil {
			return nil, fmt.Errorf("carbkin: parsing formula %q: %v", formula, err)
		}
		for el, n := range partComp {
			comp[el] += n * mult
		}
	}
	if len(comp) == 0 {
		return nil, fmt.Errorf("carbkin: formula %q has no elements", formula)
	}
	return comp, nil
}

// splitHydrate splits "CaSO4:2H2O" style formulas on hydrate separators.
func splitHydrate(formula string) []string {
	f := strings.ReplaceAll(formula, "·", ":")
	f = strings.ReplaceAll(f, "•", ":")
	return strings.Split(f, ":")
}

// leadingCount strips the leading multiplier of a hydrate part: the "2"
// of "2H2O".
func leadingCount(s string) (float64, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 1, s
	}
	n := 0.0
	for _, c := range s[:i] {
		n = n*10 + float64(c-'0')
	}
	if n == 0 {
		n = 1
	}
	return n, s[i:]
}

type formulaParser struct {
	src string
	pos int
}

// parseGroup parses element tokens and parenthesized subgroups until the
// end of input or a closing parenthesis at the given depth.
func (p *formulaParser) parseGroup(depth int) (map[string]float64, error) {
	comp := make(map[string]float64)
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			p.pos++
			sub, err := p.parseGroup(depth + 1)
			if err != nil {
				return nil, err
			}
			n := p.count()
			for el, m := range sub {
				comp[el] += m * n
			}
		case c == ')':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced ')' at position %d", p.pos)
			}
			p.pos++
			return comp, nil
		case c == '+' || c == '-':
			// Charge annotation; everything after it is charge too.
			p.pos = len(p.src)
		case c >= 'A' && c <= 'Z':
			el := p.element()
			comp[el] += p.count()
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, p.pos)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("missing ')'")
	}
	return comp, nil
}

func (p *formulaParser) element() string {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) && p.src[p.pos] >= 'a' && p.src[p.pos] <= 'z' {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *formulaParser) count() float64 {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 1
	}
	n := 0.0
	for _, c := range p.src[start:p.pos] {
		n = n*10 + float64(c-'0')
	}
	return n
}
