package coerce

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// parseLiteral parses the textual rendering of a Python literal (lists,
// dicts, tuples, strings, numbers, booleans, None) into the corresponding
// Go value. It understands literals only; anything else fails.
func parseLiteral(input string) (any, error) {
	p := &literalParser{src: input}
	p.skipSpace()
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("trailing data at offset %d", p.pos)
	}
	return value, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) parseValue() (any, error) {
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch c := p.src[p.pos]; {
	case c == '[':
		return p.parseSeq(']')
	case c == '(':
		return p.parseSeq(')')
	case c == '{':
		return p.parseDict()
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || c == '+' || unicode.IsDigit(rune(c)):
		return p.parseNumber()
	default:
		return p.parseKeyword()
	}
}

func (p *literalParser) parseSeq(close byte) (any, error) {
	p.pos++ // opening bracket
	out := []any{}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == close {
		p.pos++
		return out, nil
	}
	for {
		p.skipSpace()
		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated sequence")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			p.skipSpace()
			// trailing comma before the closing bracket is legal
			if p.pos < len(p.src) && p.src[p.pos] == close {
				p.pos++
				return out, nil
			}
		case close:
			p.pos++
			return out, nil
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", p.src[p.pos], p.pos)
		}
	}
}

func (p *literalParser) parseDict() (any, error) {
	p.pos++ // '{'
	out := map[string]any{}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return out, nil
	}
	for {
		p.skipSpace()
		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, fmt.Errorf("expected ':' at offset %d", p.pos)
		}
		p.pos++
		p.skipSpace()
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out[literalKey(key)] = value
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated dict")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			p.skipSpace()
			if p.pos < len(p.src) && p.src[p.pos] == '}' {
				p.pos++
				return out, nil
			}
		case '}':
			p.pos++
			return out, nil
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", p.src[p.pos], p.pos)
		}
	}
}

func (p *literalParser) parseString() (any, error) {
	quote := p.src[p.pos]
	p.pos++
	var buf strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return buf.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return nil, fmt.Errorf("unterminated escape")
			}
			switch e := p.src[p.pos]; e {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case 'r':
				buf.WriteByte('\r')
			case '\\', '\'', '"':
				buf.WriteByte(e)
			default:
				buf.WriteByte('\\')
				buf.WriteByte(e)
			}
			p.pos++
		default:
			buf.WriteByte(c)
			p.pos++
		}
	}
	return nil, fmt.Errorf("unterminated string")
}

func (p *literalParser) parseNumber() (any, error) {
	start := p.pos
	if p.src[p.pos] == '-' || p.src[p.pos] == '+' {
		p.pos++
	}
	isFloat := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if unicode.IsDigit(rune(c)) {
			p.pos++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
			p.pos++
			continue
		}
		if (c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E') {
			p.pos++
			continue
		}
		break
	}
	text := p.src[start:p.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", text)
		}
		return f, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", text)
	}
	return n, nil
}

func (p *literalParser) parseKeyword() (any, error) {
	rest := p.src[p.pos:]
	switch {
	case strings.HasPrefix(rest, "True"):
		p.pos += len("True")
		return true, nil
	case strings.HasPrefix(rest, "False"):
		p.pos += len("False")
		return false, nil
	case strings.HasPrefix(rest, "None"):
		p.pos += len("None")
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected token at offset %d", p.pos)
	}
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func literalKey(key any) string {
	switch value := key.(type) {
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case nil:
		return "None"
	default:
		return fmt.Sprintf("%v", value)
	}
}
