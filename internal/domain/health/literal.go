package health

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Los campos lista se persisten en el CSV como literales de lista estilo
// Python (['a', 'b'] / [{'k': 'v'}]); es el formato que consumen los
// colaboradores de entrenamiento. El parser también acepta JSON.

var ErrMalformedLiteral = errors.New("malformed list literal")

func FormatStringList(items []string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, pyQuote(it))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func FormatVaccinations(vs []Vaccination) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, fmt.Sprintf("{%s: %s, %s: %s, %s: %s}",
			pyQuote("vaccine_name"), pyQuote(v.VaccineName),
			pyQuote("administered_date"), pyQuote(v.AdministeredDate.String()),
			pyQuote("status"), pyQuote(string(v.Status)),
		))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func ParseStringList(s string) ([]string, error) {
	items, err := parseList(s)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		str, ok := it.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string item, got %T", ErrMalformedLiteral, it)
		}
		out = append(out, str)
	}
	return out, nil
}

// ParseVaccinations tolera entradas parciales (p.ej. solo vaccine_name).
func ParseVaccinations(s string) ([]Vaccination, error) {
	items, err := parseList(s)
	if err != nil {
		return nil, err
	}
	out := make([]Vaccination, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected dict item, got %T", ErrMalformedLiteral, it)
		}
		var v Vaccination
		if name, ok := m["vaccine_name"].(string); ok {
			v.VaccineName = name
		}
		if ds, ok := m["administered_date"].(string); ok {
			d, err := ParseDate(ds)
			if err != nil {
				return nil, fmt.Errorf("%w: administered_date: %v", ErrMalformedLiteral, err)
			}
			v.AdministeredDate = d
		}
		st, _ := m["status"].(string)
		v.Status = ParseVaccineStatus(st)
		out = append(out, v)
	}
	return out, nil
}

func parseList(s string) ([]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	p := &literalParser{src: s}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("%w: trailing data at %d", ErrMalformedLiteral, p.pos)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: not a list", ErrMalformedLiteral)
	}
	return list, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) && strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *literalParser) fail(msg string) error {
	return fmt.Errorf("%w: %s at %d", ErrMalformedLiteral, msg, p.pos)
}

func (p *literalParser) value() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.fail("unexpected end")
	}
	switch c := p.src[p.pos]; {
	case c == '[':
		return p.sequence()
	case c == '{':
		return p.dict()
	case c == '\'' || c == '"':
		return p.str()
	default:
		return p.bare()
	}
}

func (p *literalParser) sequence() ([]any, error) {
	p.pos++ // [
	out := []any{}
	for {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ']' {
			p.pos++
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.fail("unterminated list")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return out, nil
		default:
			return nil, p.fail("expected ',' or ']'")
		}
	}
}

func (p *literalParser) dict() (map[string]any, error) {
	p.pos++ // {
	out := map[string]any{}
	for {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '}' {
			p.pos++
			return out, nil
		}
		k, err := p.value()
		if err != nil {
			return nil, err
		}
		key, ok := k.(string)
		if !ok {
			return nil, p.fail("dict key must be a string")
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, p.fail("expected ':'")
		}
		p.pos++
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out[key] = v
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.fail("unterminated dict")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return out, nil
		default:
			return nil, p.fail("expected ',' or '}'")
		}
	}
}

func (p *literalParser) str() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			p.pos++
			switch e := p.src[p.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(e)
			}
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", p.fail("unterminated string")
}

func (p *literalParser) bare() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune(",]}: \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
	tok := p.src[start:p.pos]
	switch tok {
	case "True", "true":
		return true, nil
	case "False", "false":
		return false, nil
	case "None", "null":
		return nil, nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		p.pos = start
		return nil, p.fail(fmt.Sprintf("unexpected token %q", tok))
	}
	return f, nil
}

// pyQuote reproduce repr() de Python para strings simples.
func pyQuote(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var sb strings.Builder
	sb.WriteByte(quote)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\r':
			sb.WriteString(`\r`)
		case byte(r) == quote && size == 1:
			sb.WriteByte('\\')
			sb.WriteByte(quote)
		default:
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	sb.WriteByte(quote)
	return sb.String()
}
