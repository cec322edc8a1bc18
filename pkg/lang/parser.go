package lang

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mehrshadshams/reactive/pkg/arith"
	"github.com/mehrshadshams/reactive/pkg/ruleerr"
)

// Parse compiles expression text into an AST, following the EBNF grammar:
//
//	expression      = orExpr ;
//	orExpr          = andExpr , { ("||" | "OR") , andExpr } ;
//	andExpr         = condition , { ("&&" | "AND") , condition } ;
//	condition       = aggCondition | simpleCondition | "(" , expression , ")" ;
//	aggCondition    = aggType , "(" , ident , "," , timeWindow , ")" , op , threshold ;
//	simpleCondition = ident , op , threshold ;
//
// Parse is one concrete realization of the parser contract the spec
// leaves to an external collaborator; it returns a *ruleerr.Error of
// kind Syntax on any grammar violation.
func Parse(text string) (Node, error) {
	p := &parser{lex: newLexer(text), text: text}
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, newSyntaxError(p.cur.pos, "unexpected trailing input %q", p.cur.text)
	}
	return node, nil
}

type parser struct {
	lex  *lexer
	cur  token
	text string
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.cur.kind != kind {
		return token{}, newSyntaxError(p.cur.pos, "expected %s but found %q", what, p.cur.text)
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

// parseOrExpr = andExpr , { ("||" | "OR") , andExpr } ;
func (p *parser) parseOrExpr() (Node, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = NewBinaryNode(Or, left, right)
	}
	return left, nil
}

// parseAndExpr = condition , { ("&&" | "AND") , condition } ;
func (p *parser) parseAndExpr() (Node, error) {
	left, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		left = NewBinaryNode(And, left, right)
	}
	return left, nil
}

// parseCondition = aggCondition | simpleCondition | "(" , expression , ")" ;
func (p *parser) parseCondition() (Node, error) {
	if p.cur.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		node, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return node, nil
	}

	if p.cur.kind != tokIdent {
		return nil, newSyntaxError(p.cur.pos, "expected an identifier, aggregation function or '(' but found %q", p.cur.text)
	}

	ident := p.cur.text
	if kind, ok := aggKindFromName(ident); ok {
		// aggType is only a keyword when immediately followed by '(';
		// otherwise it is an ordinary metric name in a simpleCondition
		// (e.g. a metric literally named "avg" used as "avg > 5").
		peeked, err := p.peekAfterCur()
		if err != nil {
			return nil, err
		}
		if peeked.kind == tokLParen {
			return p.parseAggCondition(kind)
		}
	}
	return p.parseSimpleCondition(ident)
}

// peekAfterCur returns the token that follows p.cur without consuming
// either, by replaying the lexer from a copy of its current position.
func (p *parser) peekAfterCur() (token, error) {
	tmp := *p.lex
	return tmp.next()
}

// aggCondition = aggType , "(" , ident , "," , timeWindow , ")" , op , threshold ;
func (p *parser) parseAggCondition(kind AggKind) (Node, error) {
	if err := p.advance(); err != nil { // consume aggType ident
		return nil, err
	}
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	metricTok, err := p.expect(tokIdent, "a metric name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokComma, "','"); err != nil {
		return nil, err
	}
	window, err := p.parseTimeWindow()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	threshold, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	cond := Condition{
		Metric:        metricTok.text,
		Op:            op,
		Threshold:     threshold,
		IsAggregation: true,
		AggKind:       kind,
		Window:        window,
	}
	return NewConditionNode(cond), nil
}

// simpleCondition = ident , op , threshold ;
func (p *parser) parseSimpleCondition(metric string) (Node, error) {
	if err := p.advance(); err != nil { // consume ident
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	threshold, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	cond := Condition{
		Metric:    metric,
		Op:        op,
		Threshold: threshold,
	}
	return NewConditionNode(cond), nil
}

// timeWindow = NUMBER , ("s" | "m" | "h") ;
func (p *parser) parseTimeWindow() (time.Duration, error) {
	numTok, err := p.expect(tokNumber, "a window length")
	if err != nil {
		return 0, err
	}
	if p.cur.kind != tokIdent {
		return 0, newSyntaxError(p.cur.pos, "expected a time unit (s, m, h) but found %q", p.cur.text)
	}
	unit := strings.ToLower(p.cur.text)
	if err := p.advance(); err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(numTok.text, 64)
	if err != nil {
		return 0, newSyntaxError(numTok.pos, "invalid window length %q", numTok.text)
	}
	var unitDur time.Duration
	switch unit {
	case "s":
		unitDur = time.Second
	case "m":
		unitDur = time.Minute
	case "h":
		unitDur = time.Hour
	default:
		return 0, newSyntaxError(numTok.pos, "unknown time unit %q, expected s, m or h", unit)
	}
	return time.Duration(n * float64(unitDur)), nil
}

// op = ">" | ">=" | "<" | "<=" | "==" | "!=" ;
func (p *parser) parseOp() (CompareOp, error) {
	defer func() { _ = p.advance() }()
	switch p.cur.kind {
	case tokGt:
		return Gt, nil
	case tokGte:
		return Gte, nil
	case tokLt:
		return Lt, nil
	case tokLte:
		return Lte, nil
	case tokEq:
		return Eq, nil
	case tokNeq:
		return Neq, nil
	default:
		return 0, newSyntaxError(p.cur.pos, "expected a comparison operator but found %q", p.cur.text)
	}
}

// arith = mulDiv , { ("+" | "-") , mulDiv } ;
func (p *parser) parseArith() (arith.Node, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := arith.Add
		if p.cur.kind == tokMinus {
			op = arith.Sub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = arith.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// mulDiv = primary , { ("*" | "/") , primary } ;
func (p *parser) parseMulDiv() (arith.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := arith.Mul
		if p.cur.kind == tokSlash {
			op = arith.Div
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = arith.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// primary = NUMBER | ident | "(" , arith , ")" ;
func (p *parser) parsePrimary() (arith.Node, error) {
	switch p.cur.kind {
	case tokNumber:
		text := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, newSyntaxError(p.cur.pos, "invalid number %q", text)
		}
		return arith.Constant{Value: v}, nil
	case tokIdent:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return arith.Variable{Name: name}, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		node, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return node, nil
	default:
		return nil, newSyntaxError(p.cur.pos, "expected a number, identifier or '(' but found %q", p.cur.text)
	}
}

func aggKindFromName(name string) (AggKind, bool) {
	switch strings.ToLower(name) {
	case "avg":
		return Avg, true
	case "sum":
		return Sum, true
	case "max":
		return Max, true
	case "min":
		return Min, true
	default:
		return NoAgg, false
	}
}

func newSyntaxError(pos int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return ruleerr.New(ruleerr.Syntax, msg).WithLocation(fmt.Sprintf("offset %d", pos))
}
