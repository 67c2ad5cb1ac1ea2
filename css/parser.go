package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser builds stylesheet trees out of CSS text. It does not know anything
// about particular at-rules: every at-rule keeps its prelude as text and its
// block (if any) as nested nodes, so custom at-rules survive parsing intact.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

type token struct {
	tt   css.TokenType
	data string
	line int
}

// Parse parses CSS text into a Stylesheet. Parsing never fails, problems are
// reported as stylesheet warnings.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	b := &treeBuilder{
		tokens: p.tokenize(data),
		sheet:  &Stylesheet{},
	}
	b.sheet.Nodes = b.parseBlock(false)

	p.log.Debug("Parsed CSS", zap.Int("nodes", len(b.sheet.Nodes)), zap.Int("warnings", len(b.sheet.Warnings)))
	return b.sheet
}

// tokenize runs lexer over the whole input recording line for every token.
func (p *Parser) tokenize(data []byte) []token {
	lexer := css.NewLexer(parse.NewInput(bytes.NewReader(data)))

	var tokens []token
	line := 1
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS lexer error", zap.Int("line", line), zap.Error(err))
			}
			return tokens
		}
		s := string(text)
		tokens = append(tokens, token{tt: tt, data: s, line: line})
		line += strings.Count(s, "\n")
	}
}

type treeBuilder struct {
	tokens []token
	pos    int
	sheet  *Stylesheet
}

func (b *treeBuilder) eof() bool {
	return b.pos >= len(b.tokens)
}

func (b *treeBuilder) lastLine() int {
	if len(b.tokens) == 0 {
		return 0
	}
	return b.tokens[len(b.tokens)-1].line
}

// parseBlock reads nodes until closing brace (nested) or end of input.
func (b *treeBuilder) parseBlock(nested bool) []Node {
	var nodes []Node
	for {
		for !b.eof() && b.tokens[b.pos].tt == css.WhitespaceToken {
			b.pos++
		}
		if b.eof() {
			if nested {
				b.sheet.Warn("unclosed block", b.lastLine())
			}
			return nodes
		}

		t := b.tokens[b.pos]
		switch t.tt {
		case css.RightBraceToken:
			b.pos++
			if nested {
				return nodes
			}
			b.sheet.Warn(`unexpected "}"`, t.line)
			continue
		case css.SemicolonToken, css.CDOToken, css.CDCToken:
			b.pos++
			continue
		case css.CommentToken:
			b.pos++
			text := strings.TrimSuffix(strings.TrimPrefix(t.data, "/*"), "*/")
			nodes = append(nodes, &Comment{Text: text, Line: t.line})
			continue
		}

		if n := b.parseStatement(); n != nil {
			nodes = append(nodes, n)
		}
	}
}

// parseStatement reads a single at-rule, rule or declaration.
func (b *treeBuilder) parseStatement() Node {
	start := b.tokens[b.pos]
	prelude, stop := b.collectPrelude()

	if start.tt == css.AtKeywordToken {
		at := &AtRule{
			Name:   strings.TrimPrefix(start.data, "@"),
			Params: joinTokens(prelude[1:]),
			Line:   start.line,
		}
		if stop == css.LeftBraceToken {
			at.HasBlock = true
			at.Nodes = b.parseBlock(true)
		}
		return at
	}

	if stop == css.LeftBraceToken {
		return &Rule{
			Selectors: splitSelectors(prelude),
			Nodes:     b.parseBlock(true),
			Line:      start.line,
		}
	}
	return b.parseDeclaration(prelude, start.line)
}

// collectPrelude consumes tokens up to "{" or ";" on the top nesting level.
// Closing "}" is left for the enclosing block. Returns collected tokens (without
// comments) and type of the token which stopped collection (ErrorToken on
// end of input).
func (b *treeBuilder) collectPrelude() ([]token, css.TokenType) {
	var (
		prelude []token
		depth   int
	)
	for !b.eof() {
		t := b.tokens[b.pos]
		if depth == 0 {
			switch t.tt {
			case css.LeftBraceToken, css.SemicolonToken:
				b.pos++
				return prelude, t.tt
			case css.RightBraceToken:
				return prelude, t.tt
			}
		}
		b.pos++
		switch t.tt {
		case css.CommentToken:
			continue
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		prelude = append(prelude, t)
	}
	return prelude, css.ErrorToken
}

func (b *treeBuilder) parseDeclaration(prelude []token, line int) Node {
	colon := -1
	for i, t := range prelude {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon < 0 {
		if text := joinTokens(prelude); text != "" {
			b.sheet.Warn("unknown word: "+text, line)
		}
		return nil
	}

	value, important := cutImportant(joinTokens(prelude[colon+1:]))
	return &Declaration{
		Property:  joinTokens(prelude[:colon]),
		Value:     value,
		Important: important,
		Line:      line,
	}
}

// cutImportant strips trailing "!important" (with optional spaces after "!").
func cutImportant(value string) (string, bool) {
	const keyword = "important"
	if len(value) < len(keyword) || !strings.EqualFold(value[len(value)-len(keyword):], keyword) {
		return value, false
	}
	rest := strings.TrimRight(value[:len(value)-len(keyword)], " ")
	if !strings.HasSuffix(rest, "!") {
		return value, false
	}
	return strings.TrimSpace(strings.TrimSuffix(rest, "!")), true
}

// joinTokens concatenates token data collapsing whitespace runs into single
// space and trimming both ends.
func joinTokens(tokens []token) string {
	var sb strings.Builder
	pendingSpace := false
	for _, t := range tokens {
		if t.tt == css.WhitespaceToken {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteString(t.data)
	}
	return sb.String()
}

// splitSelectors splits selector prelude by commas on the top nesting level.
func splitSelectors(tokens []token) []string {
	var (
		selectors []string
		depth     int
		start     int
	)
	flush := func(end int) {
		if s := joinTokens(tokens[start:end]); s != "" {
			selectors = append(selectors, s)
		}
	}
	for i, t := range tokens {
		switch t.tt {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(tokens))
	return selectors
}
