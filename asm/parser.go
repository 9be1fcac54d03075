package main

/* Parser turns the Lexer's lexeme stream into an ordered list of
   GenericBlocks (spec.md §4.3). It tracks a current section, defaulting to
   "text", and recovers from a bad line by discarding it and resuming at
   the next one. Since the tokenizer does not emit a newline lexeme, "end
   of line" is detected the way the row position naturally implies it: the
   next lexeme lands on a later row than the line being parsed. */
type Parser struct {
	lex     *Lexer
	cur     Lexeme
	haveCur bool
	diags   []error
}

func newParser(src string) *Parser {
	return &Parser{lex: newLexer(src)}
}

func (p *Parser) fill() bool {
	if p.haveCur {
		return true
	}
	lx, ok := p.lex.Next(&p.diags)
	if !ok {
		return false
	}
	p.cur, p.haveCur = lx, true
	return true
}

func (p *Parser) take() Lexeme {
	p.fill()
	lx := p.cur
	p.haveCur = false
	return lx
}

func (p *Parser) peek() (Lexeme, bool) {
	ok := p.fill()
	return p.cur, ok
}

func (p *Parser) sameLine(row int) bool {
	lx, ok := p.peek()
	return ok && lx.Pos.Row == row
}

/* Parse runs the whole input through the parser and returns the ordered
   blocks plus any accumulated diagnostics. */
func (p *Parser) Parse() ([]GenericBlock, []error) {
	blocks := []GenericBlock{{Section: "text"}}
	cur := func() *GenericBlock { return &blocks[len(blocks)-1] }
	sectionIndex := map[string]int{"text": 0}

	switchSection := func(name string) {
		if idx, ok := sectionIndex[name]; ok {
			/* Reopen: a new block is still appended, merge happens in pass B. */
			_ = idx
		}
		blocks = append(blocks, GenericBlock{Section: name})
		sectionIndex[name] = len(blocks) - 1
	}

	for {
		lx, ok := p.peek()
		if !ok {
			break
		}
		row := lx.Pos.Row

		switch lx.Kind {
		case LexSection:
			p.take()
			name := lx.Text
			if name == "" {
				/* ".section <name>": the name is the next lexeme on this line */
				next, ok := p.peek()
				if !ok || next.Pos.Row != row || (next.Kind != LexSymbolRef && next.Kind != LexSection) {
					p.diags = append(p.diags, errAt("BadArgumentShape", lx.Pos, ".section expects a name"))
					continue
				}
				p.take()
				name = next.Text
			}
			switchSection(name)

		case LexLabel:
			p.take()
			cur().Lines = append(cur().Lines, GenericLine{Kw: KwLabel, Label: lx.Text, Pos: lx.Pos})

		case LexOpcode:
			p.take()
			args, err := p.parseArgs(row)
			if err != nil {
				p.diags = append(p.diags, err)
				continue
			}
			cur().Lines = append(cur().Lines, GenericLine{Kw: KwOpcode, Mnemonic: lx.Text, Ext: lx.Ext, Args: args, Pos: lx.Pos})

		case LexPseudo:
			p.take()
			args, err := p.parseArgs(row)
			if err != nil {
				p.diags = append(p.diags, err)
				continue
			}
			cur().Lines = append(cur().Lines, GenericLine{Kw: KwPseudo, Mnemonic: lx.Text, Args: args, Pos: lx.Pos})

		case LexDirective:
			p.take()
			args, err := p.parseArgs(row)
			if err != nil {
				p.diags = append(p.diags, err)
				continue
			}
			cur().Lines = append(cur().Lines, GenericLine{Kw: KwDirective, Directive: lx.Text, Args: args, Pos: lx.Pos})

		case LexLinkerDirective:
			p.take()
			args, err := p.parseArgs(row)
			if err != nil {
				p.diags = append(p.diags, err)
				continue
			}
			cur().Lines = append(cur().Lines, GenericLine{Kw: KwDirective, Directive: lx.Text, Args: args, Pos: lx.Pos})

		default:
			p.take()
			p.diags = append(p.diags, errAt("UnknownMnemonic", lx.Pos, "unexpected token"))
		}
	}

	return blocks, p.diags
}

/* parseArgs consumes a comma-separated argument list until the line ends,
   recognizing imm(rs) as a combined offset+register memory operand and
   %hi(sym)/%lo(sym) as symbol-modifier arguments. */
func (p *Parser) parseArgs(row int) ([]Arg, error) {
	var args []Arg
	for p.sameLine(row) {
		arg, err := p.parseOneArg(row)
		if err != nil {
			return nil, err
		}
		args = append(args, arg...)
		if lx, ok := p.peek(); ok && lx.Kind == LexComma && lx.Pos.Row == row {
			p.take()
			continue
		}
		break
	}
	return args, nil
}

/* parseOneArg returns one or two Args: a plain operand normally expands to
   one Arg, but "n(rs)" memory-operand syntax expands to two (offset then
   base register) so the codec sees them in the same positional order as a
   regular two-register instruction. */
func (p *Parser) parseOneArg(row int) ([]Arg, error) {
	lx := p.take()

	switch lx.Kind {
	case LexRegister:
		return []Arg{{Kind: ArgRegister, Reg: lx.Register}}, nil

	case LexNumber:
		if next, ok := p.peek(); ok && next.Kind == LexLParen && next.Pos.Row == row {
			p.take()
			base, err := p.expectRegister()
			if err != nil {
				return nil, err
			}
			if err := p.expectRParen(); err != nil {
				return nil, err
			}
			return []Arg{{Kind: ArgNumber, Num: lx.Number}, {Kind: ArgRegister, Reg: base}}, nil
		}
		return []Arg{{Kind: ArgNumber, Num: lx.Number}}, nil

	case LexString:
		return []Arg{{Kind: ArgString, Str: lx.Text}}, nil

	case LexHi, LexLo:
		if err := p.expectLParen(); err != nil {
			return nil, err
		}
		sym, err := p.expectSymbol()
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		kind := ArgSymbolHi
		if lx.Kind == LexLo {
			kind = ArgSymbolLo
		}
		return []Arg{{Kind: kind, Symbol: sym}}, nil

	case LexSymbolRef:
		if next, ok := p.peek(); ok && next.Kind == LexLParen && next.Pos.Row == row {
			p.take()
			base, err := p.expectRegister()
			if err != nil {
				return nil, err
			}
			if err := p.expectRParen(); err != nil {
				return nil, err
			}
			return []Arg{{Kind: ArgSymbolFull, Symbol: lx.Text}, {Kind: ArgRegister, Reg: base}}, nil
		}
		return []Arg{{Kind: ArgSymbolFull, Symbol: lx.Text}}, nil

	default:
		return nil, errAt("BadArgumentShape", lx.Pos, "unexpected token in argument list")
	}
}

func (p *Parser) expectRegister() (uint8, error) {
	lx := p.take()
	if lx.Kind != LexRegister {
		return 0, errAt("MalformedMemoryOperand", lx.Pos, "expected register")
	}
	return lx.Register, nil
}

func (p *Parser) expectSymbol() (string, error) {
	lx := p.take()
	if lx.Kind != LexSymbolRef {
		return "", errAt("BadArgumentShape", lx.Pos, "expected symbol name")
	}
	return lx.Text, nil
}

func (p *Parser) expectLParen() error {
	lx := p.take()
	if lx.Kind != LexLParen {
		return errAt("BadArgumentShape", lx.Pos, "expected '('")
	}
	return nil
}

func (p *Parser) expectRParen() error {
	lx := p.take()
	if lx.Kind != LexRParen {
		return errAt("MalformedMemoryOperand", lx.Pos, "expected ')'")
	}
	return nil
}
