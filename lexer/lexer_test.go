package lexer

import (
	"testing"

	"github.com/freeeve/dialectgen/token"
)

func TestTokenizeBasic(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Kind
	}{
		{
			input:    "SELECT * FROM config WHERE config_key = ?",
			expected: []token.Kind{token.KEYWORD, token.STAR, token.KEYWORD, token.IDENT, token.KEYWORD, token.IDENT, token.EQ, token.PLACEHOLDER_POSITIONAL, token.EOF},
		},
		{
			input:    "a >= b AND c <= d",
			expected: []token.Kind{token.IDENT, token.GE, token.IDENT, token.KEYWORD, token.IDENT, token.LE, token.IDENT, token.EOF},
		},
		{
			input:    "x IN ?",
			expected: []token.Kind{token.IDENT, token.KEYWORD, token.PLACEHOLDER_POSITIONAL, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, errs := Tokenize(tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(toks) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tt.expected), toks)
			}
			for i, k := range tt.expected {
				if toks[i].Kind != k {
					t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
				}
			}
		})
	}
}

func TestTokenizeNumbers(t *testing.T) {
	toks, errs := Tokenize("0x1F 12.5e+3 .25")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []string{"0x1F", "12.5e+3", ".25"}
	var got []string
	for _, tok := range toks {
		if tok.Kind == token.NUMBER {
			got = append(got, tok.Lexeme())
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d numbers %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("number %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeStringEscape(t *testing.T) {
	toks, errs := Tokenize(`'it''s'`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(toks) != 2 || toks[0].Kind != token.STRING {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[0].Str == nil || toks[0].Str.Value != "it's" {
		t.Errorf("got payload %+v, want it's", toks[0].Str)
	}
}

func TestTokenizeBinaryString(t *testing.T) {
	toks, errs := Tokenize(`x'deadbeef'`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.STRING || toks[0].Str == nil || !toks[0].Str.Binary {
		t.Fatalf("expected binary string token, got %+v", toks[0])
	}
	if toks[0].Str.Value != "deadbeef" {
		t.Errorf("got value %q, want deadbeef", toks[0].Str.Value)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	toks, errs := Tokenize(`'abc`)
	if len(errs) != 1 || errs[0].Kind != token.UnterminatedString {
		t.Fatalf("expected one unterminated_string error, got %v", errs)
	}
	if toks[0].Kind != token.STRING || toks[0].Str.Value != "abc" {
		t.Fatalf("expected best-effort string token, got %+v", toks[0])
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("tokenizer must always end in EOF, got %v", toks)
	}
}

func TestTokenizeQuotedIdentEscape(t *testing.T) {
	toks, _ := Tokenize(`"a""b"`)
	if toks[0].Kind != token.IDENT || toks[0].Name != `a"b` {
		t.Fatalf("got %+v, want ident a\"b", toks[0])
	}
}

func TestTokenizePlaceholders(t *testing.T) {
	toks, errs := Tokenize("$name :other @mysql ?7 ?")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	wantKinds := []token.Kind{
		token.PLACEHOLDER_NAMED, token.PLACEHOLDER_NAMED, token.PLACEHOLDER_NAMED,
		token.PLACEHOLDER_POSITIONAL, token.PLACEHOLDER_POSITIONAL, token.EOF,
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[0].Name != "name" || toks[1].Name != "other" || toks[2].Name != "mysql" {
		t.Fatalf("unexpected placeholder names: %+v", toks[:3])
	}
	if toks[3].Name != "7" {
		t.Errorf("expected explicit index 7, got %q", toks[3].Name)
	}
}

func TestTokenizeLabelColon(t *testing.T) {
	toks, errs := Tokenize("readOne: SELECT 1;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.IDENT || toks[1].Kind != token.LABEL_COLON {
		t.Fatalf("expected ident then label colon, got %+v", toks[:2])
	}
}

func TestTokenizeComments(t *testing.T) {
	toks, errs := Tokenize("a -- trailing comment\nb /* block\nspans lines */ c")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var lexemes []string
	for _, tok := range toks {
		if tok.Kind != token.EOF {
			lexemes = append(lexemes, tok.Lexeme())
		}
	}
	want := []string{"a", "b", "c"}
	if len(lexemes) != len(want) {
		t.Fatalf("got %v, want %v", lexemes, want)
	}
}

func TestTokenizeExpectedDigitDiagnostics(t *testing.T) {
	_, errs := Tokenize("1.5e")
	if len(errs) != 1 || errs[0].Kind != token.ExpectedDigit {
		t.Fatalf("expected one expected_digit error, got %v", errs)
	}
}

func TestTokenizeAlwaysEndsInEOF(t *testing.T) {
	inputs := []string{"", "   ", "??!@", "SELECT", "'unterminated"}
	for _, in := range inputs {
		toks, _ := Tokenize(in)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("Tokenize(%q) did not end in EOF: %v", in, toks)
		}
	}
}
