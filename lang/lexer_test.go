package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize_Stream(t *testing.T) {
	input := strings.Join([]string{
		"BULBA!",
		"(o) db (o)",
		"    port ~~> 5432",
		`    tags ~> <| "a,b", <| 1, 2 |> |>`,
		"",
	}, "\n")

	want := []Token{
		{Kind: KindHeader, Literal: "BULBA!", Line: 1},
		{Kind: KindIndent, Line: 2, Level: 0},
		{Kind: KindSectionOpen, Literal: "(o)", Line: 2, Level: 1},
		{Kind: KindIdentifier, Literal: "db", Line: 2},
		{Kind: KindSectionClose, Literal: "(o)", Line: 2, Level: 1},
		{Kind: KindIndent, Line: 3, Level: 1},
		{Kind: KindIdentifier, Literal: "port", Line: 3},
		{Kind: KindAssign, Literal: "~~>", Line: 3},
		{Kind: KindNumber, Literal: "5432", Line: 3},
		{Kind: KindIndent, Line: 4, Level: 1},
		{Kind: KindIdentifier, Literal: "tags", Line: 4},
		{Kind: KindAssign, Literal: "~>", Line: 4},
		{Kind: KindArrayStart, Literal: "<|", Line: 4},
		{Kind: KindString, Literal: "a,b", Line: 4},
		{Kind: KindComma, Literal: ",", Line: 4},
		{Kind: KindArrayStart, Literal: "<|", Line: 4},
		{Kind: KindNumber, Literal: "1", Line: 4},
		{Kind: KindComma, Literal: ",", Line: 4},
		{Kind: KindNumber, Literal: "2", Line: 4},
		{Kind: KindArrayEnd, Literal: "|>", Line: 4},
		{Kind: KindArrayEnd, Literal: "|>", Line: 4},
		{Kind: KindEOF, Line: 5},
	}

	got, err := Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_Values(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []Token
	}{
		{
			name:  "string",
			value: `"hello world"`,
			want:  []Token{{Kind: KindString, Literal: "hello world", Line: 2}},
		},
		{
			name:  "string without escape processing",
			value: `"a\nb"`,
			want:  []Token{{Kind: KindString, Literal: `a\nb`, Line: 2}},
		},
		{
			name:  "empty string",
			value: `""`,
			want:  []Token{{Kind: KindString, Literal: "", Line: 2}},
		},
		{
			name:  "true",
			value: "SuperEffective",
			want:  []Token{{Kind: KindBool, Literal: "true", Line: 2}},
		},
		{
			name:  "false",
			value: "NotVeryEffective",
			want:  []Token{{Kind: KindBool, Literal: "false", Line: 2}},
		},
		{
			name:  "null",
			value: "MissingNo",
			want:  []Token{{Kind: KindNull, Literal: "MissingNo", Line: 2}},
		},
		{
			name:  "negative integer keeps original text",
			value: "-042",
			want:  []Token{{Kind: KindNumber, Literal: "-042", Line: 2}},
		},
		{
			name:  "float",
			value: "1.5e3",
			want:  []Token{{Kind: KindNumber, Literal: "1.5e3", Line: 2}},
		},
		{
			name:  "empty array",
			value: "<| |>",
			want: []Token{
				{Kind: KindArrayStart, Literal: "<|", Line: 2},
				{Kind: KindArrayEnd, Literal: "|>", Line: 2},
			},
		},
		{
			name:  "array without spaces",
			value: "<|1,MissingNo|>",
			want: []Token{
				{Kind: KindArrayStart, Literal: "<|", Line: 2},
				{Kind: KindNumber, Literal: "1", Line: 2},
				{Kind: KindComma, Literal: ",", Line: 2},
				{Kind: KindNull, Literal: "MissingNo", Line: 2},
				{Kind: KindArrayEnd, Literal: "|>", Line: 2},
			},
		},
		{
			name:  "empty value",
			value: "",
			want:  []Token{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize("BULBA!\nkey ~> " + tt.value)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}

			// Skip Header, Indent, Identifier, Assign; drop EOF.
			got = got[4 : len(got)-1]

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("value tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_Lines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []Kind
	}{
		{
			name:  "blank and comment lines emit nothing",
			input: "BULBA!\n\n    \nzZz only a comment\n        zZz indented comment\n",
			kinds: []Kind{KindHeader, KindEOF},
		},
		{
			name:  "inline comment",
			input: "BULBA!\nname ~> \"Bulby\" zZz the best",
			kinds: []Kind{KindHeader, KindIndent, KindIdentifier, KindAssign, KindString, KindEOF},
		},
		{
			name:  "crlf line endings",
			input: "BULBA!\r\nname ~> 1\r\n",
			kinds: []Kind{KindHeader, KindIndent, KindIdentifier, KindAssign, KindNumber, KindEOF},
		},
		{
			name:  "assignment without spaces",
			input: "BULBA!\nname~~~~>1",
			kinds: []Kind{KindHeader, KindIndent, KindIdentifier, KindAssign, KindNumber, KindEOF},
		},
		{
			name:  "assignment without value",
			input: "BULBA!\nname ~>",
			kinds: []Kind{KindHeader, KindIndent, KindIdentifier, KindAssign, KindEOF},
		},
		{
			name:  "stage 3 header",
			input: "BULBA!\n        (@) KERNEL_FLAGS (@)",
			kinds: []Kind{KindHeader, KindIndent, KindSectionOpen, KindIdentifier, KindSectionClose, KindEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}

			got := make([]Kind, len(tokens))
			for i, tok := range tokens {
				got[i] = tok.Kind
			}

			if diff := cmp.Diff(tt.kinds, got); diff != "" {
				t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_SectionName(t *testing.T) {
	tokens, err := Tokenize("BULBA!\n(O) two  words (O)\n")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	name := tokens[3]
	if name.Kind != KindIdentifier || name.Literal != "two  words" {
		t.Errorf("expected identifier %q, got %v", "two  words", name)
	}

	if tokens[2].Level != 2 || tokens[4].Level != 2 {
		t.Errorf("expected stage 2 markers, got %v and %v", tokens[2], tokens[4])
	}
}

func TestTokenize_IndentLevel(t *testing.T) {
	tokens, err := Tokenize("BULBA!\n            key ~> 1")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	if tokens[1].Kind != KindIndent || tokens[1].Level != 3 {
		t.Errorf("expected Indent(3), got %v", tokens[1])
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Error
		line  int
	}{
		{"missing header", "NOT_BULBA!\nkey ~> 1", ErrHeader, 1},
		{"header with leading space", " BULBA!", ErrHeader, 1},
		{"header with trailing space", "BULBA! ", ErrHeader, 1},
		{"empty input", "", ErrHeader, 1},
		{"tab indent", "BULBA!\n\tkey ~> 1", ErrTab, 2},
		{"tab after spaces", "BULBA!\n    \tkey ~> 1", ErrTab, 2},
		{"one space", "BULBA!\n key ~> 1", ErrIndentation, 2},
		{"six spaces", "BULBA!\n      key ~> 1", ErrIndentation, 2},
		{"unknown statement", "BULBA!\nkey value", ErrSyntax, 2},
		{"arrow without tilde", "BULBA!\nkey > 1", ErrSyntax, 2},
		{"bad identifier", "BULBA!\nkey-name ~> 1", ErrSyntax, 2},
		{"empty section name", "BULBA!\n(o) (o)", ErrSyntax, 2},
		{"mismatched markers", "BULBA!\n(o) db (O)", ErrSyntax, 2},
		{"bare word", "BULBA!\nkey ~> UnknownType", ErrType, 2},
		{"keyword wrong case", "BULBA!\nkey ~> superEffective", ErrType, 2},
		{"unterminated string", "BULBA!\nkey ~> \"open", ErrType, 2},
		{"bad array element", "BULBA!\nkey ~> <| 1, nope |>", ErrType, 2},
		{"unterminated array", "BULBA!\nkey ~> <| 1, 2", ErrType, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("expected %v, got nil", tt.want.Kind())
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want.Kind(), err)
			}

			if !strings.HasPrefix(err.Error(), tt.want.Kind().Message()) {
				t.Errorf("expected message prefix %q, got %q", tt.want.Kind().Message(), err.Error())
			}

			var perr *Error
			if errors.As(err, &perr) && perr.Line() != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, perr.Line())
			}
		})
	}
}

func TestTokenize_NonFiniteNumbers(t *testing.T) {
	for _, lit := range []string{"inf", "Inf", "+Inf", "-inf", "NaN", "Infinity"} {
		t.Run(lit, func(t *testing.T) {
			tokens, err := Tokenize("BULBA!\nkey ~> " + lit)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}

			var got *Token
			for i := range tokens {
				if tokens[i].Kind == KindNumber {
					got = &tokens[i]
				}
			}

			if got == nil || got.Literal != lit {
				t.Errorf("expected number token %q, got %v", lit, tokens)
			}
		})
	}
}

func TestTokenize_NonBreakingSpaceLead(t *testing.T) {
	tokens, err := Tokenize("BULBA!\n\u00a0key ~> 1")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	if tokens[1].Kind != KindIndent || tokens[1].Level != 0 {
		t.Errorf("expected indent level 0, got %v", tokens[1])
	}

	if tokens[2].Kind != KindIdentifier || tokens[2].Literal != "key" {
		t.Errorf("expected identifier key, got %v", tokens[2])
	}
}

func TestTokenize_MaxDepth(t *testing.T) {
	input := "BULBA!\nkey ~> <| <| <| 1 |> |> |>"

	if _, err := Tokenize(input, WithMaxDepth(3)); err != nil {
		t.Fatalf("expected depth 3 to pass, got %v", err)
	}

	_, err := Tokenize(input, WithMaxDepth(2))
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("expected %v, got %v", ErrSyntax, err)
	}
}

func TestTokenize_Idempotent(t *testing.T) {
	first, err := Tokenize(scenarioA)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	second, err := Tokenize(scenarioA)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-tokenizing changed the stream (-first +second):\n%s", diff)
	}
}

func TestTokenize_IndentMultipleOfFour(t *testing.T) {
	tokens, err := Tokenize(scenarioA)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	lines := strings.Split(scenarioA, "\n")

	for _, tok := range tokens {
		if tok.Kind != KindIndent {
			continue
		}

		line := lines[tok.Line-1]
		spaces := len(line) - len(strings.TrimLeft(line, " "))

		if spaces%4 != 0 || spaces/4 != tok.Level {
			t.Errorf("line %d: indent %d spaces reported as level %d", tok.Line, spaces, tok.Level)
		}
	}
}

func TestSplitElements(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`1, 2, 3`, []string{"1", " 2", " 3"}},
		{`"a,b", "c"`, []string{`"a,b"`, ` "c"`}},
		{`<| 1, 2 |>, 3`, []string{"<| 1, 2 |>", " 3"}},
		{`<| <| 1, 2 |>, 3 |>, 4`, []string{"<| <| 1, 2 |>, 3 |>", " 4"}},
		{`1,`, []string{"1", ""}},
		{`only`, []string{"only"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, splitElements(tt.input)); diff != "" {
				t.Errorf("split mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToken_String(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: KindIndent, Line: 3, Level: 2}, "3:Indent(2)"},
		{Token{Kind: KindIdentifier, Literal: "host", Line: 4}, "4:Identifier(host)"},
		{Token{Kind: KindString, Literal: "a b", Line: 5}, `5:String("a b")`},
		{Token{Kind: KindAssign, Literal: "~>", Line: 5}, "5:Assign"},
		{Token{Kind: KindEOF, Line: 9}, "9:EOF"},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
