package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/bulba/lang"
)

func TestTree_Run(t *testing.T) {
	ctx, out := testContext("")

	cmd := &Tree{SourceArg{Source: writeSource(t, "app.bulba", testSource)}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := `app_name: Pokedex_API
database:
  host: 127.0.0.1
  pool:
    KERNEL_FLAGS:
      panic_on_fail: true
    max_connections: 100
is_production: false
missing_data: null
version: 1.5
whitelist:
  - Prof_Oak
  - Mom
`

	if got := out.String(); got != want {
		t.Errorf("output mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestJSON_Run(t *testing.T) {
	tests := []struct {
		name   string
		indent int
		want   string
	}{
		{
			name:   "compact",
			indent: 0,
			want: `{"app_name":"Pokedex_API","database":{"host":"127.0.0.1",` +
				`"pool":{"KERNEL_FLAGS":{"panic_on_fail":true},"max_connections":100}},` +
				`"is_production":false,"missing_data":null,"version":1.5,` +
				`"whitelist":["Prof_Oak","Mom"]}` + "\n",
		},
		{
			name:   "indented",
			indent: 2,
			want: `{
  "app_name": "Pokedex_API",
  "database": {
    "host": "127.0.0.1",
    "pool": {
      "KERNEL_FLAGS": {
        "panic_on_fail": true
      },
      "max_connections": 100
    }
  },
  "is_production": false,
  "missing_data": null,
  "version": 1.5,
  "whitelist": [
    "Prof_Oak",
    "Mom"
  ]
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Read from stdin to cover the default source.
			ctx, out := testContext(testSource)

			cmd := &JSON{Indent: tt.indent}
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output mismatch\nwant:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestYAML_Run(t *testing.T) {
	ctx, out := testContext("")

	cmd := &YAML{Indent: 2, SourceArg: SourceArg{Source: writeSource(t, "app.bulba", testSource)}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{
		"app_name: Pokedex_API",
		"max_connections: 100",
		"panic_on_fail: true",
		"- Prof_Oak",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestTOML_Run(t *testing.T) {
	ctx, out := testContext("")

	cmd := &TOML{Indent: 2, SourceArg: SourceArg{Source: writeSource(t, "app.bulba", testSource)}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()

	for _, want := range []string{
		`app_name = "Pokedex_API"`,
		`whitelist = ["Prof_Oak", "Mom"]`,
		"[database.pool]",
		"max_connections = 100",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "missing_data") {
		t.Errorf("output contains null entry:\n%s", got)
	}
}

func TestTokens_Run(t *testing.T) {
	ctx, out := testContext("BULBA!\nk ~> 1\n")

	cmd := &Tokens{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "1:Header\n2:Indent(0)\n2:Identifier(k)\n2:Assign\n2:Number(1)\n3:EOF\n"
	if got := out.String(); got != want {
		t.Errorf("output mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestFmt_ParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   error
	}{
		{"header", "BULBASAUR!\n", lang.ErrHeader},
		{"tab", "BULBA!\n\tk ~> 1\n", lang.ErrTab},
		{"indent", "BULBA!\n(o) a (o)\n  k ~> 1\n", lang.ErrIndentation},
		{"badges", "BULBA!\n(o) a (o)\n        (@) c (@)\n", lang.ErrBadges},
		{"type", "BULBA!\nk ~> Pikachu\n", lang.ErrType},
		{"reserved", "BULBA!\nCharizard ~> 1\n", lang.ErrReservedKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(tt.source)

			err := (&Tree{}).Run(ctx)
			if !errors.Is(err, ErrParse) || !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v wrapping %v", err, ErrParse, tt.want)
			}

			if out.Len() != 0 {
				t.Errorf("output on error = %q, want empty", out.String())
			}
		})
	}
}
