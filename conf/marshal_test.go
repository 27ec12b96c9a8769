package conf

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

const exportSrc = "# c\na 1;\nb {\n    c x y;\n}\nd { }\n"

func TestConfig_MarshalJSON(t *testing.T) {
	cfg := mustParse(t, exportSrc)

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := `[{"comment":" c"},` +
		`{"name":"a","args":["1"]},` +
		`{"name":"b","args":[],"children":[{"name":"c","args":["x","y"]}]},` +
		`{"name":"d","args":[],"children":[]}]`

	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}
}

func TestConfig_FormatJSON_Indent(t *testing.T) {
	cfg := mustParse(t, "a 1;")

	var buf bytes.Buffer
	if err := cfg.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	want := "[\n  {\n    \"name\": \"a\",\n    \"args\": [\n      \"1\"\n    ]\n  }\n]\n"
	if buf.String() != want {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()

	if err := cfg.FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatal(err)
	}

	if buf.String() != `[{"name":"a","args":["1"]}]`+"\n" {
		t.Errorf("compact: %q", buf.String())
	}
}

func TestConfig_FormatYAML(t *testing.T) {
	cfg := mustParse(t, exportSrc)

	var buf bytes.Buffer
	if err := cfg.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"comment:", "name: a", "name: b", "children:", "name: c"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}

	buf.Reset()

	if err := cfg.FormatYAML(context.Background(), &buf, 0); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(buf.String(), "[") {
		t.Errorf("flow style expected: %q", buf.String())
	}
}

func TestConfig_ToNative(t *testing.T) {
	cfg := mustParse(t, exportSrc)

	native := cfg.ToNative()
	if len(native) != 4 {
		t.Fatalf("got %d entries", len(native))
	}

	if m := native[0].(map[string]any); m["comment"] != " c" {
		t.Errorf("comment entry %v", m)
	}

	if _, ok := native[1].(map[string]any)["children"]; ok {
		t.Error("leaf has children")
	}

	children, ok := native[3].(map[string]any)["children"].([]any)
	if !ok || len(children) != 0 {
		t.Errorf("empty block children %#v", native[3])
	}
}

func TestConfig_FormatTree(t *testing.T) {
	cfg := mustParse(t, exportSrc)

	var buf bytes.Buffer
	if err := cfg.FormatTree(&buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"config (4 nodes)",
		`comment " c"`,
		`leaf a "1" @2:1`,
		"block b @3:1",
		`leaf c "x" "y" @4:5`,
		"block d @6:1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
}
