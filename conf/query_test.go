package conf

import (
	"slices"
	"strings"
	"testing"
)

const servers = "http { server { listen 80; } server { listen 443; } }"

func TestResolvePath_Nested(t *testing.T) {
	cfg := mustParse(t, servers)

	d, ok := cfg.ResolvePath("http:server[1]:listen")
	if !ok {
		t.Fatal("http:server[1]:listen not found")
	}

	if !slices.Equal(d.Args, []string{"443"}) {
		t.Errorf("args %q", d.Args)
	}

	if _, ok := cfg.ResolvePath("http:server[2]"); ok {
		t.Error("http:server[2] resolved")
	}

	d, ok = cfg.ResolvePath("http:server:listen[0]")
	if !ok || d.Value() != "80" {
		t.Errorf("default index: %v %v", d, ok)
	}
}

func TestResolvePath_Misses(t *testing.T) {
	cfg := mustParse(t, "# c\nworker_processes 1;\n"+servers)

	paths := []string{
		"",
		":",
		"http:",
		":http",
		"[0]",
		"http[",
		"http[]",
		"http[x]",
		"http[-1]",
		"http[1",
		"http[0]x",
		"http[0][0]",
		"http[99999999999999999999999]",
		"nothere",
		"http[1]",
		"worker_processes:x",
		"http:server:listen:deeper",
		"HTTP",
		" http",
	}

	for _, p := range paths {
		if d, ok := cfg.ResolvePath(p); ok {
			t.Errorf("ResolvePath(%q) = %+v, want miss", p, d)
		}
	}
}

func TestResolve_DoesNotMutate(t *testing.T) {
	cfg := mustParse(t, servers)
	before := cfg.Clone()

	cfg.ResolvePath("http:server[1]:listen")
	cfg.ResolvePath("http:server[5]:listen")

	if !cfg.Equal(before) {
		t.Error("query modified the tree")
	}
}

func TestResolve_ReturnsLiveReference(t *testing.T) {
	cfg := mustParse(t, servers)

	d, _ := cfg.ResolvePath("http:server[1]:listen")
	d.AddArg("ssl")

	want := "http {\n    server {\n        listen 80;\n    }\n    server {\n        listen 443 ssl;\n    }\n}\n"
	if got := Print(cfg); got != want {
		t.Errorf("got %q", got)
	}
}

func TestParsePath(t *testing.T) {
	p, ok := ParsePath("http:server[12]:location")
	if !ok {
		t.Fatal("not parsed")
	}

	want := Path{{"http", 0}, {"server", 12}, {"location", 0}}
	if !slices.Equal(p, want) {
		t.Errorf("got %v, want %v", p, want)
	}

	if s := p.String(); s != "http[0]:server[12]:location[0]" {
		t.Errorf("String() = %q", s)
	}

	again, ok := ParsePath(p.String())
	if !ok || !slices.Equal(again, p) {
		t.Errorf("canonical form did not parse back: %v", again)
	}

	if seg, ok := p.Last(); !ok || seg.Name != "location" {
		t.Errorf("Last() = %v, %v", seg, ok)
	}

	if par := p.Parent(); par.String() != "http[0]:server[12]" {
		t.Errorf("Parent() = %v", par)
	}

	if p.Parent().Parent().Parent() != nil {
		t.Error("parent of root is not nil")
	}
}

func TestParsePath_NamesWithSpecialCharacters(t *testing.T) {
	p, ok := ParsePath("location ~ \\.php$:fastcgi_pass")
	if !ok || p[0].Name != "location ~ \\.php$" {
		t.Errorf("got %v, %v", p, ok)
	}

	p, ok = ParsePath("a]")
	if !ok || p[0].Name != "a]" {
		t.Errorf("got %v, %v", p, ok)
	}
}

func TestPath_Child_DoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Segment{Name: "http"}

	a := base.Child(Segment{Name: "a"})
	b := base.Child(Segment{Name: "b"})

	if a[1].Name != "a" || b[1].Name != "b" {
		t.Errorf("children alias: %v %v", a, b)
	}
}

func TestMustParsePath_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()

	MustParsePath("a[")
}

func TestWalk_CanonicalPaths(t *testing.T) {
	cfg := mustParse(t, canonical)

	want := []string{
		"user[0]",
		"worker_processes[0]",
		"events[0]",
		"events[0]:worker_connections[0]",
		"http[0]",
		"http[0]:include[0]",
		"http[0]:server[0]",
		"http[0]:server[0]:listen[0]",
		"http[0]:server[0]:server_name[0]",
		"http[0]:server[0]:location[0]",
		"http[0]:server[0]:location[0]:root[0]",
		"http[0]:server[0]:location[0]:try_files[0]",
		"http[0]:server[0]:location[1]",
		"http[0]:server[1]",
		"http[0]:server[1]:listen[0]",
	}

	if got := cfg.Paths(); !slices.Equal(got, want) {
		t.Fatalf("paths:\n%s", strings.Join(got, "\n"))
	}

	for p, d := range cfg.Walk() {
		got, ok := cfg.Resolve(p)
		if !ok || got != d {
			t.Errorf("%s does not resolve to its directive", p)
		}
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	cfg := mustParse(t, canonical)

	n := 0
	for range cfg.Walk() {
		n++
		if n == 5 {
			break
		}
	}

	if n != 5 {
		t.Errorf("visited %d", n)
	}
}

func TestFind(t *testing.T) {
	cfg := mustParse(t, canonical)

	if got := len(cfg.FindDirectives("http")); got != 1 {
		t.Errorf("FindDirectives(http) = %d", got)
	}

	http := cfg.FindDirectives("http")[0]
	if got := len(http.FindAll("server")); got != 2 {
		t.Errorf("FindAll(server) = %d", got)
	}

	if _, ok := http.Find("upstream"); ok {
		t.Error("found missing upstream")
	}

	if got := len(http.Directives()); got != 3 {
		t.Errorf("Directives() = %d", got)
	}
}

func TestSuggest(t *testing.T) {
	cfg := mustParse(t, canonical)

	got := cfg.Suggest("srvlsn", 3)
	if len(got) == 0 || len(got) > 3 {
		t.Fatalf("suggestions %q", got)
	}

	for _, s := range got {
		if !strings.Contains(s, "server") {
			t.Errorf("unexpected suggestion %q", s)
		}
	}

	if got := cfg.Suggest("srv", 0); got != nil {
		t.Errorf("limit 0: %q", got)
	}
}
