package conf

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestCache_ReturnsIsolatedClones(t *testing.T) {
	var c Cache

	ctx := context.Background()

	a, err := c.Parse(ctx, servers)
	if err != nil {
		t.Fatal(err)
	}

	b, err := c.Parse(ctx, servers)
	if err != nil {
		t.Fatal(err)
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	if a == b || !a.Equal(b) {
		t.Fatal("expected equal, distinct configs")
	}

	d, _ := a.ResolvePath("http:server:listen")
	d.SetArgs("8080")

	again, _ := c.Parse(ctx, servers)
	if got, _ := again.ResolvePath("http:server:listen"); got.Value() != "80" {
		t.Errorf("cached tree was modified through a returned copy: %q", got.Value())
	}
}

func TestCache_KeysIncludeOptions(t *testing.T) {
	var c Cache

	ctx := context.Background()

	_, _ = c.Parse(ctx, "a;")
	_, _ = c.Parse(ctx, "a;", WithSource("x.conf"))
	_, _ = c.Parse(ctx, "a;", WithMaxDepth(3))
	_, _ = c.Parse(ctx, "b;")

	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}

	c.Reset()

	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d", c.Len())
	}
}

func TestCache_CachesErrors(t *testing.T) {
	var c Cache

	ctx := context.Background()

	_, err1 := c.Parse(ctx, "a {")
	_, err2 := c.Parse(ctx, "a {")

	if !errors.Is(err1, ErrUnterminatedBlock) || err1 != err2 {
		t.Errorf("errors: %v, %v", err1, err2)
	}
}

func TestCache_ParseReader(t *testing.T) {
	var c Cache

	cfg, err := c.ParseReader(context.Background(), strings.NewReader(canonical))
	if err != nil {
		t.Fatal(err)
	}

	if Print(cfg) != canonical {
		t.Error("reader parse differs")
	}
}

func TestCache_Concurrent(t *testing.T) {
	var c Cache

	var wg sync.WaitGroup

	results := make([]*Config, 32)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			cfg, err := c.Parse(context.Background(), canonical)
			if err != nil {
				t.Error(err)

				return
			}

			// Each goroutine owns its copy.
			cfg.Append(NewDirective("worker", "x"))
			results[i] = cfg
		}()
	}

	wg.Wait()

	if c.Len() != 1 {
		t.Errorf("Len() = %d", c.Len())
	}

	for i, cfg := range results {
		if cfg == nil {
			continue
		}

		if n := len(cfg.FindDirectives("worker")); n != 1 {
			t.Errorf("result %d has %d appended directives", i, n)
		}
	}
}
