package conf_test

import (
	"fmt"

	"github.com/ardnew/ngxconf/conf"
)

func Example() {
	cfg, err := conf.Parse(`
# upstream pool
http {
    server { listen 80; }
    server { listen 443 ssl; server_name "a.example b.example"; }
}`)
	if err != nil {
		fmt.Println(err)

		return
	}

	listen, ok := cfg.ResolvePath("http:server[1]:listen")
	fmt.Println(ok, listen.Value())

	listen.AddArg("http2")

	fmt.Print(conf.Print(cfg))
	// Output:
	// true 443 ssl
	// # upstream pool
	// http {
	//     server {
	//         listen 80;
	//     }
	//     server {
	//         listen 443 ssl http2;
	//         server_name "a.example b.example";
	//     }
	// }
}

func ExampleConfig_Disable() {
	cfg, _ := conf.Parse("gzip on;\ngzip_types text/css;\n")

	if _, err := cfg.Disable(conf.MustParsePath("gzip_types")); err != nil {
		fmt.Println(err)
	}

	fmt.Print(cfg)
	// Output:
	// gzip on;
	// # gzip_types text/css;
}

func ExampleSyntaxError_Snippet() {
	src := "events {\n    worker_connections 1024\n}\n"

	_, err := conf.Parse(src)
	fmt.Println(err)

	if se, ok := err.(*conf.SyntaxError); ok {
		fmt.Print(se.Snippet(src))
	}
	// Output:
	// line 3, column 1: unexpected "}" (expected ";" or "{")
	//   3 | }
	//       ^
}
