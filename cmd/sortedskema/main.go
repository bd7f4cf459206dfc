// Command sortedskema validates JSON or YAML documents against sorted
// container schemas and prints the canonical ordered form.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	gojson "github.com/goccy/go-json"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/dsl"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	case "kinds":
		kindsCmd()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `sortedskema CLI

Usage:
  sortedskema validate -kind map|list|set [-elem string|int|number|bool|any] [-yaml] [file]
  sortedskema schema   -kind map|list|set [-elem string|int|number|bool|any]
  sortedskema kinds

validate reads the document from file or stdin, parses it through the chosen
container schema, and prints the canonical ordered JSON form.`)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var kind, elem string
	var fromYAML bool
	fs.StringVar(&kind, "kind", "", "container kind: map, list or set")
	fs.StringVar(&elem, "elem", "any", "element schema: string, int, number, bool or any")
	fs.BoolVar(&fromYAML, "yaml", false, "treat input as YAML instead of JSON")
	_ = fs.Parse(args)

	ad, err := buildSchema(kind, elem)
	if err != nil {
		fatalf("%v", err)
	}

	data, err := readInput(fs.Args())
	if err != nil {
		fatalf("read: %v", err)
	}
	var src sortedskema.Source
	if fromYAML {
		src = sortedskema.YAMLBytes(data)
	} else {
		src = sortedskema.JSONBytes(data)
	}

	out, err := parseErased(context.Background(), ad, src)
	if err != nil {
		reportIssues(err)
		os.Exit(1)
	}
	enc, err := gojson.Marshal(out)
	if err != nil {
		fatalf("encode: %v", err)
	}
	fmt.Println(string(enc))
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var kind, elem string
	fs.StringVar(&kind, "kind", "", "container kind: map, list or set")
	fs.StringVar(&elem, "elem", "any", "element schema: string, int, number, bool or any")
	_ = fs.Parse(args)

	ad, err := buildSchema(kind, elem)
	if err != nil {
		fatalf("%v", err)
	}
	js, err := ad.JSONSchema()
	if err != nil {
		fatalf("schema: %v", err)
	}
	enc, err := gojson.MarshalIndent(js, "", "  ")
	if err != nil {
		fatalf("encode: %v", err)
	}
	fmt.Println(string(enc))
}

func kindsCmd() {
	for _, k := range dsl.ContainerKinds() {
		fmt.Println(string(k))
	}
}

func buildSchema(kind, elem string) (dsl.AnyAdapter, error) {
	var ck dsl.ContainerKind
	switch kind {
	case "map":
		ck = dsl.KindSortedMap
	case "list":
		ck = dsl.KindSortedList
	case "set":
		ck = dsl.KindSortedSet
	case "":
		return dsl.AnyAdapter{}, fmt.Errorf("missing -kind (map, list or set)")
	default:
		return dsl.AnyAdapter{}, fmt.Errorf("unknown kind %q", kind)
	}

	switch elem {
	case "any", "":
		return dsl.BuildContainer(ck)
	case "string":
		return dsl.BuildContainer(ck, dsl.StringOf())
	case "int":
		return dsl.BuildContainer(ck, dsl.IntOf())
	case "number":
		return dsl.BuildContainer(ck, dsl.NumberOf())
	case "bool":
		return dsl.BuildContainer(ck, dsl.BoolOf())
	default:
		return dsl.AnyAdapter{}, fmt.Errorf("unknown element schema %q", elem)
	}
}

// parseErased routes through the token path so duplicate set elements and
// non-canonical shapes are rejected the same way for JSON and YAML.
func parseErased(ctx context.Context, ad dsl.AnyAdapter, src sortedskema.Source) (any, error) {
	return ad.ParseFromSource(ctx, src, sortedskema.ParseOpt{})
}

func readInput(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func reportIssues(err error) {
	if iss, ok := sortedskema.AsIssues(err); ok {
		for _, it := range iss {
			fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", it.Path, it.Message, it.Code)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
