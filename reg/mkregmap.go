//go:build ignore

// Generates register map boilerplate from a short declaration list.  Each
// line of the input file declares one register:
//
//	name width bitoffset [fieldname:width:offset:rw|ro|wo ...]
//
// Usage: go run mkregmap.go <pkgname> <base> <bytesize> <file>
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"log"
	"os"
	"strings"
	"text/template"
)

var mapTemplate = `// Code generated by mkregmap.go; DO NOT EDIT.

package {{ .Pkg }}

import "github.com/hwio/regbit/reg"

var pack = reg.MustPack({{ .Base }}, {{ .Size }})

var (
{{- range .Regs }}
	{{ .Name }} = reg.MustIn[uint{{ .Width }}](pack, {{ .BitOffset }})
{{- end }}
)

var (
{{- range .Regs }}{{ $reg := .Name }}
{{- range .Fields }}
	{{ $reg }}{{ .Name }} = reg.Must{{ .Access }}({{ $reg }}, {{ .Width }}, {{ .Offset }})
{{- end }}
{{- end }}
)
`

type fieldDecl struct {
	Name, Access  string
	Width, Offset uint
}

type regDecl struct {
	Name             string
	Width, BitOffset uint
	Fields           []fieldDecl
}

type regMap struct {
	Pkg, Base, Size string
	Regs            []regDecl
}

func parseLine(line string) (r regDecl) {
	tok := strings.Fields(line)
	if len(tok) < 3 {
		log.Fatalln("short register declaration:", line)
	}
	r.Name = tok[0]
	if _, err := fmt.Sscanf(tok[1]+" "+tok[2], "%d %d", &r.Width, &r.BitOffset); err != nil {
		log.Fatalln(err)
	}
	switch r.Width {
	case 8, 16, 32, 64:
	default:
		log.Fatalln("unsupported register width:", r.Width)
	}
	for _, ftok := range tok[3:] {
		var f fieldDecl
		var access string
		_, err := fmt.Sscanf(strings.ReplaceAll(ftok, ":", " "),
			"%s %d %d %s", &f.Name, &f.Width, &f.Offset, &access)
		if err != nil {
			log.Fatalln(err)
		}
		switch access {
		case "rw":
			f.Access = "RW"
		case "ro":
			f.Access = "RO"
		case "wo":
			f.Access = "WO"
		default:
			log.Fatalln("unsupported field access:", access)
		}
		r.Fields = append(r.Fields, f)
	}
	return
}

func main() {
	log.Default().SetFlags(log.Lshortfile)
	if len(os.Args) != 5 {
		fmt.Printf("Usage: %v <pkgname> <base> <bytesize> <file>\n", os.Args[0])
		os.Exit(1)
	}

	m := regMap{Pkg: os.Args[1], Base: os.Args[2], Size: os.Args[3]}
	f, err := os.Open(os.Args[4])
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	lines := bufio.NewScanner(f)
	for lines.Scan() {
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.Regs = append(m.Regs, parseLine(line))
	}
	if err := lines.Err(); err != nil {
		log.Fatalln(err)
	}

	source := bytes.NewBuffer(nil)
	tmpl, err := template.New("mapTemplate").Parse(mapTemplate)
	if err != nil {
		log.Fatalln(err)
	}
	if err := tmpl.Execute(source, m); err != nil {
		log.Fatalln(err)
	}

	formattedSource, err := format.Source(source.Bytes())
	if err != nil {
		log.Fatalln(err)
	}
	err = os.WriteFile(m.Pkg+"_regmap.go", formattedSource, 0644)
	if err != nil {
		log.Fatalln(err)
	}
}
