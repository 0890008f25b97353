/*
Package main is the generator for the dictionary artifacts of package ingredient.

Contents

The generator reads a dictionary ("dictionaries/en.yml") and the base grammar
("dictionaries/ingredient.peg"). It writes

   grammar_en.peg   the base grammar plus keyword rules for units,
                    number words and prepositions
   units_en.go      the Unit enumeration and the lookup tables

The grammar is compiled before anything is written, so a broken dictionary or
base grammar never produces artifacts.

Usage

   generator [-v] [-dict file] [-grammar file] [-peg file] [-go file] [-pkg name]

It is designed to be called from the module root, usually by go generate.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/kabouzeid/ingredient/dictionary"
	"github.com/kabouzeid/ingredient/internal/tracing"
	"github.com/kabouzeid/ingredient/peg"
	schuko "github.com/npillmayer/schuko/tracing"
)

var logger = log.New(os.Stderr, "ingredient generator: ", log.LstdFlags)

// flag: verbose output ?
var verbose bool

func main() {
	doVerbose := flag.Bool("v", false, "verbose output mode")
	dictFile := flag.String("dict", "dictionaries/en.yml", "dictionary source")
	baseFile := flag.String("grammar", "dictionaries/ingredient.peg", "base grammar")
	pegFile := flag.String("peg", "grammar_en.peg", "grammar output file")
	goFile := flag.String("go", "units_en.go", "Go tables output file")
	pkg := flag.String("pkg", "ingredient", "package of the Go tables")
	flag.Parse()
	verbose = *doVerbose
	if verbose {
		tracing.UseGoLog(schuko.LevelInfo)
	}
	dict, tables := loadDictionary(*dictFile)
	grammar := generateGrammar(*baseFile, tables)
	var goSrc bytes.Buffer
	checkFatal(dictionary.WriteGoTables(&goSrc, *pkg, *dictFile, dict, tables))
	checkFatal(os.WriteFile(*pegFile, grammar, 0o644))
	checkFatal(os.WriteFile(*goFile, goSrc.Bytes(), 0o644))
	if verbose {
		logger.Printf("wrote %s and %s", *pegFile, *goFile)
	}
}

func loadDictionary(path string) (*dictionary.Dictionary, *dictionary.Tables) {
	defer timeTrack(time.Now(), "loading "+path)
	if verbose {
		logger.Printf("reading %s", path)
	}
	dict, err := dictionary.LoadFile(path)
	checkFatal(err)
	tables, err := dictionary.Compile(dict)
	checkFatal(err)
	if verbose {
		logger.Printf("%d units with %d expressions, %d number words, %d prepositions",
			len(tables.Canonical), len(tables.UnitLiterals), len(tables.NumberLiterals),
			len(tables.PrepositionLiterals))
	}
	return dict, tables
}

// generateGrammar appends the keyword rules to the base grammar and makes sure
// the result compiles.
func generateGrammar(basePath string, tables *dictionary.Tables) []byte {
	defer timeTrack(time.Now(), "generate grammar")
	base, err := os.ReadFile(basePath)
	checkFatal(err)
	var buf bytes.Buffer
	checkFatal(dictionary.WriteGrammar(&buf, string(base), tables))
	g, err := peg.Compile(basePath, buf.String())
	checkFatal(err)
	if verbose {
		logger.Printf("grammar has %d rules", len(g.Rules()))
	}
	return buf.Bytes()
}

// --- Util -------------------------------------------------------------

func timeTrack(start time.Time, name string) {
	if verbose {
		elapsed := time.Since(start)
		logger.Printf("timing: %s took %s\n", name, elapsed)
	}
}

func checkFatal(err error) {
	_, file, line, _ := runtime.Caller(1)
	if err != nil {
		logger.Fatalln(":", file, ":", line, "-", err)
	}
}
