// Command regen enumerates strings matched by a regular expression.
//
//	regen -n 10 '(a|b)c*'
//
// With no pattern argument it starts an interactive prompt.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"regen"
)

var count = flag.Int("n", 10, "maximum number of matches to print per pattern")

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		runPrompt(*count)
		return
	}
	re, err := regen.Compile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	emit(re, *count)
}

func emit(re *regen.Regexp, n int) {
	for _, s := range re.Enumerate(n) {
		fmt.Println(s)
	}
}

func runPrompt(n int) {
	rl, err := readline.New("> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if line == "" {
			continue
		}
		re, err := regen.Compile(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		emit(re, n)
	}
}
