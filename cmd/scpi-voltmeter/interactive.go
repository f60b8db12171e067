package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/scpi-protocol/scpi-go/pkg/interp"
)

// runInteractive runs a readline prompt against the instrument.
// Responses print to stdout, errors to stderr; "exit" or Ctrl-D quits.
func runInteractive(in *interp.Interpreter) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "SCPI> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		result := in.Run(line)
		for _, resp := range result.Responses {
			fmt.Println(resp)
		}
		for _, e := range result.Errors {
			fmt.Fprintln(rl.Stderr(), e.Error())
		}
	}
}
