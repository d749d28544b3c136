package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/peterzimon/ZFM/audio"
	"github.com/peterzimon/ZFM/dub"
	"github.com/peterzimon/ZFM/synth"
)

type env struct {
	engine    *synth.Engine
	panel     *audio.Panel
	sequencer *audio.Sequencer
	notes     audio.NoteSink
	out       io.Writer
}

func (e *env) eval(input string) (dub.Node, error) {
	command, err := grammar.Parse(input)
	if err != nil {
		return nil, err
	}
	for _, cmd := range commands {
		if command.Name != cmd.Name {
			continue
		}
		result, err := cmd.run(e, command.Args)
		if err != nil {
			return result, fmt.Errorf("%s error: %w", cmd.Name, err)
		}
		return result, nil
	}
	return nil, fmt.Errorf("%w: %s", dub.ErrUnknownCommand, command.Name)
}

func repl(env *env) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		result, err := env.eval(line)
		if err != nil {
			fmt.Println(err)
		} else if result != nil {
			fmt.Println(result)
		}
	}
}
