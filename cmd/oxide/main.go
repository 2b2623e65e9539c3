// Command oxide is the CLI surface of §6: a REPL with no arguments, a
// file runner given a path, and a version subcommand.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/mod/semver"

	"github.com/golangee/oxide"
	"github.com/golangee/oxide/builtin"
	"github.com/golangee/oxide/internal/diag"
	"github.com/golangee/oxide/token"
	"github.com/golangee/oxide/value"
)

// version is overridden at build time via -ldflags
// "-X main.version=v1.2.3"; it stays unset ("v0.0.0-dev") otherwise.
var version = "v0.0.0-dev"

var log = logrus.New()

func main() {
	app := &cli.App{
		Name:                 "oxide",
		Usage:                "run or explore an oxide program",
		ArgsUsage:            "[path]",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log each pipeline stage"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colorized diagnostics"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}

			if c.Bool("no-color") || os.Getenv("NO_COLOR") != "" || os.Getenv("OXIDE_NO_COLOR") != "" {
				color.NoColor = true
			}

			return nil
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				return runREPL()
			}

			return runFilePath(c.Args().First())
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "print the interpreter version",
				Action: func(c *cli.Context) error {
					v := version
					if semver.IsValid(v) {
						v = semver.Canonical(v)
					}

					fmt.Println(v)

					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFilePath(path string) error {
	log.WithField("file", path).Debug("reading source")

	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	log.Debug("lexing, parsing, resolving, evaluating")

	if err := oxide.RunFile(path, bytes.NewReader(src), builtin.Default()); err != nil {
		printRunError(err, src)
		os.Exit(1)
	}

	return nil
}

// printRunError reports err to standard error. A *token.PosError (from
// lexing/parsing) or a *diag.Error (from resolving) carries enough to
// render the caret-and-source-line explanation §6 requires ("file,
// line, column, and a human message"); anything else — an evaluator
// error has no source span — falls back to its plain message.
func printRunError(err error, src []byte) {
	lines := strings.Split(string(src), "\n")

	var pe *token.PosError
	if errors.As(err, &pe) {
		errLabel := color.New(color.FgRed, color.Bold)
		errLabel.Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, pe.Error())
		fmt.Fprint(os.Stderr, pe.Explain(lines))

		return
	}

	var de *diag.Error
	if errors.As(err, &de) {
		de.Bag.Print(os.Stderr, lines)
		return
	}

	fmt.Fprintln(os.Stderr, err)
}

func runREPL() error {
	rl, err := readline.New("oxide> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	session, err := oxide.NewSession(builtin.Default())
	if err != nil {
		return err
	}

	var pending string

	for {
		prompt := "oxide> "
		if pending != "" {
			prompt = "   ... "
		}

		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err != nil { // io.EOF on ctrl-D, readline.ErrInterrupt on ctrl-C
			return nil
		}

		if pending != "" {
			pending += "\n" + line
		} else {
			pending = line
		}

		if pending == "" || (line != "" && oxide.NeedsContinuation(pending)) {
			continue
		}

		src := pending
		pending = ""

		log.WithField("line", src).Debug("evaluating")

		val, err := session.Eval(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		if val != nil {
			if _, isNil := val.(value.Nil); !isNil {
				fmt.Println(value.StringOf(val))
			}
		}
	}
}
