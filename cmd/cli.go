// Package cmd implements the collsh read-eval-print loop.
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/fzft/go-collections/commands"
	"github.com/fzft/go-collections/internal/linenoise"
	"github.com/fzft/go-collections/log"
	"github.com/fzft/go-collections/resp"
)

const (
	CliHisFileDefault = ".collsh_history"
	CliNoHistory      = "/dev/null"
)

type OutputMode uint8

const (
	OutputStandard OutputMode = iota // redis-cli style text
	OutputRaw                        // RESP3 wire form
)

type CliConfig struct {
	Prompt      string
	HistoryFile string
	Output      OutputMode
}

type Cli struct {
	config   *CliConfig
	registry *commands.Registry
	out      io.Writer
}

func NewCli(config *CliConfig, registry *commands.Registry, out io.Writer) *Cli {
	return &Cli{config: config, registry: registry, out: out}
}

// Run reads commands from in until QUIT or end of input. A terminal gets the
// line editor and history; anything else is read line by line.
func (cli *Cli) Run(in *os.File) error {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return cli.repl()
	}
	return cli.RunScript(in)
}

// RunScript executes every line of r.
func (cli *Cli) RunScript(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if quit := cli.execute(scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

func (cli *Cli) repl() error {
	line := linenoise.New()
	defer line.Close()

	names := make([]string, 0)
	for _, c := range cli.registry.Commands() {
		names = append(names, c.Name)
	}
	line.SetCommands(names)

	historyFile := getDotfilePath(cli.config.HistoryFile, CliHisFileDefault)
	if historyFile != "" {
		if err := line.HistoryLoad(historyFile); err != nil {
			log.Logger.Warn("failed to load history", zap.String("file", historyFile), zap.Error(err))
		}
	}
	log.Logger.Info("collsh started", zap.String("history", historyFile))

	for {
		input, err := line.Prompt(cli.config.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			// io.EOF on ctrl-d
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if historyFile != "" {
			if err := line.HistorySave(historyFile); err != nil {
				log.Logger.Warn("failed to save history", zap.String("file", historyFile), zap.Error(err))
			}
		}

		argv, err := splitArgs(input)
		if err == nil && len(argv) == 1 && strings.EqualFold(argv[0], "clear") {
			_ = linenoise.ClearScreen(cli.out)
			continue
		}
		if quit := cli.execute(input); quit {
			break
		}
	}
	return nil
}

// execute runs one input line and reports whether the session should end.
func (cli *Cli) execute(line string) bool {
	argv, err := splitArgs(line)
	if err != nil {
		fmt.Fprintf(cli.out, "Invalid argument(s)\n")
		return false
	}
	return cli.Exec(argv)
}

// Exec runs one tokenized command line, which may start with a repeat count,
// and reports whether it asked to quit.
func (cli *Cli) Exec(argv []string) bool {
	if len(argv) == 0 {
		return false
	}

	// check if we have a repeat command option and need to skip the first arg
	repeat, err := strconv.Atoi(argv[0])
	if len(argv) > 1 && err == nil {
		if repeat <= 0 {
			fmt.Fprintln(cli.out, "Invalid collsh repeat command option value.")
			return false
		}
		argv = argv[1:]
	} else {
		repeat = 1
	}

	if strings.EqualFold(argv[0], "quit") || strings.EqualFold(argv[0], "exit") {
		return true
	}
	for range repeat {
		cli.printReply(cli.registry.Execute(argv))
	}
	return false
}

func (cli *Cli) printReply(node resp.Node) {
	if cli.config.Output == OutputRaw {
		_, _ = cli.out.Write(resp.Encode(node))
		return
	}
	fmt.Fprintln(cli.out, resp.Format(node))
}

// splitArgs tokenizes a line with shell quoting rules.
func splitArgs(line string) ([]string, error) {
	return shlex.Split(line)
}

// getDotfilePath resolves the configured history file: empty means the
// dotfile in $HOME, CliNoHistory disables the file.
func getDotfilePath(configured, dotFilename string) string {
	if configured == CliNoHistory {
		return ""
	}
	if configured != "" {
		return configured
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, dotFilename)
}
