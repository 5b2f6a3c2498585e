// Command wander is the command-line front end for the Wander
// interpreter: a script runner, an interactive REPL, and an
// introspection dump for tooling.
//
//	wander                    start the REPL
//	wander run script.wander  run a script and print its final value
//	wander introspect file    dump every pipeline stage as YAML
//	wander version            print the interpreter version
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/peterh/liner"
	"github.com/pkg/profile"
	"github.com/sahilm/fuzzy"

	wander "github.com/almibe/wander-go"
)

var cli struct {
	CPUProfile bool `name:"cpu-profile" help:"Write a CPU profile to the current directory."`

	Run struct {
		Script string `arg:"" type:"existingfile" help:"Wander script to run."`
	} `cmd:"" help:"Run a Wander script file and print its final value."`

	Repl struct{} `cmd:"" default:"1" help:"Start an interactive session."`

	Introspect struct {
		Script string `arg:"" type:"existingfile" help:"Wander script to inspect."`
	} `cmd:"" help:"Dump every pipeline stage for a script as YAML."`

	Version struct{} `cmd:"" help:"Print the interpreter version."`
}

var (
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("wander"),
		kong.Description("The Wander expression language."),
		kong.UsageOnError(),
	)
	if err := dispatch(ctx.Command()); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func dispatch(command string) error {
	if cli.CPUProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	switch command {
	case "run <script>":
		return runScript(cli.Run.Script)
	case "introspect <script>":
		return introspectScript(cli.Introspect.Script)
	case "version":
		fmt.Println("wander " + wander.Version)
		return nil
	default:
		return repl()
	}
}

func runScript(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	value, err := wander.Run(string(src), wander.Common())
	if err != nil {
		return wander.WrapErrorWithSource(err, string(src))
	}
	fmt.Println(wander.FormatValue(value))
	return nil
}

/* ===========================
   introspect
   =========================== */

type tokenDump struct {
	Kind   string `yaml:"kind"`
	Lexeme string `yaml:"lexeme"`
	Line   int    `yaml:"line"`
	Col    int    `yaml:"col"`
}

type pipelineDump struct {
	Tokens            []tokenDump `yaml:"tokens"`
	FilteredTokens    []tokenDump `yaml:"filtered_tokens"`
	TransformedTokens []tokenDump `yaml:"transformed_tokens"`
	Elements          []string    `yaml:"elements"`
	Expressions       []string    `yaml:"expressions"`
}

func introspectScript(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ix, err := wander.Introspect(string(src), wander.Common())
	if err != nil {
		return wander.WrapErrorWithSource(err, string(src))
	}
	dump := pipelineDump{
		Tokens:            dumpTokens(ix.Tokens),
		FilteredTokens:    dumpTokens(ix.FilteredTokens),
		TransformedTokens: dumpTokens(ix.TransformedTokens),
	}
	for _, el := range ix.Elements {
		dump.Elements = append(dump.Elements, el.String())
	}
	for _, expr := range ix.Expressions {
		dump.Expressions = append(dump.Expressions, expr.String())
	}
	out, err := yaml.Marshal(dump)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func dumpTokens(tokens []wander.Token) []tokenDump {
	out := make([]tokenDump, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenDump{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme,
			Line:   tok.Line,
			Col:    tok.Col,
		}
	}
	return out
}

/* ===========================
   repl
   =========================== */

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wander_history")
}

func repl() error {
	bindings := wander.Common()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetWordCompleter(completer(bindings))

	history := historyPath()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Printf("wander %s -- :help for help, :quit to exit\n", wander.Version)
	for {
		text, err := line.Prompt("wander> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		line.AppendHistory(text)

		if strings.HasPrefix(text, ":") {
			if done := replCommand(text, bindings); done {
				break
			}
			continue
		}

		value, err := wander.Run(text, bindings)
		if err != nil {
			fmt.Println(errorStyle.Render(wander.WrapErrorWithSource(err, text).Error()))
			continue
		}
		fmt.Println(resultStyle.Render(wander.FormatValue(value)))
	}

	if history != "" {
		if f, err := os.Create(history); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

// replCommand handles ":" commands and reports whether the REPL should
// exit.
func replCommand(text string, bindings *wander.Bindings) bool {
	switch text {
	case ":quit", ":exit", ":q":
		return true
	case ":env":
		fmt.Println(environmentTable(bindings))
	case ":help":
		fmt.Println(mutedStyle.Render(strings.Join([]string{
			"Enter a Wander expression to evaluate it.",
			":env   show the registered host functions",
			":help  show this help",
			":quit  exit",
		}, "\n")))
	default:
		fmt.Println(errorStyle.Render("unknown command " + text + " (try :help)"))
	}
	return false
}

func environmentTable(bindings *wander.Bindings) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("NAME", "PARAMETERS", "RESULT", "DOC")
	for _, hb := range bindings.HostFunctionBindings() {
		params := make([]string, len(hb.Parameters))
		for i, p := range hb.Parameters {
			params[i] = p.Name + ": " + p.Type.String()
		}
		tbl.Row(hb.Name, strings.Join(params, ", "), hb.Result.String(), hb.Doc)
	}
	return tbl.String()
}

// completer fuzzy-matches the word under the cursor against every bound
// name.
func completer(bindings *wander.Bindings) liner.WordCompleter {
	return func(text string, pos int) (string, []string, string) {
		head, tail := text[:pos], text[pos:]
		start := strings.LastIndexAny(head, " \t([{") + 1
		word := head[start:]
		names := bindings.BoundNames()
		if word == "" {
			return head, names, tail
		}
		matches := fuzzy.Find(word, names)
		completions := make([]string, len(matches))
		for i, m := range matches {
			completions[i] = m.Str
		}
		return head[:start], completions, tail
	}
}
