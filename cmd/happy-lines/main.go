package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"happy-lines/internal/config"
	"happy-lines/internal/ignore"
	"happy-lines/internal/logging"
	"happy-lines/internal/picker"
	"happy-lines/internal/report"
	"happy-lines/internal/scanner"
	"happy-lines/internal/terminal"
	ui "happy-lines/internal/tui"
)

type multiFlag []string

func (m *multiFlag) String() string     { return fmt.Sprint([]string(*m)) }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

type options struct {
	root         string
	excludes     multiFlag
	promptIgnore bool
	hidden       bool
	followLinks  bool
	gitignore    bool
	useTUI       bool
	jsonOut      bool
	copyOut      bool
	configPath   string
	logLevel     string
	logFormat    string
}

// parseFlags parses args and folds in the config file, if one was named.
// Flags given explicitly win over config values.
func parseFlags(args []string, errOut io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("happy-lines", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: happy-lines [options]\n\n")
		fmt.Fprintf(errOut, "Pick a subdirectory with the arrow keys and count the lines of every file below it.\n\n")
		fmt.Fprintf(errOut, "Options:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.root, "path", ".", "Directory whose subdirectories are listed")
	fs.StringVar(&o.root, "p", ".", "Alias of --path")
	fs.Var(&o.excludes, "exclude", "Directory name to skip at any depth (can repeat)")
	fs.Var(&o.excludes, "x", "Alias of --exclude")
	fs.BoolVar(&o.promptIgnore, "prompt-ignore", true, "Ask for folder names to ignore before the menu")
	fs.BoolVar(&o.promptIgnore, "i", true, "Alias of --prompt-ignore")
	fs.BoolVar(&o.hidden, "hidden", false, "Include dot-prefixed files and directories")
	fs.BoolVar(&o.followLinks, "follow-symlinks", false, "Descend into symlinked directories (each real directory once)")
	fs.BoolVar(&o.followLinks, "L", false, "Alias of --follow-symlinks")
	fs.BoolVar(&o.gitignore, "gitignore", false, "Also skip paths matched by the selected directory's .gitignore")
	fs.BoolVar(&o.useTUI, "tui", false, "Use the full-screen interface")
	fs.BoolVar(&o.useTUI, "t", false, "Alias of --tui")
	fs.BoolVar(&o.jsonOut, "json", false, "Print the result as JSON")
	fs.BoolVar(&o.copyOut, "clipboard", false, "Copy the result to the clipboard")
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.configPath, "c", "", "Alias of --config")
	fs.StringVar(&o.logLevel, "log-level", "warn", "Logging level: debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", "text", "Log format: text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.configPath == "" {
		return &o, nil
	}

	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	given := func(names ...string) bool {
		for _, n := range names {
			if set[n] {
				return true
			}
		}
		return false
	}
	o.excludes = append(multiFlag(cfg.Ignore), o.excludes...)
	if !given("prompt-ignore", "i") {
		o.promptIgnore = cfg.PromptIgnore
	}
	if !given("hidden") {
		o.hidden = cfg.ShowHidden
	}
	if !given("follow-symlinks", "L") {
		o.followLinks = cfg.FollowSymlinks
	}
	if !given("gitignore") {
		o.gitignore = cfg.Gitignore
	}
	if !given("tui", "t") {
		o.useTUI = cfg.TUI
	}
	return &o, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	log := logging.New(o.logLevel, o.logFormat, os.Stderr)

	absRoot, err := filepath.Abs(o.root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve path: %v\n", err)
		return 2
	}

	in := bufio.NewReader(os.Stdin)
	skip := ignore.New(o.excludes...)
	if o.promptIgnore {
		fmt.Println("Enter the folders to ignore (exit to stop): ")
		names, err := ignore.ReadPrompt(in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		skip.Add(names...)
	}
	log.Debug("ignore set ready", "names", skip.Names())

	entries, err := picker.ListDirectories(absRoot, o.hidden)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	log.Debug("listed directories", "root", absRoot, "count", len(entries))

	scanOpts := scanner.Options{
		Ignore:         skip,
		IncludeHidden:  o.hidden,
		FollowSymlinks: o.followLinks,
		Gitignore:      o.gitignore,
	}

	var rep report.Report
	if o.useTUI {
		out, err := ui.Run(absRoot, entries, scanOpts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
			return 1
		}
		if out.Cancelled {
			log.Info("selection cancelled")
			return 0
		}
		if out.Err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", out.Err)
			return 1
		}
		rep = report.Report{Directory: out.Directory, Result: out.Result}
	} else {
		name, ok, err := pick(in, entries)
		if err != nil {
			die(err)
			return 1
		}
		if !ok {
			os.Stdout.WriteString(terminal.ClearScreen)
			log.Info("selection cancelled")
			return 0
		}
		res, err := scanner.Count(context.Background(), filepath.Join(absRoot, name), scanOpts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		rep = report.Report{Directory: name, Result: res}
	}
	log.Info("walk finished", "dir", rep.Directory, "total", rep.Result.Total,
		"files", rep.Result.Files, "dirs", rep.Result.Dirs, "failures", len(rep.Result.Failures))

	return emit(rep, o, log)
}

// pick runs the raw-mode menu. The terminal is restored before it returns,
// including when the menu panics or the process is signalled.
func pick(in *bufio.Reader, entries []string) (name string, ok bool, err error) {
	sess, err := terminal.Open(int(os.Stdin.Fd()), os.Stdout)
	if err != nil {
		return "", false, err
	}
	stop := sess.CloseOnSignal(os.Exit)
	defer func() {
		stop()
		if r := recover(); r != nil {
			_ = sess.Close()
			panic(r)
		}
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	menu := picker.NewMenu(entries)
	if _, err := picker.Run(terminal.NewKeyReader(in), os.Stdout, menu); err != nil {
		return "", false, err
	}
	name, ok = menu.Selected()
	return name, ok, nil
}

// die clears the screen and reports a fatal terminal error.
func die(err error) {
	os.Stdout.WriteString(terminal.ClearScreen)
	fmt.Fprintf(os.Stderr, "%v\n", err)
}

func emit(rep report.Report, o *options, log *slog.Logger) int {
	var err error
	switch {
	case o.jsonOut:
		err = report.WriteJSON(os.Stdout, rep)
	case !o.useTUI && terminal.IsTerminal(int(os.Stdout.Fd())):
		err = report.WriteScreen(os.Stdout, rep)
	default:
		err = report.WriteText(os.Stdout, rep)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if !o.jsonOut {
		_ = report.WriteFailures(os.Stderr, rep.Result.Failures)
	}
	if o.copyOut {
		if err := report.Copy(rep); err != nil {
			log.Warn("clipboard unavailable", "err", err)
		} else {
			fmt.Println("Result copied to clipboard.")
		}
	}
	return 0
}
