package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"boardcode-go/board"
	"boardcode-go/board/boarddef"
	"boardcode-go/board/boards"
	"boardcode-go/board/platform"
	"boardcode-go/errcode"
	"boardcode-go/internal/logging"
	"boardcode-go/services/boardns"
	"boardcode-go/types"
)

type options struct {
	board    string
	file     string
	logLevel string
	format   string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	colSymbol   = lipgloss.NewStyle().Width(16)
	colKind     = lipgloss.NewStyle().Width(6)
	colResource = lipgloss.NewStyle().Width(32)
)

// paint applies st only when w is a terminal.
func paint(w io.Writer, st lipgloss.Style, text string) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return st.Render(text)
	}
	return text
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "boardinfo",
		Short: "Inspect board pin and bus registries",
		Long: `Build a board registry from a compiled-in board or a YAML definition
and inspect its symbols, aliases, buses and label warnings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Initialize(opts.logLevel)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&opts.board, "board", boards.QTPyESP32S2Name, "Compiled-in board name (see 'boardinfo boards')")
	pf.StringVarP(&opts.file, "file", "f", "", "Board definition YAML (overrides --board)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); default from "+logging.LogLevelEnvVar)

	root.AddCommand(
		newListCmd(opts),
		newResolveCmd(opts),
		newCheckCmd(opts),
		newDumpCmd(opts),
		newBoardsCmd(),
	)
	return root
}

// definition returns the selected board definition.
func (o *options) definition() (types.Definition, error) {
	if o.file != "" {
		return boarddef.Load(o.file)
	}
	e, ok := boards.Lookup(o.board)
	if !ok {
		return types.Definition{}, &errcode.E{C: errcode.UnknownBoard, Op: "board", Msg: o.board}
	}
	return e.Def, nil
}

// registry builds the selected board with host fakes as drivers.
func (o *options) registry() (*board.Registry, error) {
	def, err := o.definition()
	if err != nil {
		return nil, err
	}
	r, err := boarddef.Compile(def, board.Drivers{
		Pins:  platform.DefaultPinFactory(),
		Buses: platform.DefaultBusFactory(),
	})
	if err != nil {
		return nil, err
	}
	logging.LogRegistry(r)
	return r, nil
}

// ---- list ----

func newListCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List symbols in declaration order",
		Example: `  boardinfo list
  boardinfo list --format json
  boardinfo list -f myboard.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.registry()
			if err != nil {
				return err
			}
			return writeList(cmd.OutOrStdout(), r, opts.format)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format (table, json)")
	return cmd
}

func writeList(w io.Writer, r *board.Registry, format string) error {
	syms, err := r.Symbols()
	if err != nil {
		return err
	}
	infos := make([]types.SymbolInfo, 0, len(syms))
	for _, s := range syms {
		info, err := boardns.Info(r, s)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "table", "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	fmt.Fprintln(w, paint(w, headerStyle, r.Board()+" ("+r.Chip()+")"))
	fmt.Fprintln(w, paint(w, headerStyle, row("SYMBOL", "KIND", "RESOURCE", "ALIASES")))
	for _, s := range syms {
		res, _ := r.Resolve(s)
		al, _ := r.Aliases(s)
		fmt.Fprintln(w, row(s, string(res.Kind()), res.String(), strings.Join(others(al, s), ",")))
	}
	for _, wn := range r.Warnings() {
		fmt.Fprintln(w, paint(w, warnStyle, "warning: "+wn.Msg))
	}
	return nil
}

func row(sym, kind, res, aliases string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		colSymbol.Render(sym), colKind.Render(kind), colResource.Render(res), aliases)
}

func others(list []string, self string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != self {
			out = append(out, s)
		}
	}
	return out
}

// ---- resolve ----

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve SYMBOL...",
		Short: "Resolve symbols to pins or buses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.registry()
			if err != nil {
				return err
			}
			var missing []string
			out := cmd.OutOrStdout()
			for _, s := range args {
				res, err := r.Resolve(s)
				if err != nil {
					if !errors.Is(err, errcode.UnknownSymbol) {
						return err
					}
					missing = append(missing, s)
					fmt.Fprintln(out, paint(out, errStyle, s+": unknown symbol"))
					continue
				}
				fmt.Fprintf(out, "%s -> %s\n", s, res)
			}
			if len(missing) > 0 {
				return &errcode.E{C: errcode.UnknownSymbol, Op: "resolve", Msg: strings.Join(missing, ", ")}
			}
			return nil
		},
	}
}

// ---- check ----

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [FILE]",
		Short: "Validate a board definition and report label warnings",
		Long: `Build the registry and report construction errors (duplicate symbols,
unknown pins, invalid bus role sets) and data-validation warnings. Warnings
do not fail the check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.file = args[0]
			}
			r, err := opts.registry()
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, w := range r.Warnings() {
				fmt.Fprintln(out, paint(out, warnStyle, "warning: "+w.Msg))
			}
			syms, _ := r.Symbols()
			fmt.Fprintf(out, "ok: %s, %d symbols, %d warnings\n", r.Board(), len(syms), len(r.Warnings()))
			return nil
		},
	}
}

// ---- dump ----

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the selected board definition as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := opts.definition()
			if err != nil {
				return err
			}
			return boarddef.Encode(cmd.OutOrStdout(), def)
		},
	}
}

// ---- boards ----

func newBoardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List compiled-in boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, n := range boards.Names() {
				e, _ := boards.Lookup(n)
				fmt.Fprintln(cmd.OutOrStdout(), colResource.Render(n)+e.Chip.Name)
			}
			return nil
		},
	}
}
