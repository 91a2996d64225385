package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/mindbloom/apps"
	"github.com/trezcool/mindbloom/core"
	"github.com/trezcool/mindbloom/core/wellness"
	exportsvc "github.com/trezcool/mindbloom/services/export"
)

var (
	isTerminalFunc = isTerminal // mockable

	errQuit = errors.New("quit")
)

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

const shellHelp = `Commands:
  add                          log a new entry (fields are read one per line)
  edit N                       replace entry N (empty answers keep the current value)
  delete N                     remove entry N
  clear                        remove every entry
  list [TEXT]                  show entries, optionally those whose name or status contains TEXT
  order [SPEC]                 sort listings, eg. "-minutes,name" (no SPEC resets)
  stats                        show the session summary
  recent [N]                   show the N most recent entries
  activities [add KIND NAME]   show suggested activities, or add one (KIND: wellness|metime)
  export [PATH] [--append] [--keep]
                               save the session (csv, json or yaml), then clear it unless --keep
  help                         show this help
  quit                         leave the shell`

type shell struct {
	app         *app
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	orderings   []core.Ordering
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive logging session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sh := &shell{
				app:         a,
				in:          bufio.NewScanner(cmd.InOrStdin()),
				out:         cmd.OutOrStdout(),
				interactive: isTerminalFunc(cmd.InOrStdin()),
			}
			return sh.run()
		},
	}
}

func (sh *shell) run() error {
	if sh.interactive {
		sh.printf("%s - type \"help\" for commands\n", titleStyle.Render(sh.app.conf.AppName))
	}
	for {
		sh.prompt("> ")
		if !sh.in.Scan() {
			return sh.in.Err()
		}
		line := strings.TrimSpace(sh.in.Text())
		if line == "" {
			continue
		}
		err := sh.exec(strings.Fields(line))
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil
		case err != nil:
			printError(sh.out, err)
		}
	}
}

func (sh *shell) exec(args []string) error {
	svc := sh.app.svc
	switch cmd, rest := strings.ToLower(args[0]), args[1:]; cmd {
	case "add":
		ne, err := sh.readEntry(nil)
		if err != nil {
			return err
		}
		e, idx, err := svc.Log(ne)
		if err != nil {
			return err
		}
		sh.printf("added #%d %s: %s\n", idx+1, e.StudentName(), statusStyle(e.Status()).Render(e.Status().String()))
		sh.hint(wellness.KindWellness, e.WellnessActivity())
		sh.hint(wellness.KindMeTime, e.MeTimeActivity())
	case "edit":
		i, err := sh.index(rest)
		if err != nil {
			return err
		}
		cur, err := svc.Get(i)
		if err != nil {
			return sh.noEntry(i, err)
		}
		prefill := cur.AsNewEntry()
		ne, err := sh.readEntry(&prefill)
		if err != nil {
			return err
		}
		e, err := svc.Edit(i, ne)
		if err != nil {
			return err
		}
		sh.printf("updated #%d %s: %s\n", i+1, e.StudentName(), statusStyle(e.Status()).Render(e.Status().String()))
	case "delete":
		i, err := sh.index(rest)
		if err != nil {
			return err
		}
		if err := svc.Delete(i); err != nil {
			return sh.noEntry(i, err)
		}
		sh.printf("deleted #%d\n", i+1)
	case "clear":
		sh.printf("cleared %d entries\n", svc.Clear())
	case "list":
		entries, err := svc.List(wellness.Search(strings.Join(rest, " ")), sh.orderings...)
		if err != nil {
			return err
		}
		renderEntries(sh.out, entries, sh.indexer())
	case "order":
		orderings := core.ParseOrdering(strings.Join(rest, ""))
		if err := wellness.CheckOrderings(orderings); err != nil {
			return err
		}
		sh.orderings = orderings
		if len(orderings) == 0 {
			sh.printf("listing in insertion order\n")
		} else {
			sh.printf("listing by %s\n", orderingString(orderings))
		}
	case "stats":
		renderStats(sh.out, svc.Summary())
	case "recent":
		n := sh.app.conf.RecentLimit
		if len(rest) > 0 {
			var err error
			if n, err = strconv.Atoi(rest[0]); err != nil || n <= 0 {
				return apps.NewArgumentError("recent: N must be a positive number")
			}
		}
		renderEntries(sh.out, svc.Recent(n), sh.indexer())
	case "activities":
		return sh.activities(rest)
	case "export":
		return sh.export(rest)
	case "help", "?":
		sh.printf("%s\n", shellHelp)
	case "quit", "exit", "q":
		return errQuit
	default:
		return apps.NewArgumentErrorf("unknown command %q, type \"help\" for the list", cmd)
	}
	return nil
}

// readEntry reads the fields of an entry, one per line. With prefill, empty answers keep its values.
func (sh *shell) readEntry(prefill *wellness.NewEntry) (wellness.NewEntry, error) {
	var ne wellness.NewEntry
	if prefill != nil {
		ne = *prefill
	}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Student name", &ne.StudentName},
		{"Wellness activity", &ne.WellnessActivity},
		{"Me-time activity", &ne.MeTimeActivity},
		{"Screen-free minutes", &ne.ScreenFreeMinutes},
		{"Notes", &ne.Notes},
	}
	for _, fld := range fields {
		if prefill != nil {
			sh.prompt(fmt.Sprintf("%s [%s]: ", fld.label, *fld.dst))
		} else {
			sh.prompt(fld.label + ": ")
		}
		if !sh.in.Scan() {
			if err := sh.in.Err(); err != nil {
				return ne, err
			}
			return ne, io.ErrUnexpectedEOF
		}
		if val := sh.in.Text(); prefill == nil || strings.TrimSpace(val) != "" {
			*fld.dst = val
		}
	}
	return ne, nil
}

// index parses a 1-based entry number.
func (sh *shell) index(args []string) (int, error) {
	if len(args) != 1 {
		return 0, apps.NewArgumentError("expected one entry number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, apps.NewArgumentErrorf("%q is not an entry number", args[0])
	}
	return n - 1, nil
}

func (sh *shell) noEntry(i int, err error) error {
	if errors.Is(err, wellness.ErrIndexOutOfRange) {
		return apps.NewArgumentErrorf("no entry #%d (the session has %d)", i+1, sh.app.svc.Count())
	}
	return err
}

// indexer maps listed entries back to their position in the session.
func (sh *shell) indexer() func(wellness.Entry) int {
	all, _ := sh.app.svc.List(nil)
	pos := make(map[string]int, len(all))
	for i, e := range all {
		pos[e.ID().String()] = i
	}
	return func(e wellness.Entry) int { return pos[e.ID().String()] }
}

// hint suggests a known activity close to one that is not in the catalog.
func (sh *shell) hint(kind wellness.ActivityKind, activity string) {
	if s, ok := sh.app.catalog.Suggest(kind, activity); ok && !strings.EqualFold(s, activity) {
		sh.printf("%s\n", mutedStyle.Render(fmt.Sprintf("hint: did you mean %q?", s)))
	}
}

func (sh *shell) activities(args []string) error {
	if len(args) == 0 {
		sh.printf("%s %s\n", headerStyle.Render("Wellness:"), strings.Join(sh.app.catalog.List(wellness.KindWellness), ", "))
		sh.printf("%s  %s\n", headerStyle.Render("Me-time:"), strings.Join(sh.app.catalog.List(wellness.KindMeTime), ", "))
		return nil
	}
	if strings.ToLower(args[0]) != "add" || len(args) < 3 {
		return apps.NewArgumentError("usage: activities add wellness|metime NAME")
	}
	var kind wellness.ActivityKind
	switch strings.ToLower(args[1]) {
	case "wellness":
		kind = wellness.KindWellness
	case "metime", "me-time":
		kind = wellness.KindMeTime
	default:
		return apps.NewArgumentErrorf("unknown activity kind %q (wellness|metime)", args[1])
	}
	activity, err := sh.app.catalog.Add(kind, strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	sh.printf("added activity %q\n", activity)
	return nil
}

func (sh *shell) export(args []string) error {
	path := sh.app.conf.ExportPath
	var appendMode, keep bool
	for _, arg := range args {
		switch arg {
		case "--append", "-a":
			appendMode = true
		case "--keep", "-k":
			keep = true
		default:
			if strings.HasPrefix(arg, "-") {
				return apps.NewArgumentErrorf("export: unknown flag %q", arg)
			}
			path = arg
		}
	}
	n, err := exportSession(sh.app, path, appendMode, sh.orderings...)
	if err != nil {
		return err
	}
	sh.printf("exported %d entries to %s (%d rows in file)\n", sh.app.svc.Count(), path, n)
	if !keep {
		sh.app.svc.Clear()
	}
	return nil
}

func (sh *shell) prompt(s string) {
	if sh.interactive {
		_, _ = fmt.Fprint(sh.out, s)
	}
}

func (sh *shell) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(sh.out, format, args...)
}

func orderingString(orderings []core.Ordering) string {
	parts := make([]string, 0, len(orderings))
	for _, ord := range orderings {
		parts = append(parts, ord.String())
	}
	return strings.Join(parts, ",")
}

// exportSession saves the session rows to path, in the configured format or the one of path's extension.
// It returns the number of rows in the file.
func exportSession(a *app, path string, appendMode bool, orderings ...core.Ordering) (int, error) {
	var format exportsvc.Format
	if path == a.conf.ExportPath && a.conf.ExportFormat != "" {
		f, err := exportsvc.ParseFormat(a.conf.ExportFormat)
		if err != nil {
			return 0, err
		}
		format = f
	}
	rows, err := a.svc.Rows(orderings...)
	if err != nil {
		return 0, err
	}
	n, err := exportsvc.SaveFile(path, format, rows, appendMode)
	if err != nil {
		return 0, err
	}
	a.logger.Info("session exported", map[string]interface{}{
		"path":   path,
		"format": format,
		"rows":   len(rows),
		"append": appendMode,
	})
	return n, nil
}
