// Package cli implements the rangeset command line tool.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	ShortDesc = "Set algebra over ordered ranges"
	LongDesc  = `rangeset evaluates set operations over ranges of integers, floats,
IP addresses or timestamps.

Sets are written as lists of ranges: {[1,3), [5,7]}, 1-3|5-7, >=10 or {}.
IP sets also accept prefixes such as 10.0.0.0/24. Results are printed in
canonical form: sorted, with overlapping and adjacent ranges merged.`
)

type options struct {
	typ       string
	domain    string
	verbosity int
}

// Execute runs the command line in os.Args and returns the exit code.
func Execute() int {
	cmd := NewCommand()
	cmd.SetArgs(os.Args[1:])
	cmd.SetIn(os.Stdin)
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewCommand returns the root command with all subcommands attached.
func NewCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "rangeset",
		Short:         ShortDesc,
		Long:          LongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	o.addFlags(root.PersistentFlags())

	root.AddCommand(
		setCommand(o, "union SET...", "Print the union of the sets", cobra.MinimumNArgs(1),
			func(e evaluator, args []string) (string, error) { return e.union(args) }),
		setCommand(o, "intersect SET...", "Print the intersection of the sets", cobra.MinimumNArgs(1),
			func(e evaluator, args []string) (string, error) { return e.intersect(args) }),
		setCommand(o, "difference A B", "Print the values of A not in B", cobra.ExactArgs(2),
			func(e evaluator, args []string) (string, error) { return e.difference(args[0], args[1]) }),
		setCommand(o, "symdiff A B", "Print the values in exactly one of A and B", cobra.ExactArgs(2),
			func(e evaluator, args []string) (string, error) { return e.symdiff(args[0], args[1]) }),
		setCommand(o, "invert SET", "Print the values of the domain not in SET", cobra.ExactArgs(1),
			func(e evaluator, args []string) (string, error) { return e.invert(args[0]) }),
		setCommand(o, "domain", "Print the domain", cobra.NoArgs,
			func(e evaluator, _ []string) (string, error) { return e.domain(), nil }),
		boolCommand(o, "subset A B", "Report whether every value of A is in B", cobra.ExactArgs(2),
			func(e evaluator, args []string) (bool, error) { return e.subset(args[0], args[1]) }),
		boolCommand(o, "overlaps A B", "Report whether A and B share a value", cobra.ExactArgs(2),
			func(e evaluator, args []string) (bool, error) { return e.overlaps(args[0], args[1]) }),
		containsCommand(o),
		normalizeCommand(o),
	)
	return root
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.typ, "type", "t", "int", fmt.Sprintf("value type, one of %v", valueTypes))
	fs.StringVarP(&o.domain, "domain", "d", "(,)", "range the sets live in, used by intersect, difference, symdiff and invert")
	fs.IntVarP(&o.verbosity, "verbosity", "v", 0, "log verbosity, logs go to stderr")
}

func (o *options) logger(w io.Writer) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: o.verbosity})
}

func (o *options) evaluator(cmd *cobra.Command) (evaluator, error) {
	log := o.logger(cmd.ErrOrStderr()).WithName(cmd.Name())
	return newEvaluator(o.typ, o.domain, log)
}

func setCommand(o *options, use, short string, args cobra.PositionalArgs, run func(evaluator, []string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.evaluator(cmd)
			if err != nil {
				return err
			}
			out, err := run(e, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func boolCommand(o *options, use, short string, args cobra.PositionalArgs, run func(evaluator, []string) (bool, error)) *cobra.Command {
	return setCommand(o, use, short, args, func(e evaluator, args []string) (string, error) {
		ok, err := run(e, args)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(ok), nil
	})
}

func containsCommand(o *options) *cobra.Command {
	return setCommand(o, "contains SET VALUE...", "Report for each value whether SET holds it", cobra.MinimumNArgs(2),
		func(e evaluator, args []string) (string, error) {
			res, err := e.contains(args[0], args[1:])
			if err != nil {
				return "", err
			}
			lines := make([]string, 0, len(res))
			for i, ok := range res {
				lines = append(lines, fmt.Sprintf("%s %t", args[i+1], ok))
			}
			return strings.Join(lines, "\n"), nil
		})
}

func normalizeCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [SET...]",
		Short: "Print each set in canonical form, reading one set per line from stdin without arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.evaluator(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args, err = readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			for _, in := range args {
				out, err := e.normalize(in)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	return cmd
}

// readLines returns the non-blank lines of r that are not # comments.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
