package shell

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// DefaultBuiltins returns the builtins every engine starts with.
func DefaultBuiltins() []Builtin {
	return []Builtin{
		{
			Name:  "echo",
			Usage: "echo [ARG]...",
			Short: "Write the arguments separated by spaces, followed by a blank line.",
			Main:  ShellBuiltinFunc(Echo),
		},
		{
			Name:  "def",
			Usage: "def NAME {",
			Short: "Define or extend a function from the lines that follow, up to a line holding only }.",
			Kind:  BlockBuiltin,
			Main:  ShellBuiltinFunc(Def),
		},
		{
			Name:  "cd",
			Usage: "cd [DIR]",
			Short: "Change the working directory, HOME by default.",
			Main:  ShellBuiltinFunc(Cd),
		},
		{
			Name:  "type",
			Usage: "type [-a] NAME...",
			Short: "Show how each NAME would be interpreted as a command.",
			Main:  ShellBuiltinFunc(Type),
		},
		{
			Name:  "functions",
			Usage: "functions [NAME]...",
			Short: "Print the definitions of user functions.",
			Main:  ShellBuiltinFunc(Functions),
		},
		{
			Name:  "help",
			Usage: "help",
			Short: "List the shell builtins.",
			Main:  ShellBuiltinFunc(Help),
		},
	}
}

// Echo writes its arguments joined by spaces and two newlines.
func Echo(e *Engine, args []string) int {
	var operands []string
	if len(args) > 1 {
		operands = args[1:]
	}
	fmt.Fprint(e.Stdout, strings.Join(operands, " ")+"\n\n")
	return 0
}

// Def reads a function body from the input: one command per line until a
// line that is exactly "}". Blank lines are skipped. Bodies are appended to
// any existing definition with the same name.
func Def(e *Engine, args []string) int {
	if len(args) != 3 || args[2] != "{" {
		fmt.Fprintln(e.Stderr, "def: usage: def NAME {")
		return 2
	}
	name := args[1]

	if e.lines == nil {
		fmt.Fprintln(e.Stderr, "def: no input to read a definition from")
		return 1
	}

	def := e.functions.Begin(name)
	defer def.End()

	for {
		line, err := e.lines.ReadLine(e.continuationPrompt)
		switch {
		case err == io.EOF:
			fmt.Fprintf(e.Stderr, "def: unexpected end of input in definition of '%s'\n", name)
			return 1
		case err != nil:
			fmt.Fprintf(e.Stderr, "def: %v\n", err)
			return 1
		}

		if strings.TrimSuffix(line, "\n") == "}" {
			return 0
		}

		if cmd, ok := e.ParseLine(line); ok {
			// Can't fail, the definition is open until we return.
			_ = def.Append(cmd)
		}
	}
}

// Cd is the cd shell builtin
func Cd(e *Engine, args []string) int {
	cmd := &SimpleCommand{
		Use:   "cd [DIR]",
		Short: "Change the working directory, HOME by default.",
	}

	return cmd.Run(e, args, func(operands []string) int {
		var dir string
		switch len(operands) {
		case 0:
			dir = e.env.Getenv(EnvHome)
			if dir == "" {
				fmt.Fprintf(e.Stderr, "%s: HOME not set\n", args[0])
				return 1
			}
		case 1:
			dir = operands[0]
		default:
			fmt.Fprintf(e.Stderr, "%s: too many arguments\n", args[0])
			return 1
		}

		if err := e.chdir(dir); err != nil {
			fmt.Fprintf(e.Stderr, "%s: %v\n", args[0], err)
			return 1
		}
		return 0
	})
}

// Type reports which tier each operand resolves to.
func Type(e *Engine, args []string) int {
	cmd := &SimpleCommand{
		Use:   "type [-a] NAME...",
		Short: "Show how each NAME would be interpreted as a command.",
	}
	all := cmd.Flags().Bool('a', "show every match in resolution order, not only the first")

	return cmd.Run(e, args, func(names []string) int {
		status := 0
		for _, name := range names {
			descriptions := e.describe(name, *all)
			if len(descriptions) == 0 {
				fmt.Fprintf(e.Stderr, "%s: %s: not found\n", args[0], name)
				status = 1
				continue
			}
			for _, d := range descriptions {
				fmt.Fprintf(e.Stdout, "%s %s\n", name, d)
			}
		}
		return status
	})
}

// describe lists the ways name resolves, in precedence order.
func (e *Engine) describe(name string, all bool) []string {
	var out []string
	for _, path := range e.search.ResolveAll(name) {
		out = append(out, "is "+path)
	}
	if _, ok := e.functions.Lookup(name); ok {
		out = append(out, "is a function")
	}
	if _, ok := e.builtins.Lookup(name); ok {
		out = append(out, "is a shell builtin")
	}

	if !all && len(out) > 1 {
		out = out[:1]
	}
	return out
}

// Functions prints user function definitions in the syntax def accepts.
func Functions(e *Engine, args []string) int {
	cmd := &SimpleCommand{
		Use:   "functions [NAME]...",
		Short: "Print the definitions of user functions.",
	}

	return cmd.Run(e, args, func(names []string) int {
		if len(names) == 0 {
			names = e.functions.Names()
		}

		status := 0
		for _, name := range names {
			body, ok := e.functions.Lookup(name)
			if !ok {
				fmt.Fprintf(e.Stderr, "%s: %s: not defined\n", args[0], name)
				status = 1
				continue
			}

			fmt.Fprintf(e.Stdout, "def %s {\n", name)
			for _, c := range body {
				fmt.Fprintln(e.Stdout, c.String())
			}
			fmt.Fprintln(e.Stdout, "}")
		}
		return status
	})
}

// Help lists the builtins.
func Help(e *Engine, args []string) int {
	cmd := &SimpleCommand{
		Use:   "help",
		Short: "List the shell builtins.",
	}

	return cmd.Run(e, args, func([]string) int {
		w := e.Stdout
		fmt.Fprintln(w, "These shell commands are defined internally.")
		fmt.Fprintln(w, "Programs on the search path take precedence over functions, which take")
		fmt.Fprintln(w, "precedence over builtins.")
		fmt.Fprintln(w)

		tw := tabwriter.NewWriter(w, 8, 8, 2, ' ', 0)
		for _, name := range e.builtins.Names() {
			b, _ := e.builtins.Lookup(name)
			fmt.Fprintf(tw, "  %s\t%s\n", b.Usage, b.Short)
		}
		tw.Flush()

		return 0
	})
}
