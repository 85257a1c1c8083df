package cmds

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	// aliases are listed with their command
	seen := make(map[*Command]bool)
	var names []string
	for name, command := range commands {
		if command == nil || slices.Contains(command.Aliases, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		command := commands[name]
		if seen[command] {
			continue
		}
		seen[command] = true
		title := name
		if len(command.Aliases) > 0 {
			title += ", " + strings.Join(command.Aliases, ", ")
		}
		if args := command.argNames(); args != "" {
			title += " " + args
		}
		if command.Description != "" {
			fmt.Fprintf(w, "%s%-24s %s\n", indent, title, command.Description)
		} else {
			fmt.Fprintf(w, "%s%s\n", indent, title)
		}
		if len(command.Subs) > 0 {
			writeCommands(w, command.Subs, depth+1)
		}
	}
}

func (c *Command) argNames() string {
	if !c.Func.IsValid() {
		return ""
	}
	var parts []string
	fnType := c.Func.Type()
	for i := range fnType.NumIn() {
		t := fnType.In(i)
		optional := t.Kind() == reflect.Pointer
		if optional {
			t = t.Elem()
		}
		name := t.Kind().String()
		if i < len(c.ArgNames) {
			name = c.ArgNames[i]
		}
		if optional {
			parts = append(parts, "["+name+"]")
		} else {
			parts = append(parts, "<"+name+">")
		}
	}
	return strings.Join(parts, " ")
}
