package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

// briefs backs the plain 'help' listing.
var briefs = []struct {
	name  string
	brief string
}{
	{"assemble", "Assemble a source file"},
	{"disassemble", "Disassemble the output image"},
	{"dump", "Dump output image bytes"},
	{"help", "Display help for a command"},
	{"quit", "Quit the monitor"},
	{"set", "Set a configuration variable"},
	{"symbols", "Display the symbol table"},
	{"xref", "Display cross-reference data"},
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "asm80"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "assemble",
		Brief: "Assemble a source file",
		Description: "Run the cross-assembler on the specified file," +
			" producing a binary .com file and, depending on the" +
			" symfile/listfile/creffile settings, a symbol table," +
			" listing and cross-reference report.",
		Usage: "assemble <filename>",
		Data:  (*Host).cmdAssemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "symbols",
		Brief: "Display the symbol table",
		Description: "Display the symbol table of the most recent" +
			" assembly, one 'AAAA NAME' line per symbol.",
		Usage: "symbols",
		Data:  (*Host).cmdSymbols,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "xref",
		Brief: "Display cross-reference data",
		Description: "Display the cross-reference listing of the most" +
			" recent assembly. Definition lines are prefixed with '#'.",
		Usage: "xref",
		Data:  (*Host).cmdXref,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump output image bytes",
		Description: "Dump the contents of the assembled image starting" +
			" from the specified address. The number of bytes to dump" +
			" may be specified as an option.",
		Usage: "dump [<address>] [<bytes>]",
		Data:  (*Host).cmdDump,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble the output image",
		Description: "Disassemble the assembled image starting from the" +
			" specified address. The number of instructions to" +
			" disassemble may be specified as an option.",
		Usage: "disassemble [<address>] [<count>]",
		Data:  (*Host).cmdDisassemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. Type the" +
			" set command without a variable name or value to display" +
			" the current values of all configuration variables.",
		Usage: "set <var> <value>",
		Data:  (*Host).cmdSet,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the monitor",
		Description: "Quit the monitor.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})
	cmds = root
}
