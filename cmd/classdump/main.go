package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/classfile-runtime/classfile"
)

func main() {
	var (
		classPath   = flag.String("class", "", "Path to .class file")
		disassemble = flag.Bool("c", false, "Disassemble method bytecode")
		showPool    = flag.Bool("pool", false, "Dump the constant pool")
		verbose     = flag.Bool("v", false, "Verbose decode logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *classPath == "" && flag.NArg() > 0 {
		*classPath = flag.Arg(0)
	}
	if *classPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: classdump -class <file.class> [-c] [-pool]")
		fmt.Fprintln(os.Stderr, "       classdump -class <file.class> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		classfile.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*classPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := dump(*classPath, *disassemble, *showPool); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	descStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// plainStyles strips the colors when stdout is not a terminal so the
// output pipes cleanly.
func plainStyles() {
	headingStyle = lipgloss.NewStyle()
	nameStyle = lipgloss.NewStyle()
	descStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
}

func dump(path string, disassemble, showPool bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		plainStyles()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	cf, err := classfile.Parse(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	fmt.Printf("%s %s\n", headingStyle.Render("class"), nameStyle.Render(cf.ThisClass.Name.Value))
	if cf.SuperClass.Index != 0 {
		fmt.Printf("  extends %s\n", cf.SuperClass.Name.Value)
	}
	for _, iface := range cf.Interfaces {
		fmt.Printf("  implements %s\n", iface.Name.Value)
	}
	fmt.Printf("  version %d.%d%s\n", cf.Major, cf.Minor, javaRelease(cf.Major))
	fmt.Printf("  flags 0x%04X\n", cf.AccessFlags)
	fmt.Printf("  pool %d slots\n", cf.Pool.Len())

	if showPool {
		fmt.Printf("\n%s\n", headingStyle.Render("Constant pool:"))
		for i := 1; i <= cf.Pool.Len(); i++ {
			e, err := cf.Pool.EntryAt(uint16(i))
			if err != nil {
				return err
			}
			if e.Tag() == classfile.TagUnusable {
				continue
			}
			fmt.Printf("  %s %s\n",
				dimStyle.Render(fmt.Sprintf("#%-4d", i)),
				describeEntry(e))
		}
	}

	if len(cf.Fields) > 0 {
		fmt.Printf("\n%s\n", headingStyle.Render("Fields:"))
		for _, f := range cf.Fields {
			fmt.Printf("  %s %s\n", nameStyle.Render(f.Name.Value), descStyle.Render(f.Descriptor.Value))
		}
	}

	fmt.Printf("\n%s\n", headingStyle.Render("Methods:"))
	for _, m := range cf.Methods {
		fmt.Printf("  %s%s\n", nameStyle.Render(m.Name.Value), descStyle.Render(m.Descriptor.Value))
		code := findCode(m)
		if code == nil {
			continue
		}
		fmt.Printf("    %s\n", dimStyle.Render(fmt.Sprintf("stack=%d locals=%d code=%d bytes",
			code.MaxStack, code.MaxLocals, len(code.Code))))
		if !disassemble {
			continue
		}
		for _, in := range code.Instructions {
			fmt.Printf("    %s %s\n", dimStyle.Render(fmt.Sprintf("%4d:", in.PC)), in.String())
		}
		for _, h := range code.Exceptions {
			fmt.Printf("    %s\n", dimStyle.Render(fmt.Sprintf("try %d..%d -> %d catch %s",
				h.StartPC, h.EndPC, h.HandlerPC, catchName(cf.Pool, h.CatchType))))
		}
	}

	return nil
}

// catchName renders a handler's catch_type for display, falling back
// to the raw index when it does not resolve to a Class entry.
func catchName(pool *classfile.ConstantPool, catchType uint16) string {
	if catchType == 0 {
		return "any"
	}
	if c, err := pool.ClassAt(catchType); err == nil {
		return c.Name.Value
	}
	return fmt.Sprintf("#%d", catchType)
}

func findCode(m classfile.Method) *classfile.CodeAttr {
	for _, a := range m.Attributes {
		if code, ok := a.Attr.(classfile.CodeAttr); ok {
			return &code
		}
	}
	return nil
}

func describeEntry(e classfile.Entry) string {
	switch c := e.(type) {
	case classfile.Utf8Entry:
		return fmt.Sprintf("Utf8 %q", c.Value)
	case classfile.IntegerEntry:
		return fmt.Sprintf("Integer %d", c.Value)
	case classfile.FloatEntry:
		return fmt.Sprintf("Float %g", c.Value)
	case classfile.LongEntry:
		return fmt.Sprintf("Long %d", c.Value)
	case classfile.DoubleEntry:
		return fmt.Sprintf("Double %g", c.Value)
	case classfile.ClassEntry:
		return "Class " + c.Name.Value
	case classfile.StringEntry:
		return fmt.Sprintf("String %q", c.Value.Value)
	case classfile.FieldRefEntry:
		return fmt.Sprintf("FieldRef %s.%s:%s", c.Class.Name.Value, c.NameAndType.Name.Value, c.NameAndType.Descriptor.Value)
	case classfile.MethodRefEntry:
		return fmt.Sprintf("MethodRef %s.%s:%s", c.Class.Name.Value, c.NameAndType.Name.Value, c.NameAndType.Descriptor.Value)
	case classfile.InterfaceMethodRefEntry:
		return fmt.Sprintf("InterfaceMethodRef %s.%s:%s", c.Class.Name.Value, c.NameAndType.Name.Value, c.NameAndType.Descriptor.Value)
	case classfile.NameAndTypeEntry:
		return fmt.Sprintf("NameAndType %s:%s", c.Name.Value, c.Descriptor.Value)
	case classfile.MethodHandleEntry:
		return fmt.Sprintf("MethodHandle %s #%d", c.Kind, c.RefIndex)
	case classfile.MethodTypeEntry:
		return "MethodType " + c.Descriptor.Value
	case classfile.InvokeDynamicEntry:
		return fmt.Sprintf("InvokeDynamic bootstrap=%d %s:%s", c.BootstrapIndex, c.NameAndType.Name.Value, c.NameAndType.Descriptor.Value)
	default:
		return e.Tag().String()
	}
}

// javaRelease maps a class file major version to the Java release that
// produces it.
func javaRelease(major uint16) string {
	if major < 45 {
		return ""
	}
	var release string
	switch {
	case major <= 48:
		release = fmt.Sprintf("1.%d", major-44)
	default:
		release = fmt.Sprintf("%d", major-44)
	}
	return dimStyle.Render(" (Java " + release + ")")
}
