package ir

import (
	"fmt"
	"strings"
)

// Printer provides pretty-printing for the IR
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new IR printer
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// Print returns the string representation of an IR module
func Print(module *Module) string {
	p := NewPrinter()
	p.printModule(module)
	return p.output.String()
}

// PrintFunction returns the string representation of a single function.
func PrintFunction(fn *Function) string {
	p := NewPrinter()
	p.printFunction(fn)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printModule(module *Module) {
	p.writeLine("MODULE %s (IR)", module.Name)
	p.writeLine("")
	for _, fn := range module.Functions {
		p.printFunction(fn)
		p.writeLine("")
	}
}

func (p *Printer) printFunction(fn *Function) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.String()
	}
	sig := fmt.Sprintf("FUNCTION %s(%s)", fn.Name, strings.Join(params, ", "))
	if fn.Results > 0 {
		sig += fmt.Sprintf(" -> %d", fn.Results)
	}
	p.writeLine("%s", sig)
	p.writeLine("{")
	for _, block := range fn.Blocks {
		p.printBasicBlock(block)
	}
	p.writeLine("}")
}

func (p *Printer) printBasicBlock(block *BasicBlock) {
	if len(block.Preds) > 0 {
		labels := make([]string, len(block.Preds))
		for i, pred := range block.Preds {
			labels[i] = pred.String()
		}
		p.writeLine("%s (%s):  ; preds: %s", block.ID, block.Label, strings.Join(labels, ", "))
	} else {
		p.writeLine("%s (%s):", block.ID, block.Label)
	}

	p.indent++
	for _, instr := range block.Instrs {
		p.writeLine("%s", instr.String())
	}
	if block.Term != nil {
		p.writeLine("%s", block.Term.String())
	}
	p.indent--
}

// String methods for debugging

func (m *Module) String() string   { return Print(m) }
func (f *Function) String() string { return PrintFunction(f) }
