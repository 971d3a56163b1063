package llvm

import (
	"fmt"
	"strings"

	"github.com/maciek-pioro/compiler/internal/types"
)

type formatConst struct {
	name string
	text string
}

// Format strings shared by printf and scanf calls.
var formatConsts = []formatConst{
	{"fmt.int", "%d"},
	{"fmt.hex", "%X"},
	{"fmt.double", "%f"},
	{"fmt.string", "%s"},
	{"scan.int", "%d"},
	{"scan.hex", "%X"},
	{"scan.double", "%lf"},
	{"msg.true", "True"},
	{"msg.false", "False"},
}

var scratchTypes = []types.Type{types.Integer, types.Double, types.Boolean}

func scratchSlot(t types.Type) string {
	return "%scratch." + t.LLVM()
}

func (e *Emitter) emitFormats() {
	for _, f := range formatConsts {
		e.emitBytesConst(f.name, append([]byte(f.text), 0))
	}
	e.buf.WriteString("\n")
}

func (e *Emitter) emitStringConsts() {
	if len(e.plan.Strings) == 0 {
		return
	}
	for _, sc := range e.plan.Strings {
		e.emitBytesConst(sc.Symbol, sc.Bytes)
	}
	e.buf.WriteString("\n")
}

func (e *Emitter) emitBytesConst(name string, data []byte) {
	fmt.Fprintf(&e.buf, "@%s = private unnamed_addr constant [%d x i8] %s\n", name, len(data), formatLLVMBytes(data))
}

func (e *Emitter) emitRuntimeDecls() {
	e.buf.WriteString("declare i32 @printf(ptr, ...)\n")
	e.buf.WriteString("declare i32 @scanf(ptr, ...)\n\n")
}

// formatLLVMBytes renders data as a c"..." initializer. Printable ASCII is
// kept as is, everything else becomes \XX.
func formatLLVMBytes(data []byte) string {
	var sb strings.Builder
	sb.WriteString("c\"")
	for _, b := range data {
		if b >= 0x20 && b < 0x7F && b != '"' && b != '\\' {
			sb.WriteByte(b)
			continue
		}
		fmt.Fprintf(&sb, "\\%02X", b)
	}
	sb.WriteString("\"")
	return sb.String()
}
