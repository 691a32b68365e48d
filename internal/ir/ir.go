package ir

import (
	"github.com/tliron/commonlog"

	"stave/internal/ast"
)

var log = commonlog.GetLogger("stave.ir")

// BuildModule converts every annotated definition in mod to SSA form and
// validates each result. Functions convert independently; a failure in one
// definition never blocks the others, so the caller gets every diagnostic in
// a single run. The returned module holds only the functions that converted
// and validated cleanly.
func BuildModule(mod *ast.Module) (*Module, []error) {
	out := &Module{Name: mod.Name}
	var errs []error

	for _, def := range mod.Defs {
		fn, err := BuildFunction(def)
		if err != nil {
			log.Debugf("conversion of %q failed: %s", def.Name, err)
			errs = append(errs, err)
			continue
		}

		violations := Validate(fn)
		if len(violations) > 0 {
			log.Errorf("converter produced invalid SSA for %q (%d violations)",
				def.Name, len(violations))
			for _, violation := range violations {
				errs = append(errs, violation)
			}
			continue
		}

		log.Debugf("converted %q: %d blocks, %d registers",
			fn.Name, len(fn.Blocks), fn.NumRegisters)
		out.Functions = append(out.Functions, fn)
	}

	return out, errs
}
