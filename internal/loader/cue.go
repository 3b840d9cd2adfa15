package loader

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/roach88/pageorder/internal/ir"
)

// puzzleSchema constrains CUE input. Unknown top-level fields are rejected
// before unification.
const puzzleSchema = `
#Page: int & >=0

#Puzzle: {
	rules: [...[#Page, #Page]]
	updates: [...[...#Page]]
}
`

type cueDocument struct {
	Rules   [][]int64 `json:"rules"`
	Updates [][]int64 `json:"updates"`
}

// ParseCUE compiles CUE source, unifies it with the puzzle schema and
// decodes the result. filename is used only for error positions.
func ParseCUE(data []byte, filename string) (*ir.Puzzle, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(puzzleSchema, cue.Filename("puzzle_schema.cue")).
		LookupPath(cue.ParsePath("#Puzzle"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling schema: %v", err)}
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(ErrCodeLoadFailed, err)
	}

	fields, err := value.Fields()
	if err != nil {
		return nil, cueLoadError(ErrCodeSchema, err)
	}
	for fields.Next() {
		switch fields.Selector().String() {
		case "rules", "updates":
		default:
			loadErr := &LoadError{
				Code:    ErrCodeSchema,
				Message: fmt.Sprintf("field %q not allowed", fields.Selector().String()),
			}
			if pos := fields.Value().Pos(); pos.IsValid() {
				loadErr.Line = pos.Line()
			}
			return nil, loadErr
		}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(ErrCodeSchema, err)
	}

	var doc cueDocument
	if err := unified.Decode(&doc); err != nil {
		return nil, cueLoadError(ErrCodeSchema, err)
	}

	p := &ir.Puzzle{
		Rules:   make([]ir.Rule, len(doc.Rules)),
		Updates: make([]ir.Update, len(doc.Updates)),
	}
	for i, pair := range doc.Rules {
		p.Rules[i] = ir.Rule{Before: ir.Page(pair[0]), After: ir.Page(pair[1])}
	}
	for i, pages := range doc.Updates {
		u := make(ir.Update, len(pages))
		for j, page := range pages {
			u[j] = ir.Page(page)
		}
		p.Updates[i] = u
	}
	return p, nil
}

// cueLoadError extracts the first error and its position from a CUE error.
func cueLoadError(code string, err error) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	loadErr := &LoadError{Code: code, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		loadErr.Line = positions[0].Line()
	}
	return loadErr
}
