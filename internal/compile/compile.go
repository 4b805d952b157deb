// Package compile orchestrates one end-to-end run of the pipeline: lex,
// parse, register every function signature, then lower and solve each
// body, and emit the typed IR. Grounded on py-declare's own top-level
// "elaborate every function, then solve" driver (mir.rs's entry point)
// plus the teacher pack's general shape for a multi-stage batch job
// (dekarrin-tunaq's engine.go runs a fixed phase sequence over a whole
// game-world load the same way this runs a fixed phase sequence over a
// whole file).
package compile

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/config"
	"github.com/pin1yin1/pin1c/internal/defs"
	"github.com/pin1yin1/pin1c/internal/diag"
	"github.com/pin1yin1/pin1c/internal/ir"
	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/pin1yin1/pin1c/internal/mir"
	"github.com/pin1yin1/pin1c/internal/parser"
	"github.com/pin1yin1/pin1c/internal/source"
)

// Result is the outcome of one compile Run.
type Result struct {
	RunID       uuid.UUID
	Items       []ir.Item
	Diagnostics *diag.Batch
}

// OK reports whether the run produced no error-severity diagnostic.
func (r *Result) OK() bool { return !r.Diagnostics.HasErrors() }

// Run lexes, parses, and lowers src (from the named file) into typed IR
// per opts. On a parse failure the run stops there with a single
// diagnostic. Past that point every function is attempted independently:
// a function whose signature or body fails to resolve contributes its
// diagnostics, and every sibling function is still attempted so that all
// diagnostics are collected. If any error-severity diagnostic was
// collected, Items is left empty: the IR of functions that did solve is
// discarded too. RunID is the Diagnostics batch's own ID.
func Run(filename, src string, opts config.PipelineOptions) *Result {
	batch := diag.NewBatch()
	res := &Result{RunID: batch.ID, Diagnostics: batch}

	tokens, buf := lexer.Tokenize(filename, src)
	loc := source.NewLocator(buf)

	fileRes := parser.ParseFile(tokens)
	if fileRes.Kind != parser.Ok {
		res.Diagnostics.Add(diag.FromParserResult(fileRes.Kind, fileRes.Message, fileRes.Span, filename, loc))
		return res
	}
	file := fileRes.Value

	// Pass 1: resolve and register every signature, in declaration order,
	// before lowering any body — so a function may call a sibling defined
	// later in the file, or itself, per spec.md's forward-reference rule.
	overloads := defs.NewOverloads()
	sigs := make([]defs.FnSig, len(file.Fns))
	sigOK := make([]bool, len(file.Fns))
	for i, fn := range file.Fns {
		sig, errs := mir.ResolveSignature(fn)
		sigs[i] = sig
		for _, err := range errs {
			res.Diagnostics.Add(diag.FromMIRError(err))
		}
		if len(errs) > 0 {
			continue
		}
		if err := overloads.Register(sig); err != nil {
			res.Diagnostics.Add(diag.FromMIRError(err))
			continue
		}
		sigOK[i] = true
	}

	// Pass 2: lower and solve each body. Every signature is already
	// visible in overloads, so this pass is safe to run concurrently —
	// each function builds its own declare.Graph and only reads the
	// shared, by-now-frozen overload table.
	type outcome struct {
		span  lexer.Span
		item  *ir.Item
		diags []diag.Diagnostic
	}

	outcomes := make([]outcome, len(file.Fns))
	elaborate := func(i int) {
		fn := file.Fns[i]
		if !sigOK[i] {
			return
		}
		item, diags := elaborateBody(fn, sigs[i], overloads, filename, loc)
		outcomes[i] = outcome{span: fn.Span(), item: item, diags: diags}
	}

	if opts.Parallel {
		var wg sync.WaitGroup
		for i := range file.Fns {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				elaborate(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range file.Fns {
			elaborate(i)
		}
	}

	sort.SliceStable(outcomes, func(a, b int) bool {
		return outcomes[a].span.Start < outcomes[b].span.Start
	})

	for _, o := range outcomes {
		for _, d := range o.diags {
			res.Diagnostics.Add(d)
		}
		if o.item != nil {
			res.Items = append(res.Items, *o.item)
		}
	}
	if res.Diagnostics.HasErrors() {
		res.Items = nil
	}

	return res
}

// elaborateBody lowers and solves one function body, converting every
// failure into a located Diagnostic. Returns a nil *ir.Item when the
// function could not be fully solved.
func elaborateBody(fn *ast.FnDefine, sig defs.FnSig, overloads *defs.Overloads, filename string, loc *source.Locator) (*ir.Item, []diag.Diagnostic) {
	var diags []diag.Diagnostic

	f, declErrs, errs := mir.LowerBody(fn, sig, overloads)
	for _, err := range errs {
		diags = append(diags, diag.FromMIRError(err))
	}
	for _, declErr := range declErrs {
		diags = append(diags, diag.FromDeclareError(declErr, f.GroupSpans, filename, loc))
	}
	if len(diags) > 0 {
		return nil, diags
	}

	item, err := f.ToIR()
	if err != nil {
		diags = append(diags, diag.FromMIRError(err))
		return nil, diags
	}
	return &item, nil
}
