package analyzer

// Paradigm is the dominant programming style.
type Paradigm string

const (
	ParadigmObjectOriented Paradigm = "object-oriented"
	ParadigmFunctional     Paradigm = "functional"
	ParadigmProcedural     Paradigm = "procedural"
	ParadigmMixed          Paradigm = "mixed"
)

// ParadigmReport is the paradigm decision plus recognized patterns.
type ParadigmReport struct {
	Primary     Paradigm `json:"primary"`
	Patterns    []string `json:"patterns"`
	Description string   `json:"description"`
}

var paradigmDescriptions = map[Paradigm]string{
	ParadigmObjectOriented: "The codebase leans on classes, dependency injection and ORM entities to structure its logic.",
	ParadigmFunctional:     "The codebase favors pure functions, immutable data and composition over class hierarchies.",
	ParadigmProcedural:     "No strong paradigm signals were found; the code appears to be organized as straightforward procedures and scripts.",
	ParadigmMixed:          "The codebase combines object-oriented and functional techniques without a clear dominant style.",
}

// paradigmSignal adds weight to one or both counters when any of its
// dependency or path keywords is present, or hookFiles is set and the tree
// has a hook module.
type paradigmSignal struct {
	deps       []string
	paths      []string
	hookFiles  bool
	oop        int
	functional int
	patterns   []string
}

var paradigmSignals = []paradigmSignal{
	{deps: []string{"typeorm", "sequelize", "mongoose", "mikro-orm", "objection", "gorm", "sqlalchemy"}, oop: 2},
	{deps: []string{"@nestjs/core", "inversify", "tsyringe", "typedi", "@angular/core"}, oop: 3,
		patterns: []string{"Dependency Injection", "Decorator"}},
	{deps: []string{"class-validator", "class-transformer"}, oop: 1, patterns: []string{"Decorator"}},
	{paths: []string{"classes/", "entities/"}, oop: 1},
	{deps: []string{"rxjs", "xstream", "most", "baconjs"}, functional: 2, patterns: []string{"Reactive Streams"}},
	{deps: []string{"ramda", "fp-ts", "lodash/fp", "immutable", "immer"}, functional: 2, patterns: []string{"Immutability"}},
	{paths: []string{"hooks/"}, hookFiles: true, functional: 1, patterns: []string{"Hooks"}},
	{deps: []string{"redux", "zustand", "@reduxjs/toolkit"}, functional: 1, patterns: []string{"Unidirectional Data Flow"}},
}

// commonPatterns are reported whenever their path signal is present,
// independent of the paradigm decision.
var commonPatterns = []Rule[string]{
	{Result: "Middleware", Keywords: []string{"middleware"}},
	{Result: "Observer/Event-Driven", Keywords: []string{"event", "listener", "subscriber", "emitter"}},
	{Result: "Repository", Keywords: []string{"repositor"}},
	{Result: "Service Layer", Keywords: []string{"service"}},
	{Result: "DTO", Keywords: []string{"dto"}},
	{Result: "Adapter", Keywords: []string{"adapter"}},
	{Result: "Strategy", Keywords: []string{"strateg"}},
	{Result: "Composite", Keywords: []string{"components/"}},
}

// ClassifyParadigm scores the paradigm counters and collects patterns.
func ClassifyParadigm(deps *Dependencies, ix *Index) ParadigmReport {
	var oop, functional int
	patterns := newOrderedSet()

	for _, sig := range paradigmSignals {
		if !sig.matches(deps, ix) {
			continue
		}
		oop += sig.oop
		functional += sig.functional
		patterns.AddAll(sig.patterns...)
	}
	patterns.AddAll(AllMatches(commonPatterns, ix.Paths)...)

	primary := DecideParadigm(oop, functional)
	return ParadigmReport{
		Primary:     primary,
		Patterns:    patterns.Items(),
		Description: paradigmDescriptions[primary],
	}
}

func (sig paradigmSignal) matches(deps *Dependencies, ix *Index) bool {
	if sig.hookFiles && ix.HasHookFile() {
		return true
	}
	return AnyContains(deps.Lower(), sig.deps) || AnyContains(ix.Paths, sig.paths)
}

// DecideParadigm applies the counter decision rule. A side must lead by more
// than two points to dominate.
func DecideParadigm(oop, functional int) Paradigm {
	switch {
	case oop > functional+2:
		return ParadigmObjectOriented
	case functional > oop+2:
		return ParadigmFunctional
	case oop == 0 && functional == 0:
		return ParadigmProcedural
	default:
		return ParadigmMixed
	}
}
