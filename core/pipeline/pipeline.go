// Package pipeline recognizes redirection and pipe operators inside a
// tokenized command and partitions the command into stages.
package pipeline

// Op identifies the redirection or pipe operator recognized in a command.
type Op int

const (
	// OpNone means the command contains no operator.
	OpNone Op = iota
	// OpAppend is the ">>" operator.
	OpAppend
	// OpOverwrite is the ">" operator.
	OpOverwrite
	// OpPipe is the "|" operator.
	OpPipe
)

const (
	appendToken    = ">>"
	overwriteToken = ">"
	pipeToken      = "|"
)

func (op Op) String() string {
	switch op {
	case OpAppend:
		return appendToken
	case OpOverwrite:
		return overwriteToken
	case OpPipe:
		return pipeToken
	default:
		return ""
	}
}

func classifyToken(tok string) Op {
	// Append is matched before overwrite so ">" can never shadow ">>".
	switch tok {
	case appendToken:
		return OpAppend
	case overwriteToken:
		return OpOverwrite
	case pipeToken:
		return OpPipe
	default:
		return OpNone
	}
}

// Classify scans argv left to right and reports the first operator token
// present, or OpNone. It has no side effects.
func Classify(argv []string) Op {
	for _, tok := range argv {
		if op := classifyToken(tok); op != OpNone {
			return op
		}
	}
	return OpNone
}

// Pipeline is the transient head/tail view of a command around its first
// operator token. The operator lands on neither side; head, the operator
// and tail reconstruct the original vector in order.
type Pipeline struct {
	Head []string
	Tail []string
}

// Split partitions argv around the first operator token. Split must only
// be called after Classify reported an operator; the tail may itself
// contain a further operator.
func Split(argv []string) Pipeline {
	for i, tok := range argv {
		if classifyToken(tok) != OpNone {
			return Pipeline{Head: argv[:i:i], Tail: argv[i+1:]}
		}
	}
	return Pipeline{Head: argv}
}

// Stage is one program invocation plus the operator that follows it.
// The last stage of a command carries OpNone.
type Stage struct {
	Argv []string
	Op   Op
}

// Parse runs a single pass over argv producing the flat ordered list of
// stages, so chained operators never require re-scanning a tail.
func Parse(argv []string) []Stage {
	var stages []Stage
	rest := argv
	for {
		op := Classify(rest)
		if op == OpNone {
			return append(stages, Stage{Argv: rest})
		}
		p := Split(rest)
		stages = append(stages, Stage{Argv: p.Head, Op: op})
		rest = p.Tail
	}
}
