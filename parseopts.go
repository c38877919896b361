package phc

// DefaultMaxDepth is the default limit on the nesting depth of parsed
// expressions and on the depth of evaluated trees.
const DefaultMaxDepth = 10000

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	pdepthopt int
	pobsopt   struct {
		obs Observer
	}
)

// parsectx holds general data for parsing.
type parsectx struct {
	// maxdepth is the maximum nesting depth of subexpressions.
	maxdepth int
	// obs receives the outcome of the parse.
	obs Observer
}

// ParseDepth limits the nesting depth of parsed expressions. Each bracketed
// group, unary operator, and operand of a binary operator of higher
// precedence adds a level. Parsing an expression nested more deeply fails
// with a *DepthError. Values less than 1 select DefaultMaxDepth.
func ParseDepth(n int) ParseOption {
	return pdepthopt(n)
}

func (o pdepthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	if p.maxdepth < 1 {
		p.maxdepth = DefaultMaxDepth
	}
	return p
}

// ObserveParse reports the outcome of parsing to obs. A nil obs disables
// reporting.
func ObserveParse(obs Observer) ParseOption {
	return pobsopt{obs}
}

func (o pobsopt) parseOption(p parsectx) parsectx {
	p.obs = o.obs
	if p.obs == nil {
		p.obs = nopObserver{}
	}
	return p
}
