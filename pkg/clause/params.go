package clause

import "strconv"

// Params accumulates positional parameter values and hands out $n
// placeholders in the Postgres numbering convention. Threading one builder
// through successive clause builders keeps placeholder numbering and the
// value slice aligned without manual offset bookkeeping.
type Params struct {
	values []any
	offset int
}

// NewParams returns a builder whose first placeholder is $1.
func NewParams() *Params {
	return &Params{}
}

// ParamsAt returns a builder that continues an existing positional sequence:
// the first placeholder it hands out is $(offset+1). Values() holds only the
// values added to this builder.
func ParamsAt(offset int) *Params {
	return &Params{offset: offset}
}

// Next records a value and returns its placeholder, e.g. "$3".
func (p *Params) Next(v any) string {
	p.values = append(p.values, v)
	return "$" + strconv.Itoa(p.offset+len(p.values))
}

// Values returns the accumulated parameter values in placeholder order.
func (p *Params) Values() []any {
	return p.values
}

// Offset returns the index of the last placeholder handed out, i.e. the
// offset a continuation builder should start from.
func (p *Params) Offset() int {
	return p.offset + len(p.values)
}

// CombineParams flattens parameter slices in call order, skipping nil
// slices. The relative order must match the positional placeholders of the
// clauses being combined, which holds when the slices come from builders
// threaded in the same order.
func CombineParams(lists ...[]any) []any {
	combined := make([]any, 0)
	for _, list := range lists {
		if list == nil {
			continue
		}
		combined = append(combined, list...)
	}
	return combined
}
