package equation

// DerivativeHolder collects the Derivatives required by every registered
// EquationTerm, deduplicating by Key so that two equations sharing a term
// (e.g. two that both need velocity divergence) only pay for it once
// (spec.md §3.4).
type DerivativeHolder struct {
	order []string
	byKey map[string]Derivative
}

func NewDerivativeHolder() *DerivativeHolder {
	return &DerivativeHolder{byKey: map[string]Derivative{}}
}

// Require registers d, returning the instance actually in effect: if a
// Derivative with the same Key was already registered, the existing
// instance is returned unchanged (idempotent registration); otherwise d
// itself is stored and returned.
func (h *DerivativeHolder) Require(d Derivative) Derivative {
	if existing, ok := h.byKey[d.Key()]; ok {
		return existing
	}
	h.byKey[d.Key()] = d
	h.order = append(h.order, d.Key())
	return d
}

// All returns the registered Derivatives in registration order (the order
// EquationTerm.create calls happened to run in; spec.md §9 notes this
// order is irrelevant to the result since accumulators commute under
// "+=", but a stable order keeps runs reproducible).
func (h *DerivativeHolder) All() []Derivative {
	ds := make([]Derivative, len(h.order))
	for i, k := range h.order {
		ds[i] = h.byKey[k]
	}
	return ds
}

// Len reports how many distinct derivatives are registered.
func (h *DerivativeHolder) Len() int { return len(h.order) }
