package core

// Share is an item together with its fraction of the document total.
type Share struct {
	Item
	Fraction float64
}

// Total sums every budget in the document.
func (d Document) Total() float64 {
	var total float64
	for _, it := range d.Items {
		total += it.Budget
	}
	return total
}

// Shares returns each item's fraction of the total, in document order.
// Fractions are zero when the total is not positive.
func (d Document) Shares() []Share {
	total := d.Total()
	out := make([]Share, len(d.Items))
	for i, it := range d.Items {
		out[i] = Share{Item: it}
		if total > 0 {
			out[i].Fraction = it.Budget / total
		}
	}
	return out
}
