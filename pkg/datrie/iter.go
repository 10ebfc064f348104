package datrie

import "iter"

// IterCommonPrefixes returns the common-prefix matches of query as a
// sequence usable with range-over-func.
func (da *DoubleArray[L]) IterCommonPrefixes(query []L) iter.Seq[PrefixMatch] {
	return commonPrefixSeq(da.CommonPrefixSearch(query))
}

// IterPredictive returns the predictive-search matches of prefix as a
// sequence usable with range-over-func.
func (da *DoubleArray[L]) IterPredictive(prefix []L) iter.Seq[SearchMatch[L]] {
	return predictiveSeq(da.PredictiveSearch(prefix))
}

// IterCommonPrefixes returns the common-prefix matches of query as a
// sequence usable with range-over-func.
func (r *DoubleArrayRef[L]) IterCommonPrefixes(query []L) iter.Seq[PrefixMatch] {
	return commonPrefixSeq(r.CommonPrefixSearch(query))
}

// IterPredictive returns the predictive-search matches of prefix as a
// sequence usable with range-over-func.
func (r *DoubleArrayRef[L]) IterPredictive(prefix []L) iter.Seq[SearchMatch[L]] {
	return predictiveSeq(r.PredictiveSearch(prefix))
}

func commonPrefixSeq[L Label](it *CommonPrefixIter[L]) iter.Seq[PrefixMatch] {
	return func(yield func(PrefixMatch) bool) {
		for m, ok := it.Next(); ok; m, ok = it.Next() {
			if !yield(m) {
				return
			}
		}
	}
}

func predictiveSeq[L Label](it *PredictiveIter[L]) iter.Seq[SearchMatch[L]] {
	return func(yield func(SearchMatch[L]) bool) {
		for m, ok := it.Next(); ok; m, ok = it.Next() {
			if !yield(m) {
				return
			}
		}
	}
}
