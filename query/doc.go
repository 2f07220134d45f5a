// Package query combines up to MaxTerms component types into a search
// over a store's entities.
//
//	q, err := query.New(posID, velID)
//	q.Each(st, func(r query.Row) bool {
//	    pos, vel := r.Records[0], r.Records[1]
//	    ...
//	    return true
//	})
//
// The limit is fixed: a query with more terms fails at construction with
// an unsupported arity error.
package query
