// Package rhat computes the split potential scale reduction statistic.
//
// Each chain is cut into two halves and the halves are compared as if they
// were separate chains. Values well above 1 signal chains that have not mixed
// or that drift within a run.
//
//	set, _ := chains.NewKeptSet(draws)
//	r, err := rhat.Compute(set)
//
// Detail also reports the between (B) and within (W) variance components:
//
//	res, err := rhat.Detail(set)
//	fmt.Printf("R-hat=%.3f B=%.3f W=%.3f\n", res.RHat, res.VarBetween, res.VarWithin)
//
// Constant chains have W = 0 and return chains.ErrDegenerateVariance.
package rhat
