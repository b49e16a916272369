package imaging

import "slices"

// CombinatorialVariants enumerates every admissible ordering of one
// threshold, one or two contrast and upscale steps, and at most one blur.
//
// A variant is admissible when:
//   - no step follows itself
//   - it does not start with a threshold or a blur
//   - at most one step is used twice
//
// The order is deterministic: multisets in (EC, US, BL) count order, each
// permuted in lexicographic position order, first occurrence kept.
func CombinatorialVariants() []Variant {
	var out []Variant
	seen := make(map[string]bool)

	for ec := 1; ec <= 2; ec++ {
		for us := 1; us <= 2; us++ {
			if ec == 2 && us == 2 {
				continue
			}
			for bl := 0; bl <= 1; bl++ {
				pool := make(Variant, 0, ec+us+bl+1)
				pool = appendN(pool, StepEnhanceContrast, ec)
				pool = appendN(pool, StepUpscale, us)
				pool = appendN(pool, StepBlur, bl)
				pool = append(pool, StepThreshold)

				permute(pool, func(v Variant) {
					if !admissible(v) {
						return
					}
					key := v.String()
					if seen[key] {
						return
					}
					seen[key] = true
					out = append(out, slices.Clone(v))
				})
			}
		}
	}
	return out
}

func appendN(v Variant, s Step, n int) Variant {
	for i := 0; i < n; i++ {
		v = append(v, s)
	}
	return v
}

func admissible(v Variant) bool {
	if len(v) == 0 || v[0] == StepThreshold || v[0] == StepBlur {
		return false
	}
	for i := 1; i < len(v); i++ {
		if v[i] == v[i-1] {
			return false
		}
	}
	return true
}

// permute calls fn with every ordering of pool's positions in lexicographic
// index order. The slice passed to fn is reused between calls.
func permute(pool Variant, fn func(Variant)) {
	used := make([]bool, len(pool))
	cur := make(Variant, 0, len(pool))

	var rec func()
	rec = func() {
		if len(cur) == len(pool) {
			fn(cur)
			return
		}
		for i, s := range pool {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, s)
			rec()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	rec()
}
