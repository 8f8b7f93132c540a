package routing

import (
	"github.com/lintang-b-s/navigatorx-mld/pkg"
	"github.com/spf13/viper"
)

// AlternativeParams. tunables of the alternative route search.
type AlternativeParams struct {
	// the search keeps going while forwardMin + reverseMin < best weight * OverlapFactor. 1.0 gives a plain
	// shortest path search, larger values explore more candidate via vertices.
	OverlapFactor float64
	// alternatives with weight above MaxStretch * optimal weight are rejected
	MaxStretch float64
	// alternatives sharing more than MaxOverlap of their edges with the primary route are rejected
	MaxOverlap float64
	// number of alternatives returned at most, the primary route not included
	MaxAlternatives int
	// an alternative sharing more than MaxSimilarity of its edges with an already accepted alternative is skipped
	MaxSimilarity float64
}

func DefaultAlternativeParams() AlternativeParams {
	return AlternativeParams{
		OverlapFactor:   pkg.OVERLAP_FACTOR,
		MaxStretch:      pkg.MAX_STRETCH,
		MaxOverlap:      pkg.MAX_OVERLAP,
		MaxAlternatives: pkg.MAX_ALTERNATIVES,
		MaxSimilarity:   pkg.MAX_ALTERNATIVE_SIMILARITY,
	}
}

// AlternativeParamsFromViper. process wide defaults, overridable in config.yaml or the environment.
func AlternativeParamsFromViper() AlternativeParams {
	p := DefaultAlternativeParams()
	if viper.IsSet("OVERLAP_FACTOR") {
		p.OverlapFactor = viper.GetFloat64("OVERLAP_FACTOR")
	}
	if viper.IsSet("MAX_STRETCH") {
		p.MaxStretch = viper.GetFloat64("MAX_STRETCH")
	}
	if viper.IsSet("MAX_OVERLAP") {
		p.MaxOverlap = viper.GetFloat64("MAX_OVERLAP")
	}
	if viper.IsSet("MAX_ALTERNATIVES") {
		p.MaxAlternatives = viper.GetInt("MAX_ALTERNATIVES")
	}
	if viper.IsSet("MAX_ALTERNATIVE_SIMILARITY") {
		p.MaxSimilarity = viper.GetFloat64("MAX_ALTERNATIVE_SIMILARITY")
	}
	return p.normalize()
}

// WithMaxAlternatives. copy of p returning at most k alternatives.
func (p AlternativeParams) WithMaxAlternatives(k int) AlternativeParams {
	p.MaxAlternatives = k
	return p
}

// normalize. an OverlapFactor below 1 would stop before the optimum is proven, so it is raised to 1.
// zero bounds fall back to the defaults, negative counts to zero.
func (p AlternativeParams) normalize() AlternativeParams {
	def := DefaultAlternativeParams()
	if p.OverlapFactor < 1 {
		p.OverlapFactor = 1
	}
	if p.MaxStretch <= 0 {
		p.MaxStretch = def.MaxStretch
	}
	if p.MaxOverlap <= 0 {
		p.MaxOverlap = def.MaxOverlap
	}
	if p.MaxSimilarity <= 0 {
		p.MaxSimilarity = def.MaxSimilarity
	}
	if p.MaxAlternatives < 0 {
		p.MaxAlternatives = 0
	}
	return p
}
