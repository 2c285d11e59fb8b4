package motionplan

import "encoding/json"

// Strategy name constants selected at planner construction (spec §4.4).
// Switching any of these after construction requires Clear()-ing the
// level, matching the teacher's tagged-variant-by-name convention.
const (
	MetricGeodesic     = "geodesic"
	MetricShortestPath = "shortestpath"

	ImportanceUniform     = "uniform"
	ImportanceGreedy      = "greedy"
	ImportanceExponential = "exponential"

	GraphSamplerRandomVertex = "randomVertex"
	GraphSamplerRandomEdge   = "randomEdge"

	PropagatorGeometric = "geometric"
	PropagatorDynamic   = "dynamic"
)

// default tunables (spec §6).
const (
	defaultRange               = 1.0
	defaultGoalBias            = 0.05
	defaultUseKNearest         = true
	defaultSparseDeltaFraction = 0.15
	defaultDenseDeltaFraction  = 0.05
	defaultPathBiasFraction    = 0.05
	defaultStretchFactor       = 3.0
	defaultNhead               = 5
	defaultComputeK            = 7
)

// PlannerOptions are the tunables of spec §6, shared across QRRT/QRRT*/
// QMP/SQMP. Per-planner option structs embed this and add their own
// fields, mirroring plannerOptions/rrtStarConnectOptions in the teacher.
type PlannerOptions struct {
	// Range is the max step distance (maxDistance) of a single extension.
	Range float64 `json:"range"`
	// GoalBias is the probability of sampling the goal directly.
	GoalBias float64 `json:"goal_bias"`
	// UseKNearest selects the k-nearest-neighbor variant of QRRT*'s
	// neighbor-set computation over the radius variant.
	UseKNearest bool `json:"use_k_nearest"`
	// MetricName selects the C5 metric strategy.
	MetricName string `json:"metric"`
	// ImportanceName selects the C5 importance strategy.
	ImportanceName string `json:"importance"`
	// GraphSamplerName selects the C5 quotient-sampling strategy.
	GraphSamplerName string `json:"graph_sampler"`
	// PropagatorName selects the C5 propagator strategy.
	PropagatorName string `json:"propagator"`
	// PathBiasFraction, times the fiber space's maximum extent, is the
	// radius within which SampleFromPathStack perturbs its fiber sample
	// (spec §4.8). The base part of such a sample is a vertex of the
	// chosen path, not a point at a random arc length along it, and is
	// not perturbed.
	PathBiasFraction float64 `json:"path_bias_fraction"`
	// EnablePathRestriction toggles the C10 fast-check.
	EnablePathRestriction bool `json:"enable_path_restriction"`

	extra map[string]interface{}
}

// NewDefaultPlannerOptions returns the spec §6 defaults.
func NewDefaultPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		Range:                 defaultRange,
		GoalBias:              defaultGoalBias,
		UseKNearest:           defaultUseKNearest,
		MetricName:            MetricGeodesic,
		ImportanceName:        ImportanceUniform,
		GraphSamplerName:      GraphSamplerRandomVertex,
		PropagatorName:        PropagatorGeometric,
		PathBiasFraction:      defaultPathBiasFraction,
		EnablePathRestriction: true,
	}
}

// WithExtra attaches an arbitrary key-value overlay that is merged onto
// the options by mergeExtra, following the teacher's json-remarshal
// pattern in rrtStarConnectOptions/newRRTStarConnectOptions.
func (o *PlannerOptions) WithExtra(extra map[string]interface{}) *PlannerOptions {
	o.extra = extra
	return o
}

// mergeExtra marshals target to JSON, merges o.extra as an overlay, and
// unmarshals back into target, letting callers override individual
// tunables by name without a bespoke setter for every field.
func mergeExtra(target interface{}, extra map[string]interface{}) error {
	if len(extra) == 0 {
		return nil
	}
	base, err := json.Marshal(target)
	if err != nil {
		return WrapConfigurationError(err, "marshaling base options")
	}
	var baseMap map[string]interface{}
	if err := json.Unmarshal(base, &baseMap); err != nil {
		return WrapConfigurationError(err, "unmarshaling base options")
	}
	for k, v := range extra {
		baseMap[k] = v
	}
	merged, err := json.Marshal(baseMap)
	if err != nil {
		return WrapConfigurationError(err, "marshaling merged options")
	}
	if err := json.Unmarshal(merged, target); err != nil {
		return WrapConfigurationError(err, "unmarshaling merged options into target")
	}
	return nil
}

// SQMPOptions augments PlannerOptions with the SPARS sparsifier tunables
// (spec §4.5.3/§4.6).
type SQMPOptions struct {
	*PlannerOptions
	SparseDeltaFraction float64 `json:"sparse_delta_fraction"`
	DenseDeltaFraction  float64 `json:"dense_delta_fraction"`
	StretchFactor       float64 `json:"stretch_factor"`
}

// NewDefaultSQMPOptions layers the spec §4.6 sparsifier defaults on top of
// planOpts (the spec §6 shared tunables), then merges planOpts.extra over
// the result, mirroring the teacher's newRRTStarConnectOptions. planOpts
// may be nil to use NewDefaultPlannerOptions().
func NewDefaultSQMPOptions(planOpts *PlannerOptions) (*SQMPOptions, error) {
	if planOpts == nil {
		planOpts = NewDefaultPlannerOptions()
	}
	algOpts := &SQMPOptions{
		PlannerOptions:      planOpts,
		SparseDeltaFraction: defaultSparseDeltaFraction,
		DenseDeltaFraction:  defaultDenseDeltaFraction,
		StretchFactor:       defaultStretchFactor,
	}
	if err := mergeExtra(algOpts, planOpts.extra); err != nil {
		return nil, err
	}
	return algOpts, nil
}

// QMPOptions augments PlannerOptions with the dense roadmap connection
// count; computeK is authoritative per spec §9's resolution of the
// QMP k=7-vs-computeK open question. ComputeK is excluded from the
// extra-merge JSON round trip since a func value isn't marshalable.
type QMPOptions struct {
	*PlannerOptions
	ComputeK func(numVertices int) int `json:"-"`
}

// NewDefaultQMPOptions layers a constant ComputeK of 7 (the spec §9
// default) on top of planOpts, then merges planOpts.extra over the
// result. planOpts may be nil to use NewDefaultPlannerOptions().
func NewDefaultQMPOptions(planOpts *PlannerOptions) (*QMPOptions, error) {
	if planOpts == nil {
		planOpts = NewDefaultPlannerOptions()
	}
	algOpts := &QMPOptions{
		PlannerOptions: planOpts,
		ComputeK:       func(int) int { return defaultComputeK },
	}
	if err := mergeExtra(algOpts, planOpts.extra); err != nil {
		return nil, err
	}
	return algOpts, nil
}

// SchedulerOptions are the top-level tunables of the Bundle-Space
// Scheduler (spec §4.7/§6).
type SchedulerOptions struct {
	StopAtLevel int `json:"stop_at_level"`
	Nhead       int `json:"n_head"`
}

// NewDefaultSchedulerOptions returns the spec §6 defaults.
func NewDefaultSchedulerOptions(topLevel int) *SchedulerOptions {
	return &SchedulerOptions{StopAtLevel: topLevel, Nhead: defaultNhead}
}
