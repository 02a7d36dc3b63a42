package component

// AnimParamWalking is the animator flag raised while the agent moves.
const AnimParamWalking = "IsWalking"

// AnimatorParams is a bag of named boolean animation parameters, set by
// gameplay code and read by whatever draws the entity.
type AnimatorParams struct {
	bools map[string]bool
}

func NewAnimatorParams() *AnimatorParams {
	return &AnimatorParams{bools: map[string]bool{}}
}

func (a *AnimatorParams) SetBool(name string, value bool) {
	if a == nil {
		return
	}
	if a.bools == nil {
		a.bools = map[string]bool{}
	}
	a.bools[name] = value
}

func (a *AnimatorParams) Bool(name string) bool {
	if a == nil {
		return false
	}
	return a.bools[name]
}
