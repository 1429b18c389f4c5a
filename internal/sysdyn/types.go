package sysdyn

import "math"

// State holds stock values in model registration order.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total quantity held in s.
func (s State) Sum() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

// Observer is notified after every committed step.
type Observer interface {
	OnStep(t float64, values State)
}

// RunObserver is an Observer that also wants the run boundaries.
type RunObserver interface {
	Observer
	OnStart(t float64, values State)
	OnFinish(t float64, values State)
}

// Trajectory is the recorded history of a run.
type Trajectory struct {
	Names  []string
	Times  []float64
	States []State
}

// Final returns the last recorded state, or nil for an empty trajectory.
func (tr *Trajectory) Final() State {
	if len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1]
}

// Series returns the values of the i-th stock across the run.
func (tr *Trajectory) Series(i int) []float64 {
	out := make([]float64, len(tr.States))
	for k, s := range tr.States {
		if i < len(s) {
			out[k] = s[i]
		}
	}
	return out
}

// Recorder captures a Trajectory including the initial state.
type Recorder struct {
	names []string
	traj  Trajectory
}

// NewRecorder returns a recorder labelling columns with the given stock names.
func NewRecorder(names []string) *Recorder {
	return &Recorder{names: names}
}

func (r *Recorder) OnStart(t float64, values State) {
	r.traj = Trajectory{Names: r.names}
	r.OnStep(t, values)
}

func (r *Recorder) OnStep(t float64, values State) {
	r.traj.Times = append(r.traj.Times, t)
	r.traj.States = append(r.traj.States, values.Clone())
}

func (r *Recorder) OnFinish(t float64, values State) {}

func (r *Recorder) Trajectory() *Trajectory {
	return &r.traj
}
