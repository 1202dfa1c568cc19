package tween

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Job animates one vector property from From to To.
type Job struct {
	From       rl.Vector3
	To         rl.Vector3
	Start      time.Duration
	Duration   time.Duration
	Ease       EaseFunc
	Set        func(rl.Vector3)
	OnComplete func()

	done bool
}

// Sample returns the value at now. Once elapsed reaches Duration the value is
// exactly To, with no interpolation residue.
func (j *Job) Sample(now time.Duration) (rl.Vector3, bool) {
	p := Progress(now-j.Start, j.Duration)
	if p >= 1 {
		return j.To, true
	}
	ease := j.Ease
	if ease == nil {
		ease = CubicOut
	}
	return LerpVec3(j.From, j.To, ease(p)), false
}

// Done reports whether the job has delivered its final value.
func (j *Job) Done() bool {
	return j.done
}

// step applies the sampled value and fires OnComplete the first time the job ends.
func (j *Job) step(now time.Duration) bool {
	if j.done {
		return true
	}
	v, finished := j.Sample(now)
	if j.Set != nil {
		j.Set(v)
	}
	if finished {
		j.done = true
		if j.OnComplete != nil {
			j.OnComplete()
		}
	}
	return finished
}

// Tweener runs at most one Job per property key. Starting a job on a busy key
// replaces the running one; the replaced job never completes.
type Tweener struct {
	jobs  map[string]*Job
	order []string
}

func NewTweener() *Tweener {
	return &Tweener{jobs: make(map[string]*Job)}
}

func (t *Tweener) Start(key string, job *Job) {
	if _, exists := t.jobs[key]; !exists {
		t.order = append(t.order, key)
	}
	t.jobs[key] = job
}

func (t *Tweener) Active(key string) bool {
	j, ok := t.jobs[key]
	return ok && !j.done
}

func (t *Tweener) Cancel(key string) {
	if _, ok := t.jobs[key]; !ok {
		return
	}
	delete(t.jobs, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *Tweener) Len() int {
	return len(t.jobs)
}

// Update advances every job in start order and drops finished ones.
// Completion callbacks may start new jobs; those are first sampled next Update.
func (t *Tweener) Update(now time.Duration) {
	keys := append([]string(nil), t.order...)
	for _, key := range keys {
		job, ok := t.jobs[key]
		if !ok {
			continue
		}
		if job.step(now) && t.jobs[key] == job {
			t.Cancel(key)
		}
	}
}
