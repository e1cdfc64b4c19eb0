package jobctl

// Table is the ordered set of live jobs: newest first, head is "current".
// Mutated only from the single REPL goroutine (spec §5) — no lock needed.
type Table struct {
	jobs  []*Job
	index *indexAllocator
}

func NewTable() *Table {
	return &Table{index: newIndexAllocator()}
}

// Insert assigns j a fresh index and prepends it to the table, making it
// current.
func (t *Table) Insert(j *Job) {
	j.Index = t.index.alloc()
	t.jobs = append([]*Job{j}, t.jobs...)
}

// Jobs returns the live jobs, newest first.
func (t *Table) Jobs() []*Job {
	return t.jobs
}

// Len reports the number of live jobs.
func (t *Table) Len() int {
	return len(t.jobs)
}

// Current returns the most recently inserted job still present in the
// table, i.e. the table head.
func (t *Table) Current() (*Job, error) {
	if len(t.jobs) == 0 {
		return nil, ErrNoSuchJob
	}
	return t.jobs[0], nil
}

// FindByPid returns the Job and Process owning pid, via a linear scan
// across every process of every job (spec §4.3: "Lookup: by pid (linear
// scan across all processes of all jobs)").
func (t *Table) FindByPid(pid int) (*Job, *Process, bool) {
	for _, j := range t.jobs {
		for p := j.First; p != nil; p = p.Next {
			if p.Pid == pid {
				return j, p, true
			}
		}
	}
	return nil, nil, false
}

// MostRecentStopped returns the newest job whose State is JobStopped, for
// the bg built-in.
func (t *Table) MostRecentStopped() (*Job, error) {
	for _, j := range t.jobs {
		if j.State == JobStopped {
			return j, nil
		}
	}
	return nil, ErrNoSuchJob
}

// MostRecentResumable returns the newest job that is either Stopped, or
// Running in the background, for the fg built-in.
func (t *Table) MostRecentResumable() (*Job, error) {
	for _, j := range t.jobs {
		if j.State == JobStopped || (j.State == JobRunning && !j.Foreground) {
			return j, nil
		}
	}
	return nil, ErrNoSuchJob
}

// Remove drops j from the table unconditionally, regardless of its State,
// and releases its index. Used when a Job never actually launched (e.g. a
// pipe(2) failure before any fork): such a job has no business lingering in
// the table until it happens to reach Done/Error on its own, since it never
// ran at all.
func (t *Table) Remove(j *Job) {
	for i, cand := range t.jobs {
		if cand == j {
			t.jobs = append(t.jobs[:i], t.jobs[i+1:]...)
			t.index.release(j.Index)
			return
		}
	}
}

// Prune drops every job whose state is Done or Error, preserving the order
// of survivors, and returns the dropped jobs (for display/cleanup by the
// caller). Idempotent: running it twice with no state changes is a no-op.
func (t *Table) Prune() []*Job {
	survivors := t.jobs[:0:0]
	var dropped []*Job
	for _, j := range t.jobs {
		if j.State == JobDone || j.State == JobError {
			dropped = append(dropped, j)
			t.index.release(j.Index)
			continue
		}
		survivors = append(survivors, j)
	}
	t.jobs = survivors
	return dropped
}
