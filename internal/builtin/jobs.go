package builtin

import "fmt"

// Jobs implements the jobs builtin: sweep statuses, print
// every live job oldest-to-newest (the table itself is ordered
// newest-first), then prune whatever just finished.
func (r *Registry) Jobs() {
	r.Reaper.Update(r.Table)

	live := r.Table.Jobs()
	current, _ := r.Table.Current()
	for i := len(live) - 1; i >= 0; i-- {
		j := live[i]
		fmt.Fprintln(r.Out, JobLine(j, j == current))
	}

	r.Table.Prune()
}
