package kuhn

import "fmt"

// ActionString names a for diagnostics. It panics on values outside the
// alphabet.
func (g Game) ActionString(a Action) string {
	return a.String()
}

// StateString renders s as (pid=0,last=start,pot=1/1).
func (g Game) StateString(s State) string {
	return fmt.Sprintf("(pid=%d,last=%s,pot=%d/%d)", s.PlayerID, s.LastAction, s.Pot[0], s.Pot[1])
}
