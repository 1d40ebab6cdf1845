package leduc

import "fmt"

// ActionString names a for diagnostics. It panics on values outside the
// alphabet.
func (g Game) ActionString(a Action) string {
	return a.String()
}

// StateString renders every public field of s, so distinct states never
// share a string.
func (g Game) StateString(s State) string {
	return fmt.Sprintf("(pid=%d,start=%d,open=%d,last=%s,river=%t,pot=%d/%d,stack=%d/%d)",
		s.PlayerID, s.StartingPlayer, s.RoundOpener, s.LastAction, s.River,
		s.CommunityPot[0], s.CommunityPot[1],
		s.Stack[0], s.Stack[1])
}
