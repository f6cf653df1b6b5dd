package room

// Summary is the listing view of a room exposed by the REST API.
type Summary struct {
	Code           string `json:"code"`
	NumConnections int    `json:"num_connections"`
	Seats          int    `json:"seats"`
	IsStarted      bool   `json:"is_started"`
	IsOver         bool   `json:"is_over"`
}

// Summarize snapshots the room for listings.
func (r *Room) Summarize() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summary{
		Code:           r.code,
		NumConnections: len(r.conns),
		Seats:          r.game.Seats(),
		IsStarted:      r.game.IsStarted(),
		IsOver:         r.game.IsOver(),
	}
}

// StateSnapshot returns the public game state, whether the game is over,
// and the final result (nil while running), all under the room lock.
func (r *Room) StateSnapshot() (public any, over bool, final any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	public = r.game.PublicState()
	over = r.game.IsOver()
	if over {
		final = r.game.FinalResult()
	}
	return public, over, final
}

// FinalResult returns the game's outcome payload.
func (r *Room) FinalResult() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.FinalResult()
}
