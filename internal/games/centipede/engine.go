package centipede

// Update advances the simulation by one tick after both agents have acted.
// The order of the steps is part of the game rules:
//  1. clear the board
//  2. advance bullets and resolve hits
//  3. move the centipede
//  4. stamp the board
//  5. evaluate the terminal condition
func Update(s *State) {
	s.Board.Clear()
	s.advanceBullets()
	s.moveCentipede()
	s.stamp()
	s.checkGameOver()
}

// advanceBullets moves every bullet up one row, oldest first. A bullet that
// lands on a segment destroys the first such segment in list order and is
// consumed; a bullet leaving the top row is dropped.
func (s *State) advanceBullets() {
	kept := make([]Position, 0, len(s.Bullets))
	for _, b := range s.Bullets {
		next := Position{X: b.X, Y: b.Y - 1}
		if next.Y < 0 {
			continue
		}
		if s.destroySegmentAt(next) {
			continue
		}
		kept = append(kept, next)
	}
	s.Bullets = kept
}

// destroySegmentAt removes the first segment at p, leaving a mushroom behind.
func (s *State) destroySegmentAt(p Position) bool {
	for i, seg := range s.Segments {
		if seg != p {
			continue
		}
		s.Score += s.pointsPerSegment
		s.AddMushroom(seg)
		s.Segments = append(s.Segments[:i], s.Segments[i+1:]...)
		return true
	}
	return false
}

// moveCentipede reverses and drops the whole body when the head meets the
// wall it is heading into, then steps the head and pulls each follower into
// the cell its leader occupied before the step.
func (s *State) moveCentipede() {
	if len(s.Segments) == 0 {
		return
	}

	head := s.Segments[0]
	if (head.X == 0 && s.Direction == DirLeft) || (head.X == s.Width()-1 && s.Direction == DirRight) {
		s.Direction = s.Direction.Reverse()
		for i := range s.Segments {
			s.Segments[i].Y++
		}
		head = s.Segments[0]
	}

	prev := append([]Position(nil), s.Segments...)

	next, ok := s.nextHead(prev, head)
	if !ok {
		return
	}

	s.Segments[0] = next
	for i := 1; i < len(prev); i++ {
		s.Segments[i] = prev[i-1]
	}
}

// nextHead picks the head's destination. The head steps along its heading
// unless a follower that stays put this tick sits there; then it drops one
// row instead. When neither cell is free the body holds still.
func (s *State) nextHead(prev []Position, head Position) (Position, bool) {
	candidates := [...]Position{head.Move(s.Direction), head.Move(DirDown)}
	for _, c := range candidates {
		if !c.In(s.Width(), s.Height()) || bodyBlocks(prev, c) {
			continue
		}
		return c, true
	}
	return head, false
}

// bodyBlocks reports whether p is held by a follower after the move. The tail
// (last index) vacates its cell, so it never blocks.
func bodyBlocks(prev []Position, p Position) bool {
	for i := 1; i < len(prev)-1; i++ {
		if prev[i] == p {
			return true
		}
	}
	return false
}

// checkGameOver ends the match once the centipede is gone or any segment
// reaches the player's row. The flag is never cleared.
func (s *State) checkGameOver() {
	if len(s.Segments) == 0 {
		s.GameOver = true
		return
	}
	for _, seg := range s.Segments {
		if seg.Y >= s.Height()-1 {
			s.GameOver = true
			return
		}
	}
}
