package chess

// captureRule says how a move generator treats an enemy-occupied square.
type captureRule int

const (
	cannotCapture captureRule = iota
	mustCapture
	mayCapture
)

var (
	orthogonals = []Pos{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	diagonals   = []Pos{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	knightSteps = []Pos{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
)

// addMovesInDirection walks dir from the piece's square, at most limit steps
// (0 means until blocked). A friendly piece blocks and is excluded; an enemy
// piece is included when the rule allows it and then blocks.
func (p *Piece) addMovesInDirection(dir Pos, moves map[Pos]Move, rule captureRule, limit int) {
	b := p.board
	to := p.pos.Offset(dir)
	for steps := 0; (limit == 0 || steps < limit) && b.InsideBounds(to); steps++ {
		occupant := b.Get(to)
		if occupant == nil {
			if rule != mustCapture {
				moves[to] = NewMove(p.pos, to)
			}
			to = to.Offset(dir)
			continue
		}
		if occupant.side != p.side && rule != cannotCapture {
			moves[to] = NewMove(p.pos, to)
		}
		return
	}
}

func (p *Piece) addSlides(dirs []Pos, moves map[Pos]Move) {
	for _, dir := range dirs {
		p.addMovesInDirection(dir, moves, mayCapture, 0)
	}
}

func (p *Piece) addSteps(dirs []Pos, moves map[Pos]Move) {
	for _, dir := range dirs {
		p.addMovesInDirection(dir, moves, mayCapture, 1)
	}
}

func (p *Piece) addPawnMoves(moves map[Pos]Move) {
	b := p.board
	dir := p.moveDirection()
	forward := Pos{Row: dir, Col: 0}

	p.addMovesInDirection(forward, moves, cannotCapture, 1)
	p.addMovesInDirection(Pos{Row: dir, Col: -1}, moves, mustCapture, 1)
	p.addMovesInDirection(Pos{Row: dir, Col: 1}, moves, mustCapture, 1)

	if !b.HasMoved(p) && b.IsEmpty(p.pos.Offset(forward)) {
		p.addMovesInDirection(Pos{Row: 2 * dir, Col: 0}, moves, cannotCapture, 1)
	}

	// En passant is only open on the ply right after an enemy double step.
	last, ok := b.LastMove()
	if !ok || last.Piece().kind != Pawn || last.Piece().side == p.side {
		return
	}
	if last.From().Sub(last.To()) != (Pos{Row: 2 * dir, Col: 0}) || b.Get(last.To()) != last.Piece() {
		return
	}
	diff := last.To().Sub(p.pos)
	if diff == (Pos{Row: 0, Col: -1}) || diff == (Pos{Row: 0, Col: 1}) {
		to := p.pos.Offset(forward).Offset(diff)
		if b.InsideBounds(to) && b.IsEmpty(to) {
			moves[to] = NewEnPassantMove(p.pos, to)
		}
	}
}

// addCastlingMoves adds the king's two-square move towards an unmoved rook on
// the board edge. The king must not be in check and must not cross an
// attacked square; the landing square is left to the check-safe filter.
func (p *Piece) addCastlingMoves(moves map[Pos]Move) {
	b := p.board
	if b.HasMoved(p) || b.KingInCheck(p.side) {
		return
	}
	for _, dir := range []int{-1, 1} {
		rook := p.castlingRook(dir)
		if rook == nil {
			continue
		}
		cross := p.pos.Offset(Pos{Row: 0, Col: dir})
		if !b.leavesKingSafe(NewMove(p.pos, cross), p.side) {
			continue
		}
		to := p.pos.Offset(Pos{Row: 0, Col: 2 * dir})
		moves[to] = NewCastlingMove(p.pos, to, rook.pos, cross)
	}
}

// castlingRook returns the first piece along the king's row in direction dir
// if it is an unmoved friendly rook on the board edge at least three columns
// away.
func (p *Piece) castlingRook(dir int) *Piece {
	b := p.board
	step := Pos{Row: 0, Col: dir}
	for sq := p.pos.Offset(step); b.InsideBounds(sq); sq = sq.Offset(step) {
		occupant := b.Get(sq)
		if occupant == nil {
			continue
		}
		edge := sq.Col == 0 || sq.Col == b.Cols()-1
		dist := sq.Col - p.pos.Col
		if dist < 0 {
			dist = -dist
		}
		if occupant.side == p.side && occupant.kind == Rook && edge && dist >= 3 && !b.HasMoved(occupant) {
			return occupant
		}
		return nil
	}
	return nil
}
