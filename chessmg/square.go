package chessmg

import "fmt"

// Square is a board index 0-63, rank-major: a1 = 0, h1 = 7, a8 = 56, h8 = 63.
type Square int

const NoSquare Square = -1

// Named squares used by the castling and rights rules.
const (
	A1 Square = 0
	B1 Square = 1
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	A8 Square = 56
	B8 Square = 57
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// SquareAt returns the square on the given 0-based rank and file.
func SquareAt(rank, file int) Square { return Square(rank*8 + file) }

// Rank returns the 0-based rank of the square.
func (sq Square) Rank() int { return int(sq) / 8 }

// File returns the 0-based file of the square.
func (sq Square) File() int { return int(sq) % 8 }

// String returns algebraic notation, e.g. "e4".
func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare decodes algebraic notation such as "e3".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return SquareAt(int(s[1]-'1'), int(s[0]-'a')), nil
}

// Delta is a signed (rank, file) step.
type Delta struct {
	Rank, File int
}

// Offset applies d to sq. ok is false when the destination is off the board.
func (sq Square) Offset(d Delta) (to Square, ok bool) {
	r := sq.Rank() + d.Rank
	f := sq.File() + d.File
	if r < 0 || r > 7 || f < 0 || f > 7 {
		return NoSquare, false
	}
	return SquareAt(r, f), true
}

// OffsetN applies d to sq n times.
func (sq Square) OffsetN(d Delta, n int) (Square, bool) {
	return sq.Offset(Delta{d.Rank * n, d.File * n})
}

// Direction tables. Read-only after package init.
var (
	knightDeltas = [8]Delta{
		{1, 2}, {2, 1}, {-1, 2}, {2, -1},
		{1, -2}, {-2, 1}, {-1, -2}, {-2, -1},
	}
	bishopDeltas = [4]Delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDeltas   = [4]Delta{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	// King steps; also the eight queen rays.
	kingDeltas = [8]Delta{
		{1, 1}, {1, 0}, {1, -1}, {0, 1},
		{0, -1}, {-1, 1}, {-1, 0}, {-1, -1},
	}
)

// diagonal reports whether d moves along a diagonal.
func (d Delta) diagonal() bool { return d.Rank != 0 && d.File != 0 }

// Precomputed leaper masks and slider rays, derived from the delta tables.
var (
	knightMoves [64]uint64
	kingMoves   [64]uint64
	// pawnAttacks[c][sq] holds the squares a pawn of color c on sq attacks.
	pawnAttacks [2][64]uint64
	// rays[dir][sq] lists the squares walked from sq along kingDeltas[dir], nearest first.
	rays [8][64][]Square
)

func init() {
	initAttackTables()
	initRays()
}

func initAttackTables() {
	for sq := Square(0); sq < 64; sq++ {
		for _, d := range knightDeltas {
			if to, ok := sq.Offset(d); ok {
				knightMoves[sq] |= bb(to)
			}
		}
		for _, d := range kingDeltas {
			if to, ok := sq.Offset(d); ok {
				kingMoves[sq] |= bb(to)
			}
		}
		for _, df := range [2]int{-1, 1} {
			if to, ok := sq.Offset(Delta{1, df}); ok {
				pawnAttacks[White][sq] |= bb(to)
			}
			if to, ok := sq.Offset(Delta{-1, df}); ok {
				pawnAttacks[Black][sq] |= bb(to)
			}
		}
	}
}

func initRays() {
	for i, d := range rookDeltas {
		rookDirs[i] = dirIndex(d)
	}
	for i, d := range bishopDeltas {
		bishopDirs[i] = dirIndex(d)
	}
	for dir, d := range kingDeltas {
		for sq := Square(0); sq < 64; sq++ {
			var ray []Square
			for n := 1; ; n++ {
				to, ok := sq.OffsetN(d, n)
				if !ok {
					break
				}
				ray = append(ray, to)
			}
			rays[dir][sq] = ray
		}
	}
}

// Slider direction sets, as indexes into kingDeltas and rays.
var (
	rookDirs   [4]int
	bishopDirs [4]int
	queenDirs  = [8]int{0, 1, 2, 3, 4, 5, 6, 7}
)

func dirIndex(d Delta) int {
	for i, k := range kingDeltas {
		if k == d {
			return i
		}
	}
	panic(fmt.Sprintf("chessmg: %v is not a ray direction", d))
}
