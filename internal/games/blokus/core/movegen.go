package core

import (
	"context"
	"iter"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// moveJob enumerates one orientation of one shape. A nil anchor list means
// every anchor whose bounding box fits on the board, scanned row-major.
type moveJob struct {
	color   Color
	shape   ShapeID
	variant int
	anchors []Coord
}

// moveJobs lists the jobs for the current color in catalog order × variant
// order. With startAware set, a color's first move only tries anchors that
// put a cell on its corner.
func moveJobs(s *State, startAware bool) []moveJob {
	color, ok := s.CurrentColor()
	if !ok {
		return nil
	}
	if startAware && s.IsFirstMove(color) {
		return startJobs(s, color)
	}
	var jobs []moveJob
	for shape := range s.Undeployed[color].All() {
		for v := range shape.Variants() {
			jobs = append(jobs, moveJob{color: color, shape: shape, variant: v})
		}
	}
	return jobs
}

func startJobs(s *State, color Color) []moveJob {
	shapes := s.Undeployed[color]
	if s.Rules.StartShape != NoShape {
		shapes = ShapeSet(0).With(s.Rules.StartShape)
	}
	corner := s.Rules.CornerOf(color)

	var jobs []moveJob
	for shape := range shapes.All() {
		for v, offsets := range shape.Variants() {
			anchors := make([]Coord, 0, len(offsets))
			for _, o := range offsets {
				anchors = append(anchors, C(corner.X-o.X, corner.Y-o.Y))
			}
			slices.SortFunc(anchors, CompareCoords)
			jobs = append(jobs, moveJob{color: color, shape: shape, variant: v, anchors: anchors})
		}
	}
	return jobs
}

// run validates every candidate of the job and yields the legal ones.
// ctx is polled once per anchor. It returns false when yield asked to stop.
func (j moveJob) run(ctx context.Context, s *State, yield func(SetMove) bool) (bool, error) {
	visit := func(anchor Coord) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		m := NewSetMove(j.color, j.shape, j.variant, anchor)
		if ValidateSetMove(s, m) == nil && !yield(m) {
			return false, nil
		}
		return true, nil
	}

	if j.anchors != nil {
		for _, a := range j.anchors {
			if cont, err := visit(a); !cont || err != nil {
				return cont, err
			}
		}
		return true, nil
	}

	w, h := j.shape.Variants()[j.variant].Area()
	n := s.Board.Size
	for y := 0; y <= n-h; y++ {
		for x := 0; x <= n-w; x++ {
			if cont, err := visit(C(x, y)); !cont || err != nil {
				return cont, err
			}
		}
	}
	return true, nil
}

func sequence(s *State, startAware bool) iter.Seq[SetMove] {
	return func(yield func(SetMove) bool) {
		ctx := context.Background()
		for _, j := range moveJobs(s, startAware) {
			if cont, _ := j.run(ctx, s, yield); !cont {
				return
			}
		}
	}
}

// PossibleMoves lazily yields every legal SetMove of the current color in
// catalog order × variant order × row-major anchor order. The sequence is
// recomputed on each iteration.
func PossibleMoves(s *State) iter.Seq[SetMove] {
	return sequence(s, true)
}

// AllPossibleMoves is PossibleMoves without the first-move shortcut: every
// undeployed shape is scanned over the whole board. The validator still
// applies, so the yielded set is the same.
func AllPossibleMoves(s *State) iter.Seq[SetMove] {
	return sequence(s, false)
}

// HasSetMove reports whether the current color can place anything.
func HasSetMove(s *State) bool {
	for range PossibleMoves(s) {
		return true
	}
	return false
}

// LegalMoves returns the legal SetMoves of the current color, or a single
// SkipMove when only passing is allowed. Empty when the color cannot act.
func LegalMoves(s *State) []Move {
	var moves []Move
	for m := range PossibleMoves(s) {
		moves = append(moves, m)
	}
	if len(moves) > 0 {
		return moves
	}
	if color, ok := s.CurrentColor(); ok {
		skip := SkipMove{Player: color}
		if ValidateSkipMove(s, skip) == nil {
			moves = append(moves, skip)
		}
	}
	return moves
}

// CollectMoves gathers PossibleMoves, checking ctx once per anchor.
func CollectMoves(ctx context.Context, s *State) ([]SetMove, error) {
	var moves []SetMove
	collect := func(m SetMove) bool {
		moves = append(moves, m)
		return true
	}
	for _, j := range moveJobs(s, true) {
		if _, err := j.run(ctx, s, collect); err != nil {
			return nil, err
		}
	}
	return moves, nil
}

// CollectMovesParallel is CollectMoves with jobs spread over workers
// goroutines (GOMAXPROCS when workers < 1). Results are merged in job
// order, so the output equals CollectMoves. s must not be mutated while
// this runs.
func CollectMovesParallel(ctx context.Context, s *State, workers int) ([]SetMove, error) {
	jobs := moveJobs(s, true)
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([][]SetMove, len(jobs))
	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			_, err := job.run(gctx, s, func(m SetMove) bool {
				results[i] = append(results[i], m)
				return true
			})
			return err
		})
	}
	err := g.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}

	var moves []SetMove
	for _, r := range results {
		moves = append(moves, r...)
	}
	return moves, nil
}
