package system

import (
	"container/heap"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const defaultPathGridSize = 1.0

// AABB is an axis-aligned box on the ground plane. Only X and Z are used.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Inflate grows the box by r on every side.
func (b AABB) Inflate(r float64) AABB {
	return AABB{
		Min: mgl64.Vec3{b.Min.X() - r, 0, b.Min.Z() - r},
		Max: mgl64.Vec3{b.Max.X() + r, 0, b.Max.Z() + r},
	}
}

// Contains reports whether p lies inside the box on the ground plane.
func (b AABB) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() && p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// NavGrid is a uniform walkability grid over the level bounds, built once
// per level from the static obstacles.
type NavGrid struct {
	origin    mgl64.Vec3
	gridSize  float64
	gridW     int
	gridH     int
	blocked   []bool
	obstacles []AABB
}

type gridPos struct {
	x int
	y int
}

// NewNavGrid rasterises the obstacles, each inflated by clearance, into a
// grid covering bounds.
func NewNavGrid(bounds AABB, gridSize, clearance float64, obstacles []AABB) *NavGrid {
	if gridSize <= 0 {
		gridSize = defaultPathGridSize
	}
	width := bounds.Max.X() - bounds.Min.X()
	height := bounds.Max.Z() - bounds.Min.Z()
	g := &NavGrid{
		origin:   mgl64.Vec3{bounds.Min.X(), 0, bounds.Min.Z()},
		gridSize: gridSize,
		gridW:    int(math.Ceil(width / gridSize)),
		gridH:    int(math.Ceil(height / gridSize)),
	}
	if g.gridW <= 0 || g.gridH <= 0 {
		g.gridW, g.gridH = 0, 0
		return g
	}
	g.obstacles = make([]AABB, 0, len(obstacles))
	for _, o := range obstacles {
		g.obstacles = append(g.obstacles, o.Inflate(clearance))
	}
	g.blocked = buildBlockedGrid(g.obstacles, g.origin, g.gridW, g.gridH, gridSize)
	return g
}

// Size returns the grid dimensions in cells.
func (g *NavGrid) Size() (int, int) {
	if g == nil {
		return 0, 0
	}
	return g.gridW, g.gridH
}

// Walkable reports whether the cell containing p is free.
func (g *NavGrid) Walkable(p mgl64.Vec3) bool {
	if g == nil || g.gridW == 0 {
		return false
	}
	c := g.gridCoord(p)
	return !g.blocked[c.y*g.gridW+c.x]
}

// inside reports whether p lies within the grid's bounds.
func (g *NavGrid) inside(p mgl64.Vec3) bool {
	if g == nil {
		return false
	}
	x := p.X() - g.origin.X()
	z := p.Z() - g.origin.Z()
	return x >= 0 && z >= 0 && x < float64(g.gridW)*g.gridSize && z < float64(g.gridH)*g.gridSize
}

// FindPath returns world-space corners from start to goal, ending exactly at
// goal. ok is false when either end is blocked or no route exists.
func (g *NavGrid) FindPath(start, goal mgl64.Vec3) ([]mgl64.Vec3, bool) {
	if g == nil || g.gridW == 0 {
		return nil, false
	}
	path, _ := astarPath(g.gridCoord(start), g.gridCoord(goal), g.blocked, g.gridW, g.gridH)
	if len(path) == 0 {
		return nil, false
	}
	points := gridPathToWorld(path, g.origin, g.gridSize)
	// the last cell centre is replaced by the real goal
	points[len(points)-1] = goal
	return smoothPath(start, points, g.obstacles), true
}

func (g *NavGrid) gridCoord(p mgl64.Vec3) gridPos {
	gx := int(math.Floor((p.X() - g.origin.X()) / g.gridSize))
	gy := int(math.Floor((p.Z() - g.origin.Z()) / g.gridSize))
	if gx < 0 {
		gx = 0
	}
	if gy < 0 {
		gy = 0
	}
	if gx >= g.gridW {
		gx = g.gridW - 1
	}
	if gy >= g.gridH {
		gy = g.gridH - 1
	}
	return gridPos{x: gx, y: gy}
}

func gridPathToWorld(path []gridPos, origin mgl64.Vec3, gridSize float64) []mgl64.Vec3 {
	if len(path) == 0 {
		return nil
	}
	out := make([]mgl64.Vec3, 0, len(path))
	half := gridSize * 0.5
	for _, p := range path {
		out = append(out, mgl64.Vec3{
			origin.X() + float64(p.x)*gridSize + half,
			0,
			origin.Z() + float64(p.y)*gridSize + half,
		})
	}
	return out
}

func buildBlockedGrid(obstacles []AABB, origin mgl64.Vec3, gridW, gridH int, gridSize float64) []bool {
	blocked := make([]bool, gridW*gridH)
	for _, o := range obstacles {
		minX := o.Min.X() - origin.X()
		minY := o.Min.Z() - origin.Z()
		maxX := o.Max.X() - origin.X()
		maxY := o.Max.Z() - origin.Z()

		startX := int(math.Floor(minX / gridSize))
		startY := int(math.Floor(minY / gridSize))
		endX := int(math.Floor((maxX - 0.001) / gridSize))
		endY := int(math.Floor((maxY - 0.001) / gridSize))

		if startX < 0 {
			startX = 0
		}
		if startY < 0 {
			startY = 0
		}
		if endX >= gridW {
			endX = gridW - 1
		}
		if endY >= gridH {
			endY = gridH - 1
		}

		for y := startY; y <= endY; y++ {
			for x := startX; x <= endX; x++ {
				blocked[y*gridW+x] = true
			}
		}
	}
	return blocked
}

func astarPath(start, goal gridPos, blocked []bool, gridW, gridH int) ([]gridPos, []gridPos) {
	if start.x < 0 || start.y < 0 || goal.x < 0 || goal.y < 0 {
		return nil, nil
	}
	if start.x >= gridW || start.y >= gridH || goal.x >= gridW || goal.y >= gridH {
		return nil, nil
	}
	if blocked[start.y*gridW+start.x] || blocked[goal.y*gridW+goal.x] {
		return nil, nil
	}

	open := &openSet{}
	heap.Init(open)

	cameFrom := make([]int, gridW*gridH)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, gridW*gridH)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	startIdx := start.y*gridW + start.x
	goalIdx := goal.y*gridW + goal.x
	gScore[startIdx] = 0
	heap.Push(open, &openItem{pos: start, f: heuristic(start, goal), g: 0})

	visited := make([]gridPos, 0, 64)

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.pos
		curIdx := cur.y*gridW + cur.x
		if current.g > gScore[curIdx] {
			continue
		}

		visited = append(visited, cur)

		if curIdx == goalIdx {
			return reconstructPath(cameFrom, gridW, startIdx, goalIdx), visited
		}

		for _, n := range neighbors(cur, gridW, gridH) {
			idx := n.y*gridW + n.x
			if blocked[idx] {
				continue
			}
			tentativeG := gScore[curIdx] + 1
			if tentativeG < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentativeG
				f := tentativeG + heuristic(n, goal)
				heap.Push(open, &openItem{pos: n, f: f, g: tentativeG})
			}
		}
	}

	return nil, visited
}

func reconstructPath(cameFrom []int, gridW int, startIdx, goalIdx int) []gridPos {
	if startIdx == goalIdx {
		return []gridPos{{x: startIdx % gridW, y: startIdx / gridW}}
	}
	if goalIdx < 0 || goalIdx >= len(cameFrom) || cameFrom[goalIdx] == -1 {
		return nil
	}

	path := make([]gridPos, 0, 32)
	cur := goalIdx
	for cur != -1 {
		x := cur % gridW
		y := cur / gridW
		path = append(path, gridPos{x: x, y: y})
		if cur == startIdx {
			break
		}
		cur = cameFrom[cur]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func neighbors(p gridPos, gridW, gridH int) []gridPos {
	out := make([]gridPos, 0, 4)
	if p.x > 0 {
		out = append(out, gridPos{x: p.x - 1, y: p.y})
	}
	if p.x < gridW-1 {
		out = append(out, gridPos{x: p.x + 1, y: p.y})
	}
	if p.y > 0 {
		out = append(out, gridPos{x: p.x, y: p.y - 1})
	}
	if p.y < gridH-1 {
		out = append(out, gridPos{x: p.x, y: p.y + 1})
	}
	return out
}

func heuristic(a, b gridPos) float64 {
	return math.Abs(float64(a.x-b.x)) + math.Abs(float64(a.y-b.y))
}

type openItem struct {
	pos   gridPos
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
