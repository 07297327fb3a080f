package generator

import (
	"fmt"
	"math/rand"

	"mapscope/pkg/engine/world"
)

// BSPGenerator generates dungeons using Binary Space Partitioning
type BSPGenerator struct{}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *Room
}

var roomNames = []string{
	"Hall", "Armory", "Chapel", "Library", "Vault",
	"Barracks", "Cellar", "Shrine", "Kitchen", "Crypt",
	"Gallery", "Study", "Forge", "Larder", "Throne Room",
}

var roomAdjectives = []string{
	"Old", "Flooded", "Dusty", "Silent", "Collapsed",
	"Hidden", "Cold", "Burnt", "Forgotten", "Sunken",
}

// Constants for BSP generation
const (
	minNodeSize = 8 // Minimum size of a BSP node
	minRoomSize = 4 // Minimum size of a room
	roomPadding = 2 // Padding between room and node edge
)

// Generate creates a walled dungeon with rooms joined by corridors
func (g *BSPGenerator) Generate(rng *rand.Rand, width, height int) *Result {
	grid := NewGrid(width, height, TileWall)

	// leave a 1 tile border for the perimeter walls
	root := &bspNode{x: 1, y: 1, width: width - 2, height: height - 2}
	splitBSP(rng, root, minNodeSize)
	createRooms(rng, root)
	carveRooms(grid, root)
	connectRooms(rng, grid, root)

	res := &Result{Grid: grid, Rooms: collectRooms(root)}
	if len(res.Rooms) == 0 {
		cx, cy := grid.CenterPosition()
		grid.SetTile(cx, cy, 0, TileFloor)
		res.StartX, res.StartY = cx, cy
		return res
	}
	start := res.Rooms[rng.Intn(len(res.Rooms))]
	res.StartX, res.StartY = start.Center()
	decorate(rng, grid, res.Rooms)
	return res
}

// splitBSP recursively splits a BSP node
func splitBSP(rng *rand.Rand, node *bspNode, minSize int) {
	canSplitW := node.width >= minSize*2
	canSplitH := node.height >= minSize*2
	if !canSplitW && !canSplitH {
		return
	}

	var splitHorizontal bool
	switch {
	case canSplitW && canSplitH && node.width == node.height:
		splitHorizontal = rng.Intn(2) == 0
	case canSplitH && (node.height > node.width || !canSplitW):
		splitHorizontal = true
	}

	if splitHorizontal {
		// top and bottom
		splitPoint := minSize + rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		// left and right
		splitPoint := minSize + rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	splitBSP(rng, node.left, minSize)
	splitBSP(rng, node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func createRooms(rng *rand.Rand, node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			createRooms(rng, node.left)
		}
		if node.right != nil {
			createRooms(rng, node.right)
		}
		return
	}
	if node.width < minRoomSize+roomPadding || node.height < minRoomSize+roomPadding {
		return
	}

	roomWidth := minRoomSize + rng.Intn(node.width-minRoomSize-roomPadding+1)
	roomHeight := minRoomSize + rng.Intn(node.height-minRoomSize-roomPadding+1)

	node.room = &Room{
		X:      node.x + rng.Intn(node.width-roomWidth),
		Y:      node.y + rng.Intn(node.height-roomHeight),
		Width:  roomWidth,
		Height: roomHeight,
		Name: fmt.Sprintf("%s %s",
			roomAdjectives[rng.Intn(len(roomAdjectives))],
			roomNames[rng.Intn(len(roomNames))]),
	}
}

// carveRooms turns room rectangles into floor
func carveRooms(grid *world.Grid, node *bspNode) {
	if r := node.room; r != nil {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				grid.SetTile(x, y, 0, TileFloor)
			}
		}
	}
	if node.left != nil {
		carveRooms(grid, node.left)
	}
	if node.right != nil {
		carveRooms(grid, node.right)
	}
}

// connectRooms joins sibling subtrees with L-shaped corridors
func connectRooms(rng *rand.Rand, grid *world.Grid, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := getRoom(rng, node.left)
	rightRoom := getRoom(rng, node.right)
	if leftRoom != nil && rightRoom != nil {
		lx, ly := leftRoom.Center()
		rx, ry := rightRoom.Center()
		if rng.Intn(2) == 0 {
			carveHorizontal(grid, ly, lx, rx)
			carveVertical(grid, rx, ly, ry)
		} else {
			carveVertical(grid, lx, ly, ry)
			carveHorizontal(grid, ry, lx, rx)
		}
	}

	connectRooms(rng, grid, node.left)
	connectRooms(rng, grid, node.right)
}

func carveHorizontal(grid *world.Grid, y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		grid.SetTile(x, y, 0, TileFloor)
	}
}

func carveVertical(grid *world.Grid, x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		grid.SetTile(x, y, 0, TileFloor)
	}
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func getRoom(rng *rand.Rand, node *bspNode) *Room {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *Room
	if node.left != nil {
		leftRoom = getRoom(rng, node.left)
	}
	if node.right != nil {
		rightRoom = getRoom(rng, node.right)
	}

	if leftRoom != nil && rightRoom != nil {
		if rng.Intn(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}
	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}

// collectRooms collects all rooms from the BSP tree
func collectRooms(node *bspNode) []Room {
	var rooms []Room
	if node.room != nil {
		rooms = append(rooms, *node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}
	return rooms
}

// decorate drops passable features into the rooms so every spot kind shows up on the minimap
func decorate(rng *rand.Rand, grid *world.Grid, rooms []Room) {
	for i, r := range rooms {
		switch i % 4 {
		case 0:
			grid.SetTile(r.X, r.Y, 1, TileLadder)
		case 1:
			for n := 0; n < 3; n++ {
				grid.SetTile(r.X+rng.Intn(r.Width), r.Y+rng.Intn(r.Height), 1, TileBush)
			}
		case 2:
			cx, cy := r.Center()
			grid.SetTile(cx, cy-1, 0, world.AutotileID(KindShallow, 0))
		case 3:
			for x := r.X + 1; x < r.X+r.Width-1; x++ {
				grid.SetTile(x, r.Y, 1, TileCounter)
			}
		}
	}
}
