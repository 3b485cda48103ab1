package renderer

import (
	"image"
	"math/rand"

	"github.com/ioreshnikov/rtrace/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered.
// Each tile owns a deterministic sampler derived from the scene seed and
// the tile ID, so the rendered output is independent of how tiles are
// scheduled across workers.
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1), y counted from the bottom row
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         core.Sampler    // Tile-specific sampler for deterministic results
}

// NewTile creates a new tile with the specified bounds and seed
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed + int64(id))))

	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: sampler,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Ceiling division
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
