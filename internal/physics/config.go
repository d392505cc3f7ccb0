package physics

// Config holds the world's physical constants. Width and Height are the
// wall bounds and do not change for the lifetime of a World.
type Config struct {
	Width  float64 `json:"-"`
	Height float64 `json:"-"`

	Gravity         float64 `json:"gravity"`
	AirFriction     float64 `json:"airFriction"`
	BounceCost      float64 `json:"bounceCost"`
	SurfaceFriction float64 `json:"surfaceFriction"`

	BallRadius float64 `json:"ballRadius"`
	SpawnSpeed float64 `json:"spawnSpeed"`

	// BodyLeafSize must stay above the largest ball diameter or colliding
	// balls can fall into different neighbourhoods.
	BodyLeafSize float64 `json:"bodyLeafSize"`

	Seed int64 `json:"seed"`
}

func DefaultConfig(width, height float64) Config {
	return Config{
		Width:           width,
		Height:          height,
		Gravity:         0.2,
		AirFriction:     0.99,
		BounceCost:      0.7,
		SurfaceFriction: 0.95,
		BallRadius:      5,
		SpawnSpeed:      2,
		BodyLeafSize:    32,
		Seed:            1,
	}
}
