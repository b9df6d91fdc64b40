package neon

// HazardContact identifies one hazard cell the actor overlapped this
// tick.
type HazardContact struct {
	Kind TileKind
	Col  int
	Row  int
}

// Events is everything a physics step observed, in the order the engine
// detected it. The engine only reports; the run controller decides what
// each event means for the run.
type Events struct {
	Jumped    bool
	AirJumped bool
	Dashed    bool
	Landed    bool
	FellOut   bool

	Hazards      []HazardContact
	Collectibles []*Collectible
	PowerUps     []*PowerUpSpawn
}
