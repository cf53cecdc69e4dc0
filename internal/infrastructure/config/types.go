package config

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display   DisplayConfig   `json:"display"`
	Physics   PhysicsSettings `json:"physics"`
	Collision CollisionConfig `json:"collision"`
	Player    PlayerConfig    `json:"player"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

type PhysicsSettings struct {
	Gravity     float64 `json:"gravity"`
	EnemySpeed  float64 `json:"enemySpeed"`
	EnemyPatrol float64 `json:"enemyPatrol"`
}

type CollisionConfig struct {
	CornerCorrection MarginConfig `json:"cornerCorrection"`
}

type MarginConfig struct {
	Enabled bool `json:"enabled"`
	Margin  int  `json:"margin"`
}

// PlayerConfig holds every tunable of the player state machine.
// Speeds are px/s, accelerations px/s², durations are 16ms logic ticks.
type PlayerConfig struct {
	Size     SizeConfig     `json:"size"`
	Movement MovementConfig `json:"movement"`
	Jump     JumpConfig     `json:"jump"`
	Slide    SlideConfig    `json:"slide"`
	Kick     KickConfig     `json:"kick"`
	DropKick DropKickConfig `json:"dropKick"`
	Flip     FlipConfig     `json:"flip"`
	Laser    LaserConfig    `json:"laser"`
	Health   HealthConfig   `json:"health"`
}

type SizeConfig struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	CrouchHeight float64 `json:"crouchHeight"`
}

type MovementConfig struct {
	// SoftMaxX is the running speed cap.
	SoftMaxX float64 `json:"softMaxX"`
	HardMaxX float64 `json:"hardMaxX"`
	HardMaxY float64 `json:"hardMaxY"`

	Acceleration   float64 `json:"acceleration"`
	AirDrag        float64 `json:"airDrag"`
	GroundDrag     float64 `json:"groundDrag"`
	GroundFastDrag float64 `json:"groundFastDrag"`
	OverCapDrag    float64 `json:"overCapDrag"`
	TurnSpeed      float64 `json:"turnSpeed"`
	MoveSpeed      float64 `json:"moveSpeed"`
}

type JumpConfig struct {
	Velocity   float64 `json:"velocity"`
	HoldAccel  float64 `json:"holdAccel"`
	HoldTicks  int     `json:"holdTicks"`
	BrakeAccel float64 `json:"brakeAccel"`
}

type SlideConfig struct {
	Speed           float64 `json:"speed"`
	HopVY           float64 `json:"hopVY"`
	DiveVY          float64 `json:"diveVY"`
	Ticks           int     `json:"ticks"`
	AttackDelayTick int     `json:"attackDelayTicks"`
	Box             Rect    `json:"box"`
}

type KickConfig struct {
	Ticks           int     `json:"ticks"`
	AttackDelayTick int     `json:"attackDelayTicks"`
	ReboundScale    float64 `json:"reboundScale"`
	StandingV       float64 `json:"standingV"`
	ReboundVY       float64 `json:"reboundVY"`
	EnemyHitVX      float64 `json:"enemyHitVX"`
	EnemyHitVY      float64 `json:"enemyHitVY"`
	Box             Rect    `json:"box"`
}

type DropKickConfig struct {
	BoostX          float64 `json:"boostX"`
	VY              float64 `json:"vy"`
	MinSpeedFactor  float64 `json:"minSpeedFactor"`
	Ticks           int     `json:"ticks"`
	LandDelayTicks  int     `json:"landDelayTicks"`
	AttackDelayTick int     `json:"attackDelayTicks"`
	ReboundVY       float64 `json:"reboundVY"`
	SlowScale       float64 `json:"slowScale"`
	SlowTicks       int     `json:"slowTicks"`
	Box             Rect    `json:"box"`
}

type FlipConfig struct {
	Step            float64 `json:"step"`
	RadiusX         float64 `json:"radiusX"`
	RadiusY         float64 `json:"radiusY"`
	ReboundSpeed    float64 `json:"reboundSpeed"`
	EarlyT          float64 `json:"earlyT"`
	LateT           float64 `json:"lateT"`
	EarlyBiasX      float64 `json:"earlyBiasX"`
	LateBiasY       float64 `json:"lateBiasY"`
	MinReboundVY    float64 `json:"minReboundVY"`
	AttackDelayTick int     `json:"attackDelayTicks"`
	Box             Rect    `json:"box"`
}

type LaserConfig struct {
	WindupTicks  int     `json:"windupTicks"`
	SustainTicks int     `json:"sustainTicks"`
	FallThrust   float64 `json:"fallThrust"`
	RiseThrust   float64 `json:"riseThrust"`
	HoverThrust  float64 `json:"hoverThrust"`
	HoverCeiling float64 `json:"hoverCeiling"`
	BeamWidth    float64 `json:"beamWidth"`
	BeamStep     float64 `json:"beamStep"`
	BeamMaxSteps int     `json:"beamMaxSteps"`
}

type HealthConfig struct {
	MaxHP         float64 `json:"maxHP"`
	RegenPerTick  float64 `json:"regenPerTick"`
	IFrameTicks   int     `json:"iframeTicks"`
	HurtTicks     int     `json:"hurtTicks"`
	BlinkTicks    int     `json:"blinkTicks"`
	SpikeDamage   float64 `json:"spikeDamage"`
	HeatDamage    float64 `json:"heatDamage"`
	KnockX        float64 `json:"knockX"`
	KnockY        float64 `json:"knockY"`
	FallThreshold float64 `json:"fallThreshold"`
}

// Rect is a hitbox placement relative to the body center.
type Rect struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}
