package config

// DefaultPhysics returns the built-in tuning. JSON files are decoded on top
// of it so omitted keys keep these values.
func DefaultPhysics() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        2,
			Framerate:    60,
		},
		Physics: PhysicsSettings{
			Gravity:     1100,
			EnemySpeed:  40,
			EnemyPatrol: 48,
		},
		Collision: CollisionConfig{
			CornerCorrection: MarginConfig{Enabled: true, Margin: 3},
		},
		Player: DefaultPlayer(),
	}
}

// DefaultPlayer returns the built-in player tuning.
func DefaultPlayer() PlayerConfig {
	return PlayerConfig{
		Size: SizeConfig{Width: 12, Height: 24, CrouchHeight: 14},
		Movement: MovementConfig{
			SoftMaxX:       220,
			HardMaxX:       900,
			HardMaxY:       900,
			Acceleration:   1400,
			AirDrag:        120,
			GroundDrag:     700,
			GroundFastDrag: 1600,
			OverCapDrag:    1600,
			TurnSpeed:      60,
			MoveSpeed:      10,
		},
		Jump: JumpConfig{
			Velocity:   -300,
			HoldAccel:  -1000,
			HoldTicks:  14,
			BrakeAccel: 1800,
		},
		Slide: SlideConfig{
			Speed:           320,
			HopVY:           -60,
			DiveVY:          260,
			Ticks:           22,
			AttackDelayTick: 10,
			Box:             Rect{OffsetX: 6, OffsetY: 8, Width: 14, Height: 8},
		},
		Kick: KickConfig{
			Ticks:           12,
			AttackDelayTick: 8,
			ReboundScale:    1.1,
			StandingV:       300,
			ReboundVY:       -180,
			EnemyHitVX:      260,
			EnemyHitVY:      -200,
			Box:             Rect{OffsetX: 10, OffsetY: 2, Width: 12, Height: 8},
		},
		DropKick: DropKickConfig{
			BoostX:          80,
			VY:              -440,
			MinSpeedFactor:  1.1,
			Ticks:           50,
			LandDelayTicks:  6,
			AttackDelayTick: 20,
			ReboundVY:       -360,
			SlowScale:       0.35,
			SlowTicks:       30,
			Box:             Rect{OffsetX: 9, OffsetY: 6, Width: 14, Height: 10},
		},
		Flip: FlipConfig{
			Step:            0.06,
			RadiusX:         14,
			RadiusY:         18,
			ReboundSpeed:    420,
			EarlyT:          0.2,
			LateT:           0.7,
			EarlyBiasX:      120,
			LateBiasY:       160,
			MinReboundVY:    90,
			AttackDelayTick: 12,
			Box:             Rect{Width: 10, Height: 10},
		},
		Laser: LaserConfig{
			WindupTicks:  12,
			SustainTicks: 60,
			FallThrust:   2600,
			RiseThrust:   1500,
			HoverThrust:  700,
			HoverCeiling: 120,
			BeamWidth:    6,
			BeamStep:     8,
			BeamMaxSteps: 40,
		},
		Health: HealthConfig{
			MaxHP:         100,
			RegenPerTick:  0.02,
			IFrameTicks:   60,
			HurtTicks:     18,
			BlinkTicks:    4,
			SpikeDamage:   25,
			HeatDamage:    10,
			KnockX:        220,
			KnockY:        260,
			FallThreshold: 300,
		},
	}
}
