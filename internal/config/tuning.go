package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant. A YAML file may override any subset;
// fields it leaves out keep their Default value.
type Tuning struct {
	Field       FieldTuning       `yaml:"field"`
	Spawn       SpawnTuning       `yaml:"spawn"`
	Missile     MissileTuning     `yaml:"missile"`
	Explosion   ExplosionTuning   `yaml:"explosion"`
	Progression ProgressionTuning `yaml:"progression"`
	Star        StarTuning        `yaml:"star"`
	Frame       FrameTuning       `yaml:"frame"`
}

// FieldTuning describes the play field in field coordinates (y grows down).
type FieldTuning struct {
	Left    float64   `yaml:"left"`
	Top     float64   `yaml:"top"`
	Width   float64   `yaml:"width"`
	Height  float64   `yaml:"height"`
	GroundY float64   `yaml:"ground_y"`
	BunkerY float64   `yaml:"bunker_y"`
	Bunkers []float64 `yaml:"bunkers"` // x position of each bunker slot
}

// SpawnTuning controls the hostile missile spawner.
type SpawnTuning struct {
	InitialDelay      float64 `yaml:"initial_delay"`       // seconds before the first spawn
	BaseInterval      float64 `yaml:"base_interval"`       // seconds between spawns at t=0
	MinIntervalFactor float64 `yaml:"min_interval_factor"` // floor as a fraction of BaseInterval
	RampSeconds       float64 `yaml:"ramp_seconds"`        // time to reach the hardest settings
	JitterMin         float64 `yaml:"jitter_min"`
	JitterMax         float64 `yaml:"jitter_max"`
	StartY            float64 `yaml:"start_y"`
	StartXMin         float64 `yaml:"start_x_min"`
	StartXMax         float64 `yaml:"start_x_max"`
}

// MissileTuning controls missile speeds and impact radii.
type MissileTuning struct {
	PlayerSpeed        float64 `yaml:"player_speed"`         // px/s before skills
	EnemySpeedFactor   float64 `yaml:"enemy_speed_factor"`   // enemy base speed as a fraction of PlayerSpeed
	EnemyMaxMultiplier float64 `yaml:"enemy_max_multiplier"` // enemy speed multiplier at the end of the ramp
	HitRadius          float64 `yaml:"hit_radius"`           // hostile hit distance to a bunker
	ArriveRadius       float64 `yaml:"arrive_radius"`        // friendly arrival distance to its target
	FiringRadius       float64 `yaml:"firing_radius"`        // origin distance that ties a missile to a bunker
}

// ExplosionTuning holds the default explosion parameters.
type ExplosionTuning struct {
	MaxRadius      float64 `yaml:"max_radius"`
	GrowthRate     float64 `yaml:"growth_rate"` // px/s
	StaticDuration float64 `yaml:"static_duration"`
}

// ProgressionTuning controls experience and skill scaling.
type ProgressionTuning struct {
	SkillStep      float64 `yaml:"skill_step"`      // multiplier gained per skill level
	BaseExperience float64 `yaml:"base_experience"` // experience needed at level 0
	LevelStep      float64 `yaml:"level_step"`      // extra fraction needed per level
	MaxAward       float64 `yaml:"max_award"`       // experience for a kill at the top of the field
}

// StarTuning controls bonus stars.
type StarTuning struct {
	Radius float64 `yaml:"radius"`
	XMin   float64 `yaml:"x_min"`
	XMax   float64 `yaml:"x_max"`
	YMin   float64 `yaml:"y_min"`
	YMax   float64 `yaml:"y_max"`
}

// FrameTuning controls how frame time is integrated.
type FrameTuning struct {
	MaxDelta float64 `yaml:"max_delta"` // frame time above this is dropped
	MaxStep  float64 `yaml:"max_step"`  // longest single integration step
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		Field: FieldTuning{
			Left:    -400,
			Top:     -300,
			Width:   800,
			Height:  600,
			GroundY: 280,
			BunkerY: 260,
			Bunkers: []float64{-200, 0, 200},
		},
		Spawn: SpawnTuning{
			InitialDelay:      2.0,
			BaseInterval:      4.0,
			MinIntervalFactor: 1.0 / 3.0,
			RampSeconds:       300,
			JitterMin:         0.5,
			JitterMax:         1.5,
			StartY:            -280,
			StartXMin:         -380,
			StartXMax:         380,
		},
		Missile: MissileTuning{
			PlayerSpeed:        100,
			EnemySpeedFactor:   0.5,
			EnemyMaxMultiplier: 3,
			HitRadius:          2.0,
			ArriveRadius:       5.0,
			FiringRadius:       5.0,
		},
		Explosion: ExplosionTuning{
			MaxRadius:      50,
			GrowthRate:     200,
			StaticDuration: 0.05,
		},
		Progression: ProgressionTuning{
			SkillStep:      0.2,
			BaseExperience: 50,
			LevelStep:      0.1,
			MaxAward:       100,
		},
		Star: StarTuning{
			Radius: 3,
			XMin:   -350,
			XMax:   350,
			YMin:   -250,
			YMax:   -150,
		},
		Frame: FrameTuning{
			MaxDelta: 0.1,
			MaxStep:  1.0 / 120.0,
		},
	}
}

//go:embed tuning.schema.json
var tuningSchemaSource string

var tuningSchema = jsonschema.MustCompileString("tuning.schema.json", tuningSchemaSource)

// ErrInvalidTuning is returned when a tuning file is well-formed YAML but
// describes an unusable game.
var ErrInvalidTuning = errors.New("invalid tuning")

// Load reads a YAML tuning file over the defaults.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML tuning over the defaults after schema validation.
func Parse(raw []byte) (Tuning, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if doc != nil {
		if err := validateDocument(doc); err != nil {
			return Tuning{}, err
		}
	}

	t := Default()
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// validateDocument runs the decoded YAML through the JSON schema. The
// document is round-tripped through encoding/json so the validator only sees
// JSON value types.
func validateDocument(doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := tuningSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	return nil
}

// Validate checks the cross-field constraints the schema cannot express.
func (t Tuning) Validate() error {
	switch {
	case len(t.Field.Bunkers) == 0:
		return fmt.Errorf("%w: field.bunkers is empty", ErrInvalidTuning)
	case t.Field.BunkerY <= t.Field.Top:
		return fmt.Errorf("%w: field.bunker_y must be below field.top", ErrInvalidTuning)
	case t.Spawn.JitterMin >= t.Spawn.JitterMax:
		return fmt.Errorf("%w: spawn.jitter_min must be less than spawn.jitter_max", ErrInvalidTuning)
	case t.Spawn.StartXMin >= t.Spawn.StartXMax:
		return fmt.Errorf("%w: spawn.start_x_min must be less than spawn.start_x_max", ErrInvalidTuning)
	case t.Star.XMin >= t.Star.XMax || t.Star.YMin >= t.Star.YMax:
		return fmt.Errorf("%w: star band is empty", ErrInvalidTuning)
	case t.Frame.MaxStep <= 0 || t.Frame.MaxDelta < t.Frame.MaxStep:
		return fmt.Errorf("%w: frame.max_delta must be at least frame.max_step > 0", ErrInvalidTuning)
	}
	return nil
}
