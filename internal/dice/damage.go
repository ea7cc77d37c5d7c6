package dice

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// DamageKind tags what a damage roll does to its target.
type DamageKind string

const (
	KindDamage  DamageKind = "damage"
	KindHealing DamageKind = "healing"
)

// DamageInstance is one typed component of a damage roll (e.g. "2d6+3 fire").
type DamageInstance struct {
	Type    string `json:"type,omitempty"`
	Formula string `json:"formula"`
	Total   int    `json:"total"`
}

// DamageRoll is an evaluated damage or healing roll as stored on a message.
type DamageRoll struct {
	Formula    string           `json:"formula"`
	Instances  []DamageInstance `json:"instances"`
	Kinds      []DamageKind     `json:"kinds"`
	SplashOnly bool             `json:"splashOnly,omitempty"`
}

// Total sums every instance.
func (d *DamageRoll) Total() int {
	total := 0
	for _, inst := range d.Instances {
		total += inst.Total
	}
	return total
}

// HasKind reports whether the roll carries the kind tag.
func (d *DamageRoll) HasKind(kind DamageKind) bool {
	return slices.Contains(d.Kinds, kind)
}

// Alter returns a copy scaled by multiplier with addend folded into the first instance.
// Each instance is floored; halving never drops a positive instance below 1.
func (d *DamageRoll) Alter(multiplier float64, addend int) *DamageRoll {
	altered := &DamageRoll{
		Formula:    d.Formula,
		Kinds:      slices.Clone(d.Kinds),
		SplashOnly: d.SplashOnly,
		Instances:  make([]DamageInstance, len(d.Instances)),
	}

	for i, inst := range d.Instances {
		scaled := int(math.Floor(float64(inst.Total) * multiplier))
		if multiplier > 0 && multiplier < 1 && inst.Total > 0 && scaled < 1 {
			scaled = 1
		}
		altered.Instances[i] = DamageInstance{
			Type:    inst.Type,
			Formula: inst.Formula,
			Total:   scaled,
		}
	}

	if addend != 0 && len(altered.Instances) > 0 {
		altered.Instances[0].Total += addend
	}
	if multiplier != 1 {
		altered.Formula = fmt.Sprintf("(%s) * %s", d.Formula, strconv.FormatFloat(multiplier, 'f', -1, 64))
	}

	return altered
}

// RollDamage evaluates a formula such as "2d6+3 fire, 1d4 cold" with the roller.
func RollDamage(roller Roller, formula string, kinds ...DamageKind) (*DamageRoll, error) {
	if roller == nil {
		return nil, errors.New("roller is required")
	}
	if strings.TrimSpace(formula) == "" {
		return nil, errors.New("empty damage formula")
	}
	if len(kinds) == 0 {
		kinds = []DamageKind{KindDamage}
	}

	roll := &DamageRoll{
		Formula: formula,
		Kinds:   kinds,
	}

	for _, part := range strings.Split(formula, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}

		expr := fields[0]
		damageType := strings.Join(fields[1:], " ")

		count, sides, bonus, err := parseExpression(expr)
		if err != nil {
			return nil, err
		}

		total := bonus
		if count > 0 {
			result, err := roller.Roll(count, sides, bonus)
			if err != nil {
				return nil, fmt.Errorf("failed to roll %s: %w", expr, err)
			}
			total = result.Total
		}

		roll.Instances = append(roll.Instances, DamageInstance{
			Type:    damageType,
			Formula: expr,
			Total:   total,
		})
	}

	if len(roll.Instances) == 0 {
		return nil, fmt.Errorf("invalid damage formula %q", formula)
	}

	return roll, nil
}

// parseExpression reads "XdY", "XdY+B", "XdY-B" or a flat "B".
func parseExpression(expr string) (count, sides, bonus int, err error) {
	diceExpr := expr
	if i := strings.LastIndexAny(expr, "+-"); i > 0 {
		bonus, err = strconv.Atoi(expr[i:])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice string %q", expr)
		}
		diceExpr = expr[:i]
	}

	if !strings.Contains(diceExpr, "d") {
		flat, convErr := strconv.Atoi(diceExpr)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice string %q", expr)
		}
		return 0, 0, flat + bonus, nil
	}

	parts := strings.Split(diceExpr, "d")
	if len(parts) != 2 {
		return 0, 0, 0, fmt.Errorf("invalid dice string %q", expr)
	}

	count = 1
	if parts[0] != "" {
		if count, err = strconv.Atoi(parts[0]); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice string %q", expr)
		}
	}
	if sides, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid dice string %q", expr)
	}

	return count, sides, bonus, nil
}
