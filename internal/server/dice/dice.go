// Package dice implements tabletop dice rolling from NdM+K expressions.
package dice

import (
	"errors"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidExpression indicates the dice expression could not be parsed.
var ErrInvalidExpression = errors.New("dice expression must look like 1d20, 2d6+3 or 1d8-1")

// ErrDiceLimit indicates the expression asks for more dice or sides than the
// roller supports.
var ErrDiceLimit = errors.New("dice expression exceeds the supported limits")

const (
	maxCount = 100
	maxSides = 1000
)

// Expression is a parsed NdM+K dice expression.
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

func (e Expression) String() string {
	out := strconv.Itoa(e.Count) + "d" + strconv.Itoa(e.Sides)
	switch {
	case e.Modifier > 0:
		out += "+" + strconv.Itoa(e.Modifier)
	case e.Modifier < 0:
		out += strconv.Itoa(e.Modifier)
	}
	return out
}

var expressionPattern = regexp.MustCompile(`^(\d{1,3})[dD](\d{1,4})([+-]\d{1,4})?$`)

// Parse reads an NdM+K expression. The die must have at least two sides.
func Parse(raw string) (Expression, error) {
	match := expressionPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return Expression{}, ErrInvalidExpression
	}
	count, _ := strconv.Atoi(match[1])
	sides, _ := strconv.Atoi(match[2])
	modifier := 0
	if match[3] != "" {
		modifier, _ = strconv.Atoi(match[3])
	}
	if count < 1 || sides < 2 {
		return Expression{}, ErrInvalidExpression
	}
	if count > maxCount || sides > maxSides {
		return Expression{}, ErrDiceLimit
	}
	return Expression{Count: count, Sides: sides, Modifier: modifier}, nil
}

// Mode records how a roll was resolved.
type Mode string

const (
	// ModeStraight is a single roll of the expression.
	ModeStraight Mode = "straight"
	// ModeAdvantage rolls the expression twice and keeps the higher total.
	ModeAdvantage Mode = "advantage"
	// ModeDisadvantage rolls the expression twice and keeps the lower total.
	ModeDisadvantage Mode = "disadvantage"
)

// Roll is one evaluation of the expression: the individual die results plus
// the modifier-adjusted total.
type Roll struct {
	Results []int
	Total   int
}

// Request describes a roll of one dice expression.
type Request struct {
	Expression   string
	Advantage    bool
	Disadvantage bool
	Seed         int64
}

// Result captures the resolved roll. Rolls holds one entry for a straight
// roll and two for advantage or disadvantage; Kept indexes the roll that
// produced Total.
type Result struct {
	Expression Expression
	Mode       Mode
	Rolls      []Roll
	Kept       int
	Total      int
}

// RollDice parses and rolls a dice expression.
//
// RollDice is deterministic with respect to the Seed field: the same Seed
// and Request fields always produce the same Result. Advantage and
// disadvantage evaluate the whole expression twice and keep the higher or
// lower total; ties keep the first roll. When both flags are set they cancel
// to a straight roll.
func RollDice(request Request) (Result, error) {
	expression, err := Parse(request.Expression)
	if err != nil {
		return Result{}, err
	}

	mode := ModeStraight
	switch {
	case request.Advantage && request.Disadvantage:
		// cancel out
	case request.Advantage:
		mode = ModeAdvantage
	case request.Disadvantage:
		mode = ModeDisadvantage
	}

	rng := rand.New(rand.NewSource(request.Seed))
	result := Result{
		Expression: expression,
		Mode:       mode,
		Rolls:      []Roll{roll(rng, expression)},
	}
	if mode != ModeStraight {
		result.Rolls = append(result.Rolls, roll(rng, expression))
		first, second := result.Rolls[0].Total, result.Rolls[1].Total
		if (mode == ModeAdvantage && second > first) || (mode == ModeDisadvantage && second < first) {
			result.Kept = 1
		}
	}
	result.Total = result.Rolls[result.Kept].Total
	return result, nil
}

func roll(rng *rand.Rand, expression Expression) Roll {
	results := make([]int, expression.Count)
	total := expression.Modifier
	for i := range results {
		results[i] = rng.Intn(expression.Sides) + 1
		total += results[i]
	}
	return Roll{Results: results, Total: total}
}
