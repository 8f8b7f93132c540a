package guidance

import (
	"testing"

	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/geo"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTurnDirection(t *testing.T) {
	tests := []struct {
		name          string
		prev, current float64 // degree
		expected      TurnDirection
	}{
		{"straight", 90, 95, CONTINUE_ON_STREET},
		{"slight right", 90, 120, TURN_SLIGHT_RIGHT},
		{"slight left", 90, 60, TURN_SLIGHT_LEFT},
		{"right", 90, 180, TURN_RIGHT},
		{"left", 90, 0, TURN_LEFT},
		{"sharp right", 0, 150, TURN_SHARP_RIGHT},
		{"sharp left", 0, 210, TURN_SHARP_LEFT},
		{"left across north", 20, 310, TURN_LEFT},
		{"right across north", 340, 10, TURN_SLIGHT_RIGHT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getTurnDirection(util.DegreeToRadians(tt.prev), util.DegreeToRadians(tt.current))
			assert.Equal(t, tt.expected, got)
		})
	}
}

// tJunction. b has roads to a (west), c (north) and d (east).
func tJunction() (*da.Graph, [4]da.Index) {
	gb := da.NewGraphBuilder()
	a := gb.AddVertex(-7.0, 110.00)
	b := gb.AddVertex(-7.0, 110.01)
	c := gb.AddVertex(-6.99, 110.01)
	d := gb.AddVertex(-7.0, 110.02)
	gb.AddBidirectionalEdge(a, b, 100, 0)
	gb.AddBidirectionalEdge(b, c, 100, 0)
	gb.AddBidirectionalEdge(b, d, 100, 0)
	return gb.Build(), [4]da.Index{a, b, c, d}
}

func TestGetDrivingDirectionsTurnAtJunction(t *testing.T) {
	g, v := tJunction()
	db := NewDirectionBuilder(g)

	source := geo.NewCoordinate(-7.0, 110.005)
	target := geo.NewCoordinate(-6.995, 110.01)
	directions := db.GetDrivingDirections(source, []da.Index{v[1]}, target)

	require.Len(t, directions, 3)
	assert.Equal(t, START, directions[0].Turn)
	assert.InDelta(t, 90, directions[0].Bearing, 0.1)
	assert.InDelta(t, 551.8, directions[0].Distance, 5)

	assert.Equal(t, TURN_LEFT, directions[1].Turn)
	assert.Equal(t, "Turn left", directions[1].Description)
	assert.Equal(t, -7.0, directions[1].Lat)
	assert.Equal(t, 110.01, directions[1].Lon)
	assert.InDelta(t, 0, directions[1].Bearing, 0.1)
	assert.InDelta(t, 556.0, directions[1].Distance, 5)

	assert.Equal(t, FINISH, directions[2].Turn)
	assert.Equal(t, 0.0, directions[2].Distance)
}

func TestGetDrivingDirectionsStraightThrough(t *testing.T) {
	g, v := tJunction()
	db := NewDirectionBuilder(g)

	source := geo.NewCoordinate(-7.0, 110.005)
	target := geo.NewCoordinate(-7.0, 110.015)
	directions := db.GetDrivingDirections(source, []da.Index{v[1]}, target)

	require.Len(t, directions, 2)
	assert.Equal(t, START, directions[0].Turn)
	assert.Equal(t, FINISH, directions[1].Turn)
	assert.InDelta(t, 1103.6, directions[0].Distance, 10)
}

func TestGetDrivingDirectionsSameEdge(t *testing.T) {
	g, _ := tJunction()
	db := NewDirectionBuilder(g)

	p := geo.NewCoordinate(-7.0, 110.005)
	directions := db.GetDrivingDirections(p, nil, p)

	require.Len(t, directions, 2)
	assert.Equal(t, 0.0, directions[0].Distance)
}

func TestCountAlternativeTurns(t *testing.T) {
	g, v := tJunction()
	db := NewDirectionBuilder(g)

	assert.Equal(t, 1, db.countAlternativeTurns(v[1], v[0], v[2]))
	assert.Equal(t, 0, db.countAlternativeTurns(v[2], v[1], da.INVALID_VERTEX_ID))
}
