package grid

// Road classes. Level 1..3 doubles as the class for road tiles.
const (
	RoadMinLevel = 1
	RoadMaxLevel = 3

	Street  = 1
	Avenue  = 2
	Highway = 3
)

// Bridge pricing applied on top of the land values.
const (
	BridgeBuildCostMultiplier       = 4
	BridgeMaintenanceUnitMultiplier = 2
	BridgeTravelTimePenaltyMilli    = 150
)

// ClampRoadLevel clamps level into [RoadMinLevel, RoadMaxLevel].
func ClampRoadLevel(level int) int {
	if level < RoadMinLevel {
		return RoadMinLevel
	}
	if level > RoadMaxLevel {
		return RoadMaxLevel
	}

	return level
}

// RoadClassName returns "street", "avenue" or "highway".
func RoadClassName(level int) string {
	switch ClampRoadLevel(level) {
	case Avenue:
		return "avenue"
	case Highway:
		return "highway"
	}
	return "street"
}

// RoadBuildCostForLevel is the money cost of one land road tile.
func RoadBuildCostForLevel(level int) int {
	switch ClampRoadLevel(level) {
	case Avenue:
		return 3
	case Highway:
		return 6
	}
	return 1
}

// RoadBridgeBuildCostForLevel is the money cost of one bridge tile.
func RoadBridgeBuildCostForLevel(level int) int {
	return RoadBuildCostForLevel(level) * BridgeBuildCostMultiplier
}

// RoadMaintenanceUnitsForLevel is the upkeep of one land road tile.
func RoadMaintenanceUnitsForLevel(level int) int {
	switch ClampRoadLevel(level) {
	case Avenue:
		return 2
	case Highway:
		return 4
	}
	return 1
}

// RoadBridgeMaintenanceUnitsForLevel is the upkeep of one bridge tile.
func RoadBridgeMaintenanceUnitsForLevel(level int) int {
	return RoadMaintenanceUnitsForLevel(level) * BridgeMaintenanceUnitMultiplier
}

// RoadCapacityForLevel scales a street capacity by class: x1, x1.8, x2.6
// (integer arithmetic, rounded down).
func RoadCapacityForLevel(baseCapacity, level int) int {
	if baseCapacity < 0 {
		baseCapacity = 0
	}
	switch ClampRoadLevel(level) {
	case Avenue:
		return baseCapacity * 9 / 5
	case Highway:
		return baseCapacity * 13 / 5
	}
	return baseCapacity
}

// RoadTravelTimeMilliForLevel is the time to enter one land road tile, in
// milli-steps. Faster classes are cheaper.
func RoadTravelTimeMilliForLevel(level int) int {
	switch ClampRoadLevel(level) {
	case Avenue:
		return 893
	case Highway:
		return 800
	}
	return 1000
}

// RoadBridgeTravelTimeMilliForLevel adds the bridge penalty.
func RoadBridgeTravelTimeMilliForLevel(level int) int {
	return RoadTravelTimeMilliForLevel(level) + BridgeTravelTimePenaltyMilli
}

// TileTravelTimeMilli returns the time to enter t as a road tile.
func TileTravelTimeMilli(t Tile) int {
	if t.Terrain == Water {
		return RoadBridgeTravelTimeMilliForLevel(int(t.Level))
	}
	return RoadTravelTimeMilliForLevel(int(t.Level))
}

// RoadPlacementCost prices building (alreadyRoad == false) or upgrading
// (alreadyRoad == true) a road tile to targetLevel. Upgrades cost the
// difference between the two build prices and never go negative.
func RoadPlacementCost(currentLevel, targetLevel int, alreadyRoad, isBridge bool) int {
	targetLevel = ClampRoadLevel(targetLevel)
	currentLevel = ClampRoadLevel(currentLevel)
	price := RoadBuildCostForLevel
	if isBridge {
		price = RoadBridgeBuildCostForLevel
	}
	costTarget := price(targetLevel)
	if !alreadyRoad {
		return costTarget
	}
	if d := costTarget - price(currentLevel); d > 0 {
		return d
	}

	return 0
}
